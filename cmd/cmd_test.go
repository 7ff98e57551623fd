package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type stubLLM struct{}

func (stubLLM) Prompt(req llm.Request) llm.Response { return llm.Response{} }

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, ExitCode(&exitError{code: 2}))
	assert.Equal(t, 7, ExitCode(fmt.Errorf("wrapped: %w", &exitError{code: 7})))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
}

func TestWithSpinnerSkipsNonTerminals(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	client := stubLLM{}
	assert.Equal(t, llm.LLM(client), withSpinner(client, f))
	assert.Equal(t, llm.LLM(client), withSpinner(client, nil))
}

func TestConfigCommandMasksKey(t *testing.T) {
	t.Setenv(common.EnvAPIKey, "sk-0123456789")
	t.Setenv(common.EnvModel, "qwen-plus")
	t.Setenv(common.EnvReplyLanguage, "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())

	assert.NotContains(t, out.String(), "sk-0123456789")

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "sk-*******789", got["api_key"])
	assert.Equal(t, "qwen-plus", got["model"])
	assert.Equal(t, common.DefaultReplyLanguage, got["reply_language"])
}
