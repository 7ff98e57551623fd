package assist

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/console"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/diag"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/llm"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/sema"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	requests []llm.Request
	response llm.Response
}

func (f *fakeLLM) Prompt(req llm.Request) llm.Response {
	f.requests = append(f.requests, req)
	return f.response
}

func newConsole(t *testing.T) (*console.Console, *bytes.Buffer) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	return console.NewWithWriters(&buf, &buf), &buf
}

func enabledSettings() common.Settings {
	settings := common.WithDefaultSettings()
	settings.APIKey = "sk-test"
	return settings
}

func TestMissingKeyIsReportedOnce(t *testing.T) {
	con, out := newConsole(t)
	client := &fakeLLM{}

	c := New(common.WithDefaultSettings(), &sema.Snapshot{}, client, con)
	assert.False(t, c.Enabled())

	for _, level := range []diag.Level{diag.Error, diag.Fatal, diag.Error} {
		c.HandleDiagnostic(diag.Diagnostic{Level: level, Message: "boom"})
	}

	assert.Empty(t, client.requests)
	assert.Equal(t, 1, strings.Count(out.String(), MissingKeyMessage))
}

func TestSeverityGate(t *testing.T) {
	con, out := newConsole(t)
	client := &fakeLLM{response: llm.Response{Body: []byte(`{"choices":[]}`)}}
	c := New(enabledSettings(), &sema.Snapshot{}, client, con)
	require.True(t, c.Enabled())

	for _, level := range []diag.Level{diag.Ignored, diag.Note, diag.Remark, diag.Warning} {
		c.HandleDiagnostic(diag.Diagnostic{Level: level, Message: "quiet"})
	}
	assert.Empty(t, client.requests)

	c.HandleDiagnostic(diag.Diagnostic{Level: diag.Error, Message: "loud"})
	c.HandleDiagnostic(diag.Diagnostic{Level: diag.Fatal, Message: "louder"})
	assert.Len(t, client.requests, 2)
	assert.Empty(t, out.String())
}

func TestHandleDiagnosticBuildsRequest(t *testing.T) {
	con, out := newConsole(t)
	client := &fakeLLM{response: llm.Response{
		Body: []byte(`{"choices":[{"message":{"content":"Add the missing semicolon."}}]}`),
	}}
	settings := enabledSettings()
	settings.ReplyLanguage = "English"
	c := New(settings, &sema.Snapshot{}, client, con)

	c.HandleDiagnostic(diag.Diagnostic{
		Level:    diag.Error,
		Message:  "expected ';' after expression",
		Location: diag.Location{File: "main.cpp", Line: 3, Column: 7},
	})

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Contains(t, req.SystemPrompt, "Please reply in English. ")
	assert.True(t, strings.HasPrefix(req.UserPrompt,
		"Error Message: 'main.cpp:3:7': expected ';' after expression. The error message is produced by Clang. "))
	assert.Equal(t, "AI Suggestion: \nAdd the missing semicolon.\n", out.String())
}

func TestTransportFailureIsSilent(t *testing.T) {
	con, out := newConsole(t)
	client := &fakeLLM{response: llm.Response{Error: errors.New("connection refused")}}
	c := New(enabledSettings(), &sema.Snapshot{}, client, con)

	c.HandleDiagnostic(diag.Diagnostic{Level: diag.Error, Message: "boom"})

	assert.Len(t, client.requests, 1)
	assert.Empty(t, out.String())
}

func TestErrorEnvelopeIsReported(t *testing.T) {
	con, out := newConsole(t)
	body := `{"error":{"code":"invalid_api_key","message":"Incorrect API key provided."}}`
	client := &fakeLLM{response: llm.Response{Body: []byte(body)}}
	c := New(enabledSettings(), &sema.Snapshot{}, client, con)

	c.HandleDiagnostic(diag.Diagnostic{Level: diag.Error, Message: "boom"})

	assert.Equal(t, "AI Response Error: "+body+"\n", out.String())
}

func TestChainRunsPreviousConsumerFirst(t *testing.T) {
	var order []string
	con, _ := newConsole(t)
	client := &fakeLLM{response: llm.Response{Body: []byte(`{"choices":[]}`)}}
	ai := New(enabledSettings(), &sema.Snapshot{}, client, con)

	chain := diag.NewChain(
		diag.ConsumerFunc(func(d diag.Diagnostic) { order = append(order, "printer") }),
		diag.ConsumerFunc(func(d diag.Diagnostic) {
			ai.HandleDiagnostic(d)
			order = append(order, "assist")
		}),
	)
	chain.HandleDiagnostic(diag.Diagnostic{Level: diag.Error, Message: "boom"})

	assert.Equal(t, []string{"printer", "assist"}, order)
	assert.Len(t, client.requests, 1)
}

func TestNilClientIsInert(t *testing.T) {
	con, out := newConsole(t)
	c := New(enabledSettings(), nil, nil, con)
	assert.False(t, c.Enabled())

	c.HandleDiagnostic(diag.Diagnostic{Level: diag.Error, Message: "boom"})
	assert.Empty(t, out.String())
}
