package common

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvAPIKey, EnvModel, EnvReplyLanguage, EnvRolePrompt,
		EnvProvider, EnvEndpoint, EnvTimeout, EnvMaxResponseBytes,
	} {
		if v, ok := os.LookupEnv(name); ok {
			os.Unsetenv(name)
			t.Cleanup(func() { os.Setenv(name, v) })
		}
	}
}

func TestWithDefaultSettings(t *testing.T) {
	settings := WithDefaultSettings()

	if settings.Provider != ProviderDashScope {
		t.Errorf("Expected default provider to be %s, got %s", ProviderDashScope, settings.Provider)
	}
	if settings.ModelName() != DefaultModel {
		t.Errorf("Expected default model to be %s, got %s", DefaultModel, settings.ModelName())
	}
	if settings.ReplyLanguage != DefaultReplyLanguage {
		t.Errorf("Expected default reply language to be %s, got %s", DefaultReplyLanguage, settings.ReplyLanguage)
	}
	if settings.RolePrompt != DefaultRolePrompt {
		t.Errorf("Expected default role prompt, got %s", settings.RolePrompt)
	}
	if settings.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout %d, got %d", DefaultTimeout, settings.Timeout)
	}
	if settings.Enabled() {
		t.Error("Expected settings without API key to be disabled")
	}
}

func TestWithEnv_MissingKeyDisables(t *testing.T) {
	clearEnv(t)

	settings := WithEnv(WithDefaultSettings())
	if settings.Enabled() {
		t.Error("Expected missing API key to disable the settings")
	}
}

func TestWithEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "sk-test")
	t.Setenv(EnvModel, "qwen-plus")
	t.Setenv(EnvReplyLanguage, "English")
	t.Setenv(EnvRolePrompt, "Be terse.")
	t.Setenv(EnvTimeout, "5")
	t.Setenv(EnvMaxResponseBytes, "0")

	settings := WithEnv(WithDefaultSettings())

	if !settings.Enabled() || settings.APIKey != "sk-test" {
		t.Errorf("Expected API key from environment, got %q", settings.APIKey)
	}
	if settings.ModelName() != "qwen-plus" {
		t.Errorf("Expected model qwen-plus, got %s", settings.ModelName())
	}
	if settings.ReplyLanguage != "English" {
		t.Errorf("Expected reply language English, got %s", settings.ReplyLanguage)
	}
	if settings.RolePrompt != "Be terse." {
		t.Errorf("Expected role prompt override, got %s", settings.RolePrompt)
	}
	if settings.Timeout != 5 {
		t.Errorf("Expected timeout 5, got %d", settings.Timeout)
	}
	if settings.MaxResponseBytes != 0 {
		t.Errorf("Expected unlimited response size, got %d", settings.MaxResponseBytes)
	}
}

func TestWithEnv_InvalidNumbersKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTimeout, "soon")
	t.Setenv(EnvMaxResponseBytes, "-1")

	settings := WithEnv(WithDefaultSettings())
	if settings.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout, got %d", settings.Timeout)
	}
	if settings.MaxResponseBytes != DefaultMaxResponseBytes {
		t.Errorf("Expected default response cap, got %d", settings.MaxResponseBytes)
	}
}

func TestWithYamlFile_ValidFile(t *testing.T) {
	configContent := `provider: openai
model: qwen-turbo
reply_language: Japanese
compiler_name: GCC
timeout: 10
max_response_bytes: 1024
`
	tempDir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	defer os.Chdir(cwd)

	if err := os.WriteFile(".aidiag.yml", []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	settings, err := WithYamlFile("")
	if err != nil {
		t.Fatalf("Expected settings file to load, got %v", err)
	}

	if settings.Provider != ProviderOpenAI {
		t.Errorf("Expected provider %s, got %s", ProviderOpenAI, settings.Provider)
	}
	if settings.Model != "qwen-turbo" {
		t.Errorf("Expected model qwen-turbo, got %s", settings.Model)
	}
	if settings.ReplyLanguage != "Japanese" {
		t.Errorf("Expected reply language Japanese, got %s", settings.ReplyLanguage)
	}
	if settings.CompilerName != "GCC" {
		t.Errorf("Expected compiler name GCC, got %s", settings.CompilerName)
	}
	if settings.Timeout != 10 || settings.MaxResponseBytes != 1024 {
		t.Errorf("Expected timeout 10 and cap 1024, got %d and %d", settings.Timeout, settings.MaxResponseBytes)
	}
	// Not in the file, so the default survives.
	if settings.RolePrompt != DefaultRolePrompt {
		t.Errorf("Expected default role prompt, got %s", settings.RolePrompt)
	}
}

func TestWithYamlFile_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	if err := os.WriteFile(path, []byte("model: [unterminated"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	settings, err := WithYamlFile(path)
	if err == nil {
		t.Fatal("Expected an error for a malformed settings file")
	}
	if settings.Provider != ProviderDashScope {
		t.Errorf("Expected defaults after a parse failure, got provider %s", settings.Provider)
	}
}

func TestLoadSettings_EnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "settings.yml")
	if err := os.WriteFile(path, []byte("model: from-file\n"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	t.Setenv(EnvModel, "from-env")

	settings := LoadSettings(path)
	if settings.Model != "from-env" {
		t.Errorf("Expected environment to win, got %s", settings.Model)
	}
}

func TestModelNameDefaultsPerProvider(t *testing.T) {
	settings := WithDefaultSettings()
	settings.Provider = ProviderAnthropic
	if settings.ModelName() == DefaultModel {
		t.Error("Expected anthropic provider to use its own default model")
	}
}

func TestMaskSecret(t *testing.T) {
	tests := map[string]string{
		"":                   "",
		"short":              "*****",
		"sk-1234567890abcde": "sk-************cde",
	}
	for in, expected := range tests {
		if got := MaskSecret(in); got != expected {
			t.Errorf("MaskSecret(%q): expected %q, got %q", in, expected, got)
		}
	}
}
