package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
	"gopkg.in/yaml.v3"
)

// Environment variables read once at start-up.
const (
	EnvAPIKey           = "CLANG_AI_KEY"
	EnvModel            = "CLANG_AI_MODEL"
	EnvReplyLanguage    = "CLANG_AI_REPLY_LANG"
	EnvRolePrompt       = "CLANG_AI_ROLE_PROMPT"
	EnvProvider         = "CLANG_AI_PROVIDER"
	EnvEndpoint         = "CLANG_AI_ENDPOINT"
	EnvTimeout          = "CLANG_AI_TIMEOUT"
	EnvMaxResponseBytes = "CLANG_AI_MAX_RESPONSE_BYTES"
)

const (
	ProviderDashScope = "dashscope"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const (
	DefaultModel         = "qwen-max"
	DefaultReplyLanguage = "中文"
	DefaultRolePrompt    = "You're an AI assistant that helps improve compiler errors. " +
		"Your task is to analyze the given error message and provide a solution. " +
		"Don't repeat the error message simply. " +
		"Don't guess if you're not sure about your reply. " +
		"Please be brief as much as possible."
	DefaultCompilerName     = "Clang"
	DefaultTimeout          = 60
	DefaultMaxResponseBytes = 4 << 20
)

// Settings is the configuration of one assist instance. It is built once and
// passed by value to everything that needs it.
type Settings struct {
	APIKey        string `yaml:"-"`
	Provider      string `yaml:"provider"`
	Model         string `yaml:"model"`
	ReplyLanguage string `yaml:"reply_language"`
	RolePrompt    string `yaml:"role_prompt"`
	CompilerName  string `yaml:"compiler_name"`
	// Endpoint overrides the provider's fixed URL.
	Endpoint string `yaml:"endpoint,omitempty"`
	// Timeout in seconds for one round trip, 0 disables it.
	Timeout int `yaml:"timeout"`
	// MaxResponseBytes caps the response buffer, 0 means unlimited.
	MaxResponseBytes int64 `yaml:"max_response_bytes"`
}

func WithDefaultSettings() Settings {
	return Settings{
		Provider:         ProviderDashScope,
		ReplyLanguage:    DefaultReplyLanguage,
		RolePrompt:       DefaultRolePrompt,
		CompilerName:     DefaultCompilerName,
		Timeout:          DefaultTimeout,
		MaxResponseBytes: DefaultMaxResponseBytes,
	}
}

// Enabled reports whether an API key was found.
func (s Settings) Enabled() bool {
	return s.APIKey != ""
}

// ModelName returns the configured model or the provider's default one.
func (s Settings) ModelName() string {
	if s.Model != "" {
		return s.Model
	}
	switch s.Provider {
	case ProviderAnthropic:
		return "claude-3-7-sonnet-latest"
	default:
		return DefaultModel
	}
}

// Masked returns a copy that is safe to print.
func (s Settings) Masked() Settings {
	s.APIKey = MaskSecret(s.APIKey)
	return s
}

// SettingsFileNames are looked up in the working directory.
var SettingsFileNames = []string{".aidiag.yml", ".aidiag.yaml"}

// WithYamlFile overlays a YAML settings file on the defaults. An empty path
// searches the working directory for one of SettingsFileNames.
func WithYamlFile(path string) (Settings, error) {
	settings := WithDefaultSettings()

	if path == "" {
		for _, name := range SettingsFileNames {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
	}
	if path == "" {
		logger.Debug("No settings file found, using default settings")
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return WithDefaultSettings(), fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	logger.Infof("Using settings from YAML file: %s", path)
	return settings, nil
}

// WithEnv overlays the environment on settings.
func WithEnv(settings Settings) Settings {
	settings.APIKey = os.Getenv(EnvAPIKey)

	if v, ok := os.LookupEnv(EnvModel); ok {
		settings.Model = v
	}
	if v, ok := os.LookupEnv(EnvReplyLanguage); ok {
		settings.ReplyLanguage = v
	}
	if v, ok := os.LookupEnv(EnvRolePrompt); ok {
		settings.RolePrompt = v
	}
	if v, ok := os.LookupEnv(EnvProvider); ok && v != "" {
		settings.Provider = v
	}
	if v, ok := os.LookupEnv(EnvEndpoint); ok {
		settings.Endpoint = v
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			settings.Timeout = n
		} else {
			logger.Warnf("Ignoring invalid %s=%q", EnvTimeout, v)
		}
	}
	if v, ok := os.LookupEnv(EnvMaxResponseBytes); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			settings.MaxResponseBytes = n
		} else {
			logger.Warnf("Ignoring invalid %s=%q", EnvMaxResponseBytes, v)
		}
	}

	if settings.ReplyLanguage == "" {
		settings.ReplyLanguage = DefaultReplyLanguage
	}
	if settings.RolePrompt == "" {
		settings.RolePrompt = DefaultRolePrompt
	}
	if settings.CompilerName == "" {
		settings.CompilerName = DefaultCompilerName
	}
	return settings
}

// LoadSettings resolves defaults, then the YAML file, then the environment.
// A broken settings file is logged and skipped.
func LoadSettings(path string) Settings {
	settings, err := WithYamlFile(path)
	if err != nil {
		logger.Warn(err)
	}
	return WithEnv(settings)
}
