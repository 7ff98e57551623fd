package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/model"
)

// ErrAPIKeyRequired is returned when no API key is configured.
var ErrAPIKeyRequired = errors.New("llm: API key is required (set " + common.EnvAPIKey + ")")

// OptionType defines the type of option
type OptionType string

// Available option types
const (
	ModelNameOption        OptionType = "model"
	APITimeoutOption       OptionType = "api_timeout"
	EndpointOption         OptionType = "endpoint"
	MaxResponseBytesOption OptionType = "max_response_bytes"
)

// Option represents a generic configuration option for any LLM provider
type Option struct {
	Type  OptionType
	Value any
}

// WithModel creates an option to set the model name
func WithModel(model string) Option {
	return Option{
		Type:  ModelNameOption,
		Value: model,
	}
}

// WithAPITimeout creates an option to set the API timeout in seconds. Zero
// disables the timeout.
func WithAPITimeout(timeout int) Option {
	return Option{
		Type:  APITimeoutOption,
		Value: timeout,
	}
}

// WithEndpoint overrides where requests are sent: the full chat-completions
// URL for the compatible provider, the API base URL for the SDK providers.
func WithEndpoint(endpoint string) Option {
	return Option{
		Type:  EndpointOption,
		Value: endpoint,
	}
}

// WithMaxResponseBytes caps how much of a response body is buffered. Zero
// means unlimited.
func WithMaxResponseBytes(n int64) Option {
	return Option{
		Type:  MaxResponseBytesOption,
		Value: n,
	}
}

type config struct {
	modelName        string
	apiTimeout       int // in seconds
	endpoint         string
	maxResponseBytes int64
}

func applyOptions(cfg config, opts []Option) config {
	for _, opt := range opts {
		switch opt.Type {
		case ModelNameOption:
			if modelName, ok := opt.Value.(string); ok && modelName != "" {
				cfg.modelName = modelName
			}
		case APITimeoutOption:
			if timeout, ok := opt.Value.(int); ok && timeout >= 0 {
				cfg.apiTimeout = timeout
			}
		case EndpointOption:
			if endpoint, ok := opt.Value.(string); ok && endpoint != "" {
				cfg.endpoint = endpoint
			}
		case MaxResponseBytesOption:
			if n, ok := opt.Value.(int64); ok && n >= 0 {
				cfg.maxResponseBytes = n
			}
		}
	}
	return cfg
}

func (c config) requestContext() (context.Context, context.CancelFunc) {
	if c.apiTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), time.Duration(c.apiTimeout)*time.Second)
}

// Request represents the data needed to generate a prompt for the LLM
type Request struct {
	SystemPrompt string
	UserPrompt   string
}

// Messages assembles the conversation: the system prompt, then the user
// prompt. Nothing is truncated.
func (r Request) Messages() []model.Message {
	return []model.Message{
		{Role: model.RoleSystem, Content: r.SystemPrompt},
		{Role: model.RoleUser, Content: r.UserPrompt},
	}
}

// Response is the outcome of one round trip.
type Response struct {
	// Body is a chat-completion JSON document: either choices or an error
	// envelope. It is nil when Error is set.
	Body []byte
	// Error reports a transport failure: no usable body was received.
	Error error
}

// LLM defines the interface for language model prompting
type LLM interface {
	// Prompt sends a request to the language model and blocks until the
	// round trip completes or fails.
	Prompt(req Request) Response
}

// NewLLM creates the client for the configured provider.
func NewLLM(settings common.Settings, opts ...Option) (LLM, error) {
	if !settings.Enabled() {
		return nil, ErrAPIKeyRequired
	}

	options := []Option{
		WithModel(settings.ModelName()),
		WithAPITimeout(settings.Timeout),
		WithMaxResponseBytes(settings.MaxResponseBytes),
		WithEndpoint(settings.Endpoint),
	}
	options = append(options, opts...)

	var llmClient LLM
	var err error
	switch settings.Provider {
	case common.ProviderDashScope, "":
		llmClient, err = NewCompatible(settings.APIKey, options...)
	case common.ProviderOpenAI:
		llmClient, err = NewOpenAI(settings.APIKey, options...)
	case common.ProviderAnthropic:
		llmClient, err = NewAnthropic(settings.APIKey, options...)
	default:
		err = fmt.Errorf("unsupported provider: %s", settings.Provider)
	}

	if err == nil {
		logger.Infof("Using LLM provider %s with model %s", settings.Provider, settings.ModelName())
	}
	return llmClient, err
}

// encodeResponse normalizes an SDK result into a chat-completion body.
func encodeResponse(resp model.ChatResponse) Response {
	data, err := json.Marshal(resp)
	if err != nil {
		return Response{Error: fmt.Errorf("failed to encode response: %w", err)}
	}
	return Response{Body: data}
}
