package llm

import (
	"errors"
	"fmt"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/model"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 1024

// AnthropicModel implements the LLM interface using Anthropic's API
type AnthropicModel struct {
	client anthropic.Client
	config
}

var _ LLM = (*AnthropicModel)(nil)

// NewAnthropic creates a new Anthropic client
func NewAnthropic(apiKey string, opts ...Option) (*AnthropicModel, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	cfg := applyOptions(config{
		modelName:        string(anthropic.ModelClaude3_7SonnetLatest),
		apiTimeout:       common.DefaultTimeout,
		maxResponseBytes: common.DefaultMaxResponseBytes,
	}, opts)

	retryClient := common.NewRetryableClient(common.DefaultRetryConfig())
	clientOptions := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(limitClient(retryClient.StandardClient(), cfg.maxResponseBytes)),
		option.WithMaxRetries(0),
	}
	if cfg.endpoint != "" {
		clientOptions = append(clientOptions, option.WithBaseURL(cfg.endpoint))
	}

	logger.Debugf("Anthropic client initialized with model: %s, timeout: %d seconds", cfg.modelName, cfg.apiTimeout)

	return &AnthropicModel{
		client: anthropic.NewClient(clientOptions...),
		config: cfg,
	}, nil
}

// Prompt sends a request to Anthropic and returns the response
func (a *AnthropicModel) Prompt(req Request) Response {
	ctx, cancel := a.requestContext()
	defer cancel()

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.modelName),
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(req.UserPrompt),
				},
			},
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return encodeResponse(model.NewErrorResponse(apiErr.Error(), "api_error"))
		}
		return Response{Error: fmt.Errorf("failed to create message: %w", err)}
	}

	var content string
	for _, block := range message.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			content += b.Text
		}
	}
	if content == "" {
		return encodeResponse(model.NewTextResponse())
	}
	return encodeResponse(model.NewTextResponse(content))
}
