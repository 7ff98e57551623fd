package llm

import (
	"errors"
	"fmt"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/model"
	"github.com/sashabaranov/go-openai"
)

// DashScopeBaseURL is the API root of the compatible endpoint.
const DashScopeBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

// OpenAIModel implements the LLM interface using the OpenAI SDK. It talks to
// any OpenAI-compatible API and does not ask for web search.
type OpenAIModel struct {
	client *openai.Client
	config
}

var _ LLM = (*OpenAIModel)(nil)

// NewOpenAI creates a new OpenAI client
func NewOpenAI(apiKey string, opts ...Option) (*OpenAIModel, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	cfg := applyOptions(config{
		modelName:        common.DefaultModel,
		apiTimeout:       common.DefaultTimeout,
		endpoint:         DashScopeBaseURL,
		maxResponseBytes: common.DefaultMaxResponseBytes,
	}, opts)

	retryClient := common.NewRetryableClient(common.DefaultRetryConfig())

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = cfg.endpoint
	clientConfig.HTTPClient = limitClient(retryClient.StandardClient(), cfg.maxResponseBytes)

	logger.Debugf("OpenAI client initialized with model: %s, base URL: %s, timeout: %d seconds",
		cfg.modelName, cfg.endpoint, cfg.apiTimeout)

	return &OpenAIModel{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Prompt sends a request to OpenAI and returns the response
func (o *OpenAIModel) Prompt(req Request) Response {
	ctx, cancel := o.requestContext()
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	for _, m := range req.Messages() {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	logger.Debugf("Sending request to OpenAI with model %s", o.modelName)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.modelName,
		Messages: messages,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return encodeResponse(model.NewErrorResponse(apiErr.Message, apiErr.Type))
		}
		return Response{Error: fmt.Errorf("failed to create chat completion: %w", err)}
	}

	contents := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		if choice.Message.Content != "" {
			contents = append(contents, choice.Message.Content)
		}
	}
	return encodeResponse(model.NewTextResponse(contents...))
}
