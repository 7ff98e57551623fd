package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/model"
	"github.com/hashicorp/go-retryablehttp"
)

// DashScopeEndpoint is the OpenAI-compatible chat-completions endpoint.
const DashScopeEndpoint = "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"

// ErrResponseTooLarge is returned when a body exceeds the configured cap.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// CompatibleModel posts chat-completion requests with search enabled to an
// OpenAI-compatible endpoint and hands back the raw body.
type CompatibleModel struct {
	client *retryablehttp.Client
	apiKey string
	config
}

var _ LLM = (*CompatibleModel)(nil)

// NewCompatible creates a client for the compatible endpoint.
func NewCompatible(apiKey string, opts ...Option) (*CompatibleModel, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	m := &CompatibleModel{
		client: common.NewRetryableClient(common.DefaultRetryConfig()),
		apiKey: apiKey,
		config: applyOptions(config{
			modelName:        common.DefaultModel,
			apiTimeout:       common.DefaultTimeout,
			endpoint:         DashScopeEndpoint,
			maxResponseBytes: common.DefaultMaxResponseBytes,
		}, opts),
	}

	logger.Debugf("Compatible client initialized with model: %s, endpoint: %s, timeout: %d seconds",
		m.modelName, m.endpoint, m.apiTimeout)
	return m, nil
}

// Prompt performs one blocking POST. Any HTTP status counts as a completed
// round trip; the body is returned for the caller to interpret.
func (m *CompatibleModel) Prompt(req Request) Response {
	ctx, cancel := m.requestContext()
	defer cancel()

	data, err := json.Marshal(model.NewChatRequest(m.modelName, req.Messages()))
	if err != nil {
		return Response{Error: fmt.Errorf("failed to marshal request: %w", err)}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, data)
	if err != nil {
		return Response{Error: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	logger.Debugf("Sending request to %s with model %s (%d bytes)", m.endpoint, m.modelName, len(data))

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return Response{Error: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	var reader io.Reader = resp.Body
	if m.maxResponseBytes > 0 {
		reader = io.LimitReader(resp.Body, m.maxResponseBytes+1)
	}
	var body bytes.Buffer
	if _, err := body.ReadFrom(reader); err != nil {
		return Response{Error: fmt.Errorf("failed to read response: %w", err)}
	}
	if m.maxResponseBytes > 0 && int64(body.Len()) > m.maxResponseBytes {
		return Response{Error: fmt.Errorf("%w (%d bytes)", ErrResponseTooLarge, m.maxResponseBytes)}
	}

	logger.Debugf("Received %d bytes with status %s", body.Len(), resp.Status)
	return Response{Body: body.Bytes()}
}
