// Package reply turns a chat-completion response body into console output.
package reply

import (
	"encoding/json"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/console"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/model"
)

// Handler prints the suggestions contained in a response body.
type Handler struct {
	console *console.Console
}

func NewHandler(c *console.Console) *Handler {
	return &Handler{console: c}
}

// Handle parses body and prints every choice that carries text content. It
// returns the number of suggestions printed. Malformed bodies and error
// envelopes are reported and yield zero; neither is fatal.
func (h *Handler) Handle(body []byte) int {
	var resp model.ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		h.console.Errorf("AI response error: %v", err)
		return 0
	}

	if resp.HasError() {
		h.console.Errorf("AI Response Error: %s", body)
		return 0
	}

	printed := 0
	for _, choice := range resp.Choices {
		content, ok := choice.Content()
		if !ok {
			continue
		}
		h.console.Suggestion(content)
		printed++
	}
	return printed
}
