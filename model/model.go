// Package model holds the chat-completion wire format spoken with the LLM
// service.
package model

import "encoding/json"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SearchOptions struct {
	ForcedSearch bool `json:"forced_search"`
}

// ChatRequest is the body POSTed to the chat-completions endpoint.
type ChatRequest struct {
	Model         string        `json:"model"`
	EnableSearch  bool          `json:"enable_search"`
	Messages      []Message     `json:"messages"`
	SearchOptions SearchOptions `json:"search_options"`
}

// NewChatRequest builds a request with web search switched on and forced.
func NewChatRequest(modelName string, messages []Message) ChatRequest {
	return ChatRequest{
		Model:         modelName,
		EnableSearch:  true,
		Messages:      messages,
		SearchOptions: SearchOptions{ForcedSearch: true},
	}
}

// ChatResponse is either an error envelope or a list of choices. Fields are
// kept raw so that absent and malformed entries can be told apart.
type ChatResponse struct {
	Error   json.RawMessage `json:"error,omitempty"`
	Choices []Choice        `json:"choices,omitempty"`
}

type Choice struct {
	Message *ChoiceMessage `json:"message,omitempty"`
}

// UnmarshalJSON never fails: an entry that is not an object, or whose message
// is not one, decodes as a choice without a message so that its siblings are
// still read.
func (c *Choice) UnmarshalJSON(data []byte) error {
	*c = Choice{}
	var entry struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &entry); err != nil || len(entry.Message) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry.Message, &fields); err != nil || fields == nil {
		return nil
	}
	msg := &ChoiceMessage{Content: fields["content"]}
	_ = json.Unmarshal(fields["role"], &msg.Role)
	c.Message = msg
	return nil
}

type ChoiceMessage struct {
	Role    string          `json:"role,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// HasError reports whether the response carries an error envelope.
func (r ChatResponse) HasError() bool {
	return len(r.Error) > 0 && string(r.Error) != "null"
}

// Content returns the choice's text content if it has one.
func (c Choice) Content() (string, bool) {
	if c.Message == nil || len(c.Message.Content) == 0 || string(c.Message.Content) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(c.Message.Content, &s); err != nil {
		return "", false
	}
	return s, true
}

// NewTextResponse wraps plain reply texts in a ChatResponse, one choice each.
func NewTextResponse(contents ...string) ChatResponse {
	resp := ChatResponse{Choices: make([]Choice, 0, len(contents))}
	for _, content := range contents {
		raw, _ := json.Marshal(content)
		resp.Choices = append(resp.Choices, Choice{
			Message: &ChoiceMessage{Role: RoleAssistant, Content: raw},
		})
	}
	return resp
}

// NewErrorResponse wraps an error message in an error envelope.
func NewErrorResponse(message, errType string) ChatResponse {
	raw, _ := json.Marshal(struct {
		Message string `json:"message"`
		Type    string `json:"type,omitempty"`
	}{Message: message, Type: errType})
	return ChatResponse{Error: raw}
}
