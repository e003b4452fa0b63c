package llm

import (
	"fmt"
	"strings"
)

type CompletionRequest struct {
	Model     string
	Messages  []Message
	MaxTokens int
}

// CompletionResponse holds the text of the first choice. Usage and finish reason are
// only logged.
type CompletionResponse struct {
	Text string
}

// NewCompletionRequest builds a validated request.
func NewCompletionRequest(model string, messages []Message, maxTokens int) (CompletionRequest, error) {
	req := CompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}
	if err := req.Validate(); err != nil {
		return CompletionRequest{}, err
	}
	return req, nil
}

// Validate reports an ErrInvalidRequest error when the request can't be sent.
func (r CompletionRequest) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return invalidRequest("model is empty")
	}
	if len(r.Messages) == 0 {
		return invalidRequest("at least one message is required")
	}
	for i, m := range r.Messages {
		if !m.Role.valid() {
			return invalidRequest(fmt.Sprintf("message %d has unknown role %q", i, m.Role))
		}
	}
	if r.MaxTokens <= 0 {
		return invalidRequest(fmt.Sprintf("max tokens must be positive, got %d", r.MaxTokens))
	}
	return nil
}

func invalidRequest(msg string) error {
	return &Error{Kind: ErrInvalidRequest, Message: msg}
}
