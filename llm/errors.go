package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrConfiguration   = errors.New("configuration error")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrNetwork         = errors.New("network error")
	ErrAuthentication  = errors.New("authentication error")
	ErrRateLimit       = errors.New("rate limit error")
	ErrInvalidResponse = errors.New("invalid response")
	ErrProvider        = errors.New("provider error")
)

// Error is returned by NewChatClient and Complete. Kind is one of the Err* sentinels
// above, so callers can match with errors.Is.
type Error struct {
	Kind       error
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	s := e.Kind.Error()
	if e.StatusCode != 0 {
		s = fmt.Sprintf("%s (http %d)", s, e.StatusCode)
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

// classify maps an error from the go-openai client onto one of our kinds.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: kindForStatus(apiErr.HTTPStatusCode), StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{Kind: kindForStatus(reqErr.HTTPStatusCode), StatusCode: reqErr.HTTPStatusCode, Err: reqErr.Err}
	}

	// Do failures come back as *url.Error and may wrap io.EOF, so check them first.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &Error{Kind: ErrNetwork, Err: err}
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &Error{Kind: ErrInvalidResponse, Message: "cannot decode response body", Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: ErrNetwork, Err: err}
	}

	return &Error{Kind: ErrProvider, Err: err}
}

func kindForStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthentication
	case http.StatusTooManyRequests:
		return ErrRateLimit
	}
	return ErrProvider
}
