package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.openai.com/v1"

// ClientConfig holds what a ChatClient needs to reach the provider.
// BaseURL may point at a proxy that speaks the same API.
type ClientConfig struct {
	APIKey       string
	BaseURL      string
	Organization string
	// Timeout bounds the whole HTTP exchange. Zero leaves the HTTP client's default.
	Timeout time.Duration
}

type ChatClient struct {
	config ClientConfig
	client *openai.Client
	logger *zap.Logger
}

type Option func(*clientOptions)

type clientOptions struct {
	logger     *zap.Logger
	httpClient *http.Client
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithHTTPClient replaces the HTTP client used for requests. The configured Timeout,
// when set, still overrides the client's own.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

func NewChatClient(cfg ClientConfig, opts ...Option) (*ChatClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &Error{Kind: ErrConfiguration, Message: "api key is empty"}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if err := checkBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}
	if cfg.Timeout < 0 {
		return nil, &Error{Kind: ErrConfiguration, Message: fmt.Sprintf("timeout must not be negative, got %s", cfg.Timeout)}
	}

	var options clientOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = zap.NewNop()
	}
	if options.httpClient == nil {
		options.httpClient = &http.Client{}
	}

	// copy so the caller's client isn't mutated
	httpClient := *options.httpClient
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	openaiConfig := openai.DefaultConfig(cfg.APIKey)
	openaiConfig.BaseURL = cfg.BaseURL
	openaiConfig.OrgID = cfg.Organization
	openaiConfig.HTTPClient = &httpClient

	return &ChatClient{
		config: cfg,
		client: openai.NewClientWithConfig(openaiConfig),
		logger: options.logger,
	}, nil
}

func checkBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &Error{Kind: ErrConfiguration, Message: "invalid base url", Err: err}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &Error{Kind: ErrConfiguration, Message: fmt.Sprintf("base url %q must be an absolute http(s) url", raw)}
	}
	return nil
}

// BaseURL returns the endpoint prefix requests are sent to.
func (c *ChatClient) BaseURL() string {
	return c.config.BaseURL
}

// Complete sends a single chat completion and returns the first choice's text.
// Nothing is retried.
func (c *ChatClient) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return CompletionResponse{}, err
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	c.logger.Debug("chat completion request",
		zap.String("base_url", c.config.BaseURL),
		zap.String("model", req.Model),
		zap.Int("messages", len(messages)),
		zap.Int("max_tokens", req.MaxTokens),
	)

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     req.Model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		err = classify(err)
		c.logger.Debug("chat completion failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return CompletionResponse{}, err
	}

	if len(resp.Choices) == 0 {
		return CompletionResponse{}, &Error{Kind: ErrInvalidResponse, Message: "response has no choices"}
	}
	choice := resp.Choices[0]

	c.logger.Debug("chat completion response",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("id", resp.ID),
		zap.Int("choices", len(resp.Choices)),
		zap.String("finish_reason", string(choice.FinishReason)),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	if strings.TrimSpace(choice.Message.Content) == "" {
		return CompletionResponse{}, &Error{Kind: ErrInvalidResponse, Message: "first choice has an empty message"}
	}

	return CompletionResponse{Text: choice.Message.Content}, nil
}
