// Package sample holds the one-shot completions the commands run and the wiring they share.
package sample

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/nguyenvanduocit/chatcomplete/config"
	"github.com/nguyenvanduocit/chatcomplete/llm"
)

const EnvLogLevel = "LOG_LEVEL"

type Sample struct {
	Name      string
	Model     string
	System    string
	Prompt    string
	MaxTokens int
}

var (
	MoonFacts = Sample{
		Name:      "moon-facts",
		Model:     "gpt-4o-mini",
		System:    "You are a concise assistant.",
		Prompt:    "Give me 3 quick facts about the Moon.",
		MaxTokens: 150,
	}

	Ping = Sample{
		Name:      "ping",
		Model:     "gpt-4.1-mini",
		Prompt:    "Ping",
		MaxTokens: 64,
	}
)

// Request builds the conversation: the system message, if any, then the prompt.
func (s Sample) Request() (llm.CompletionRequest, error) {
	messages := make([]llm.Message, 0, 2)
	if s.System != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: s.System})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: s.Prompt})
	return llm.NewCompletionRequest(s.Model, messages, s.MaxTokens)
}

// NewLogger returns a production logger, at LOG_LEVEL when set.
func NewLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		level, err := zap.ParseAtomicLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", EnvLogLevel, err)
		}
		cfg.Level = level
	}
	return cfg.Build()
}

// NewClient resolves the configuration and builds the client the commands pass around.
func NewClient(explicit config.Overrides, logger *zap.Logger) (*llm.ChatClient, error) {
	cfg, err := config.Resolve(explicit)
	if err != nil {
		return nil, err
	}
	return llm.NewChatClient(cfg, llm.WithLogger(logger))
}

// Run sends s through completer and writes the reply to out.
func Run(ctx context.Context, completer llm.Completer, s Sample, out io.Writer) error {
	req, err := s.Request()
	if err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}

	resp, err := completer.Complete(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}

	_, err = fmt.Fprintln(out, resp.Text)
	return err
}
