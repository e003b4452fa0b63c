package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/nguyenvanduocit/chatcomplete/config"
	"github.com/nguyenvanduocit/chatcomplete/sample"
)

// Sends the Moon facts sample using OPENAI_API_KEY and, if set, OPENAI_BASE_URL.
func main() {
	logger, err := sample.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	client, err := sample.NewClient(config.Overrides{}, logger)
	if err != nil {
		logger.Fatal("create chat client", zap.Error(err))
	}

	if err := sample.Run(context.Background(), client, sample.MoonFacts, os.Stdout); err != nil {
		logger.Fatal("chat completion failed", zap.String("base_url", client.BaseURL()), zap.Error(err))
	}
}
