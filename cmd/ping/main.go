package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/nguyenvanduocit/chatcomplete/config"
	"github.com/nguyenvanduocit/chatcomplete/sample"
)

const defaultConfigFile = "ping.yaml"

// Sends "Ping" with the key and proxy URL from the YAML file in CHAT_CONFIG_FILE,
// falling back to the environment for anything the file leaves out.
func main() {
	logger, err := sample.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	path := os.Getenv(config.EnvConfigFile)
	if path == "" {
		path = defaultConfigFile
	}

	explicit, err := config.LoadFile(path)
	if err != nil {
		logger.Fatal("load config file", zap.String("path", path), zap.Error(err))
	}

	client, err := sample.NewClient(explicit, logger)
	if err != nil {
		logger.Fatal("create chat client", zap.Error(err))
	}

	if err := sample.Run(context.Background(), client, sample.Ping, os.Stdout); err != nil {
		logger.Fatal("chat completion failed", zap.String("base_url", client.BaseURL()), zap.Error(err))
	}
}
