// Package config resolves the ChatClient configuration from explicit parameters,
// the process environment and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nguyenvanduocit/chatcomplete/llm"
)

const (
	EnvAPIKey       = "OPENAI_API_KEY"
	EnvBaseURL      = "OPENAI_BASE_URL"
	EnvOrganization = "OPENAI_ORG_ID"
	EnvTimeout      = "OPENAI_TIMEOUT"

	// EnvConfigFile names the YAML file cmd/ping reads its explicit parameters from.
	EnvConfigFile = "CHAT_CONFIG_FILE"
)

// Overrides are explicit parameters. Any non-zero field wins over the environment.
type Overrides struct {
	APIKey       string        `yaml:"api_key"`
	BaseURL      string        `yaml:"base_url"`
	Organization string        `yaml:"organization"`
	Timeout      time.Duration `yaml:"timeout"`
}

// Resolve merges explicit over environment and checks that a key is present.
func Resolve(explicit Overrides) (llm.ClientConfig, error) {
	cfg := llm.ClientConfig{
		APIKey:       firstNonEmpty(explicit.APIKey, env(EnvAPIKey)),
		BaseURL:      firstNonEmpty(explicit.BaseURL, env(EnvBaseURL)),
		Organization: firstNonEmpty(explicit.Organization, env(EnvOrganization)),
		Timeout:      explicit.Timeout,
	}

	if cfg.Timeout == 0 {
		if raw := env(EnvTimeout); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return llm.ClientConfig{}, &llm.Error{Kind: llm.ErrConfiguration, Message: fmt.Sprintf("parse %s", EnvTimeout), Err: err}
			}
			cfg.Timeout = d
		}
	}

	if cfg.APIKey == "" {
		return llm.ClientConfig{}, &llm.Error{
			Kind:    llm.ErrConfiguration,
			Message: fmt.Sprintf("no api key: pass one explicitly or set %s", EnvAPIKey),
		}
	}
	return cfg, nil
}

// LoadFile reads explicit parameters from a YAML file. A missing file is not an error.
func LoadFile(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Overrides{}, nil
	}
	if err != nil {
		return Overrides{}, &llm.Error{Kind: llm.ErrConfiguration, Message: "read " + path, Err: err}
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, &llm.Error{Kind: llm.ErrConfiguration, Message: "parse " + path, Err: err}
	}
	o.APIKey = strings.TrimSpace(o.APIKey)
	o.BaseURL = strings.TrimSpace(o.BaseURL)
	o.Organization = strings.TrimSpace(o.Organization)
	return o, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
