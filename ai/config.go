// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects which provider backend a factory constructs.
type Mode string

const (
	// ModeOpenAI routes embedding, summarization and answering through
	// the hosted OpenAI API.
	ModeOpenAI Mode = "openai"

	// ModeLocal routes everything through a local OpenAI-compatible
	// server (Ollama, LocalAI, vLLM).
	ModeLocal Mode = "local"
)

// ParseMode converts a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeOpenAI:
		return ModeOpenAI, nil
	case ModeLocal:
		return ModeLocal, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Config holds configuration for one AI provider backend.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Empty means the backend's default endpoint.
	EmbeddingHost string

	// ChatHost is the base URL for the chat (summary/answer) API.
	// Empty means the backend's default endpoint.
	ChatHost string

	// EmbeddingModel is the model identifier used for text embeddings.
	EmbeddingModel string

	// ChatModel is the model identifier used for summarization and
	// answering.
	ChatModel string

	// Token authenticates against the backend. Local OpenAI-compatible
	// servers accept any non-empty value.
	Token string

	// Dimension is the fixed embedding width D. Every stored and
	// compared vector has exactly this many components.
	// Default: 1536
	Dimension int

	// MaxChars caps the length of any text sent for embedding; longer
	// texts are truncated before the call.
	// Default: 2000
	MaxChars int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithChatHost sets the chat service host URL.
func WithChatHost(host string) ConfigOption {
	return func(c *Config) {
		c.ChatHost = host
	}
}

// WithHost sets both embedding and chat hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.ChatHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithChatModel sets the chat model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithDimension sets the fixed embedding width.
func WithDimension(dim int) ConfigOption {
	return func(c *Config) {
		c.Dimension = dim
	}
}

// WithMaxChars sets the embedding text length cap.
func WithMaxChars(n int) ConfigOption {
	return func(c *Config) {
		c.MaxChars = n
	}
}

// OpenAIConfig returns the default configuration for the hosted OpenAI
// backend. The token is expected to be supplied by the caller (usually
// from the environment).
func OpenAIConfig() *Config {
	return &Config{
		EmbeddingModel: "text-embedding-3-small",
		ChatModel:      "gpt-4.1",
		Dimension:      1536,
		MaxChars:       2000,
	}
}

// LocalConfig returns the default configuration for a local
// OpenAI-compatible server.
func LocalConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:  defaultHost,
		ChatHost:       defaultHost,
		EmbeddingModel: "embeddinggemma",
		ChatModel:      "qwen2.5:3b",
		Token:          "none",
		Dimension:      1536,
		MaxChars:       2000,
	}
}

// NewConfig creates a Config for the given mode and applies the
// provided options.
func NewConfig(mode Mode, opts ...ConfigOption) *Config {
	var cfg *Config
	if mode == ModeLocal {
		cfg = LocalConfig()
	} else {
		cfg = OpenAIConfig()
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. Hosts get
// the /v1 suffix required by OpenAI-compatible APIs when missing.
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
	if c.ChatHost != "" && !strings.HasSuffix(c.ChatHost, "/v1") {
		c.ChatHost = strings.TrimSuffix(c.ChatHost, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete. It
// normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.Dimension <= 0 {
		return errors.New("ai config: Dimension must be positive")
	}
	if c.MaxChars <= 0 {
		return errors.New("ai config: MaxChars must be positive")
	}
	return nil
}
