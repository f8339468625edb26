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


package main

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/poiesic/cadsentinel/ai"
)

// fileConfig is the on-disk TOML configuration, kept at
// ~/.cadsentinel/config.toml unless overridden with --config.
type fileConfig struct {
	// Mode is the AI backend activated at startup: "openai" or "local".
	Mode string `toml:"mode"`

	Database databaseConfig `toml:"database"`
	OpenAI   providerConfig `toml:"openai"`
	Local    providerConfig `toml:"local"`
	Search   searchConfig   `toml:"search"`
	Chat     chatConfig     `toml:"chat"`
}

type databaseConfig struct {
	Path string `toml:"path"`
}

type providerConfig struct {
	EmbeddingHost  string `toml:"embedding_host"`
	ChatHost       string `toml:"chat_host"`
	EmbeddingModel string `toml:"embedding_model"`
	ChatModel      string `toml:"chat_model"`
	Token          string `toml:"token"`
	Dimension      int    `toml:"dimension"`
}

type searchConfig struct {
	Alpha     float64 `toml:"alpha"`
	TopK      int     `toml:"top_k"`
	Threshold float64 `toml:"threshold"`
}

type chatConfig struct {
	SummaryChunks   int `toml:"summary_chunks"`
	NoteChunks      int `toml:"note_chunks"`
	DimensionChunks int `toml:"dimension_chunks"`
}

func defaultConfig() *fileConfig {
	return &fileConfig{
		Mode: string(ai.ModeOpenAI),
		Search: searchConfig{
			Alpha:     -1, // -1 selects the searcher default
			TopK:      10,
			Threshold: -2, // below any cosine score, so no cut
		},
		Chat: chatConfig{
			SummaryChunks:   3,
			NoteChunks:      8,
			DimensionChunks: 12,
		},
	}
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cadsentinel", "config.toml"), nil
}

// loadConfig reads the TOML file at path, or the default location when
// path is empty. A missing file yields defaults; the resolved path is
// returned so saveConfig writes back to the same place.
func loadConfig(path string) (*fileConfig, string, error) {
	if path == "" {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return nil, "", err
		}
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, path, nil
		}
		return nil, "", err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func saveConfig(cfg *fileConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// databasePath resolves the store location: flag, then config file,
// then ~/.cadsentinel/db.
func (c *fileConfig) databasePath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cadsentinel", "db"), nil
}

// aiConfig builds the provider configuration for mode, starting from
// the mode's defaults and overlaying any fields set in the file.
func (p providerConfig) aiConfig(mode ai.Mode) *ai.Config {
	var opts []ai.ConfigOption
	if p.EmbeddingHost != "" {
		opts = append(opts, ai.WithEmbeddingHost(p.EmbeddingHost))
	}
	if p.ChatHost != "" {
		opts = append(opts, ai.WithChatHost(p.ChatHost))
	}
	if p.EmbeddingModel != "" {
		opts = append(opts, ai.WithEmbeddingModel(p.EmbeddingModel))
	}
	if p.ChatModel != "" {
		opts = append(opts, ai.WithChatModel(p.ChatModel))
	}
	if p.Token != "" {
		opts = append(opts, ai.WithToken(p.Token))
	}
	if p.Dimension > 0 {
		opts = append(opts, ai.WithDimension(p.Dimension))
	}
	return ai.NewConfig(mode, opts...)
}
