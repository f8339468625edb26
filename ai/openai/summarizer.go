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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/cadsentinel/ai"
	"github.com/poiesic/cadsentinel/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client    llms.Model
	modelName string
	logger    *slog.Logger
}

// summaryResponse matches the JSON object the model is instructed to
// return.
type summaryResponse struct {
	StructuredSummary   core.Payload `json:"structured_summary"`
	LongFormDescription string       `json:"long_form_description"`
	ShortDescription    string       `json:"short_description"`
}

func chatClientOptions(config *ai.Config) []openai.Option {
	opts := []openai.Option{
		openai.WithModel(config.ChatModel),
	}
	if config.ChatHost != "" {
		opts = append(opts, openai.WithBaseURL(config.ChatHost))
	}
	if config.Token != "" {
		opts = append(opts, openai.WithToken(config.Token))
	}
	return opts
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(chatClientOptions(config)...)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		client:    client,
		modelName: config.ChatModel,
		logger:    slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize generates the structured summary and long-form description
// for one parsed drawing.
func (s *Summarizer) Summarize(ctx context.Context, req ai.SummaryRequest) (*ai.SummaryOutput, error) {
	drawingJSON, err := json.Marshal(req.Drawing)
	if err != nil {
		return nil, fmt.Errorf("encoding drawing for summary: %w", err)
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(summarySystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSummaryUserPrompt(req.DocumentHash, req.PreviewRef, string(drawingJSON))),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result summaryResponse
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.15), llms.WithJSONMode())
		if err != nil {
			s.logger.Error("failed to generate summary", "attempt", attempt+1, "err", err)
			return nil, fmt.Errorf("%w: %w", ai.ErrUpstreamProvider, err)
		}

		if len(response.Choices) < 1 {
			return nil, fmt.Errorf("%w: model returned no choices", ai.ErrUpstreamProvider)
		}

		responseText := stripCodeFences(response.Choices[0].Content)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			s.logger.Warn("error parsing summary response",
				"attempt", attempt+1,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		s.logger.Error("failed to parse summary response after retries", "err", lastErr)
		return nil, fmt.Errorf("%w: malformed summary response: %w", ai.ErrUpstreamProvider, lastErr)
	}

	if result.LongFormDescription == "" {
		return nil, fmt.Errorf("%w: summary has no long-form description", ai.ErrUpstreamProvider)
	}

	return &ai.SummaryOutput{
		Structured:       result.StructuredSummary,
		LongForm:         result.LongFormDescription,
		ShortDescription: result.ShortDescription,
		ModelName:        s.modelName,
	}, nil
}

// stripCodeFences removes markdown code fences some models wrap around
// JSON responses.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
