// Copyright (c) 2025-2026 Dementia Research Information Project
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIProvider translates via the OpenAI chat completions API. Meant for
// deployments where the free Google endpoint is blocked or too unreliable.
type OpenAIProvider struct {
	client     openai.Client
	model      string
	sourceLang string
}

// NewOpenAI creates an OpenAI translation provider using the given model,
// translating from sourceLang.
func NewOpenAI(apiKey, model, sourceLang string) *OpenAIProvider {
	return &OpenAIProvider{
		client:     openai.NewClient(option.WithAPIKey(apiKey)),
		model:      model,
		sourceLang: sourceLang,
	}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// Translate implements Provider.
func (p *OpenAIProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	system := fmt.Sprintf(
		"You are a translation engine. Translate the user's text from %s to %s. "+
			"Respond with the translation only, no explanations or quotes.",
		p.sourceLang, targetLang)

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("empty completion")}
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("empty translation")}
	}
	return translated, nil
}
