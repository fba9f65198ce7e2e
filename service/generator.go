package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
)

// Generator produces a raw answer from a system prompt and the user's query
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userQuery string) (string, error)
}

// GenerationSettings tunes a generative backend. A low temperature favours
// deterministic answers.
type GenerationSettings struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

var errEmptyAnswer = errors.New("model returned empty content")

// GeminiGenerator calls Gemini through the generative-ai-go client
type GeminiGenerator struct {
	client   *genai.Client
	settings GenerationSettings
}

// NewGeminiGenerator creates a generator backed by client
func NewGeminiGenerator(client *genai.Client, settings GenerationSettings) *GeminiGenerator {
	return &GeminiGenerator{client: client, settings: settings}
}

// Generate sends the prompt as the system instruction and the query as content
func (g *GeminiGenerator) Generate(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	if g.client == nil {
		return "", errors.New("gemini client not set")
	}

	model := g.client.GenerativeModel(g.settings.Model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	model.SetTemperature(g.settings.Temperature)
	if g.settings.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(g.settings.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userQuery))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("gemini blocked prompt: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var text strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}

	answer := strings.TrimSpace(text.String())
	if answer == "" {
		return "", errEmptyAnswer
	}
	return answer, nil
}

// OpenAIGenerator calls any OpenAI-compatible chat completion endpoint
type OpenAIGenerator struct {
	client   *openai.Client
	settings GenerationSettings
}

// NewOpenAIGenerator creates a generator for apiKey. An empty baseURL uses
// the public OpenAI endpoint.
func NewOpenAIGenerator(apiKey, baseURL string, settings GenerationSettings) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIGenerator{
		client:   openai.NewClientWithConfig(cfg),
		settings: settings,
	}
}

// Generate sends a system and a user message
func (o *OpenAIGenerator) Generate(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.settings.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userQuery},
		},
		Temperature: o.settings.Temperature,
		MaxTokens:   o.settings.MaxTokens,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("OpenAI returned no choices")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", errEmptyAnswer
	}
	return answer, nil
}
