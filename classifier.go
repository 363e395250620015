package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// IntentClassifier maps an instruction payload plus a raw user query to a
// structured JSON reply. Implementations must request strict JSON output.
type IntentClassifier interface {
	Classify(ctx context.Context, instructions, query string) (string, error)
}

// OpenAIClassifier talks to any OpenAI-compatible chat endpoint in JSON
// object mode with a low temperature, so the reply is a single parseable
// object rather than prose.
type OpenAIClassifier struct {
	client      *openai.Client
	model       string
	temperature float32
}

func NewOpenAIClassifier(cfg *OpenAIConfig) *OpenAIClassifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: 60 * time.Second}

	return &OpenAIClassifier{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
	}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, instructions, query string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instructions},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("classifier request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from classifier")
	}
	return resp.Choices[0].Message.Content, nil
}
