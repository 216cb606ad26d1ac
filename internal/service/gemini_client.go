package service

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient adapts the Gemini SDK to the TextCompleter interface used by
// the planner.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("GenerateContent: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty completion from model %s", c.model)
	}
	return text, nil
}
