package summarizer

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient summarizes via Groq's OpenAI-compatible chat API.
type GroqClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewGroqClient creates a new Groq-backed summarizer.
func NewGroqClient(apiKey, model string, maxTokens int) (*GroqClient, error) {
	if apiKey == "" {
		return nil, errors.New("Groq API key is required")
	}
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL

	return &GroqClient{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Summarize sends the formatted conversation to the model and parses the
// structured JSON out of its reply.
func (c *GroqClient) Summarize(ctx context.Context, messages []Message, channelName string) (*Result, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(messages, channelName)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}

	return parseResult(resp.Choices[0].Message.Content)
}
