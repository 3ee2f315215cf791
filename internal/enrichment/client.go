package enrichment

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// TextGenerator is the boundary to the external text-generation capability.
// Implementations must return the raw completion text or an error; rate-limit
// errors are detected by the gateway via IsThrottled.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, user string) (string, error)
}

const defaultCallTimeout = 30 * time.Second

// OpenAIGenerator implements TextGenerator on the OpenAI chat-completion API.
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIGenerator builds a generator for the given credentials and model.
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: defaultCallTimeout,
	}
}

// GenerateText performs one chat completion and returns the trimmed content.
func (g *OpenAIGenerator) GenerateText(ctx context.Context, system, user string) (string, error) {
	apiCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(apiCtx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai api call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned from model %s", g.model)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
