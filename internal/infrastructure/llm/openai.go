package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/caresync/patient-records/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Generator produces text through the OpenAI chat-completions API. It
// implements ports.TextGenerator; failures surface as the gateway's
// recoverable error pair, never anything fatal to persisted state.
type Generator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewGenerator(apiKey, model string, timeout time.Duration) *Generator {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Generator{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

func (g *Generator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.ErrGatewayTimeout
		}
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", domain.ErrGatewayUnavailable)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
