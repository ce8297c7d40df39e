package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"github.com/causehire/recruit-api/internal/config"
	"github.com/causehire/recruit-api/internal/domain"
)

const minutePerBurst = time.Minute

// TextModel is the outbound text-generation call. The Anthropic client is the
// production implementation; tests inject fakes.
type TextModel interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// AnthropicModel calls the Anthropic Messages API with a client-side rate
// limit so a burst of drafts cannot exhaust the account quota.
type AnthropicModel struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	timeout   time.Duration
	limiter   *rate.Limiter
}

// NewAnthropicModel creates a model client from config.
func NewAnthropicModel(cfg config.GenerationConfig) *AnthropicModel {
	return &AnthropicModel{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     anthropic.Model(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
		timeout:   cfg.Timeout,
		limiter:   rate.NewLimiter(rate.Every(minutePerBurst/time.Duration(cfg.RequestsPerMinute)), 1),
	}
}

// Complete sends one prompt and returns the generated text. Any downstream
// failure (timeout, quota, empty output) surfaces as domain.ErrGeneration.
func (m *AnthropicModel) Complete(ctx context.Context, system, prompt string) (string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit wait: %v", domain.ErrGeneration, err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	msg, err := m.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     m.model,
		MaxTokens: m.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: model returned no text", domain.ErrGeneration)
	}

	return text, nil
}
