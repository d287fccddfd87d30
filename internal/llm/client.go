package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"jobinsight-engine/internal/config"
)

var (
	ErrEmptyPrompt = errors.New("prompt is empty")
	ErrNoModel     = errors.New("llm model name is not set")
)

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client sends prompts to a langchaingo model with the configured sampling
// settings.
type Client struct {
	model llms.Model
	cfg   config.LLMConfig
	log   zerolog.Logger
}

// New builds a Gemini-backed client. The configuration is passed in
// explicitly; nothing here reads globals.
func New(ctx context.Context, cfg config.LLMConfig, apiKey string, log zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, ErrNoModel
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google api key is empty")
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return NewWithModel(model, cfg, log), nil
}

func NewWithModel(model llms.Model, cfg config.LLMConfig, log zerolog.Logger) *Client {
	return &Client{model: model, cfg: cfg, log: log}
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	if sys := strings.TrimSpace(c.cfg.SystemPrompt); sys != "" {
		prompt = sys + "\n\n" + prompt
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, c.callOptions()...)
	if err != nil {
		c.log.Error().Err(err).Str("model", c.cfg.Model).Msg("generation failed")
		return "", fmt.Errorf("generate content: %w", err)
	}
	c.log.Debug().Str("model", c.cfg.Model).Int("prompt_chars", len(prompt)).Int("response_chars", len(resp)).Msg("generation ok")
	return resp, nil
}

func (c *Client) callOptions() []llms.CallOption {
	opts := []llms.CallOption{
		llms.WithTemperature(c.cfg.Temperature),
		llms.WithTopP(c.cfg.TopP),
	}
	if c.cfg.TopK > 0 {
		opts = append(opts, llms.WithTopK(c.cfg.TopK))
	}
	if c.cfg.MaxOutputTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(c.cfg.MaxOutputTokens))
	}
	return opts
}

// Respond never fails: generation errors come back as readable text so the
// caller can show them in place of an answer.
func Respond(ctx context.Context, g Generator, prompt string) string {
	out, err := g.Generate(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("Error generating response: %v", err)
	}
	return out
}
