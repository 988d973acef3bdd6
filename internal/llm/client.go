// Package llm constructs langchaingo model clients from configuration.
package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/nbcoach/nbcoach/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Client wraps a langchaingo model together with its configuration.
type Client struct {
	model    llms.Model
	modelCfg config.Model
}

// NewClient builds a provider client for the given model config. API
// keys are read from the environment (OPENAI_API_KEY,
// ANTHROPIC_API_KEY, GEMINI_API_KEY).
func NewClient(ctx context.Context, modelCfg config.Model) (*Client, error) {
	var model llms.Model
	var err error

	switch modelCfg.Provider {
	case "openai":
		model, err = openai.New(
			openai.WithModel(modelCfg.Name),
		)
	case "anthropic":
		model, err = anthropic.New(
			anthropic.WithModel(modelCfg.Name),
		)
	case "googleai":
		model, err = googleai.New(
			ctx,
			googleai.WithDefaultModel(modelCfg.Name),
			googleai.WithAPIKey(os.Getenv("GEMINI_API_KEY")),
		)
	case "ollama":
		opts := []ollama.Option{ollama.WithModel(modelCfg.Name)}
		if modelCfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(modelCfg.BaseURL))
		}
		model, err = ollama.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", modelCfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", modelCfg.Provider, err)
	}

	return &Client{
		model:    model,
		modelCfg: modelCfg,
	}, nil
}

// NewClientWithModel wraps an existing model. Used by tests to inject
// a fake.
func NewClientWithModel(model llms.Model, modelCfg config.Model) *Client {
	return &Client{model: model, modelCfg: modelCfg}
}

// Model returns the underlying langchaingo model.
func (c *Client) Model() llms.Model {
	return c.model
}

// GetConfig returns the model configuration the client was built with.
func (c *Client) GetConfig() config.Model {
	return c.modelCfg
}

// callOptions translates the model config into langchaingo call
// options.
func (c *Client) callOptions() []llms.CallOption {
	opts := []llms.CallOption{
		llms.WithTemperature(c.modelCfg.Temperature),
	}
	if c.modelCfg.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(c.modelCfg.MaxTokens))
	}
	return opts
}

// Complete sends a single fully rendered prompt and returns the model's
// text response.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	msgs := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := c.model.GenerateContent(ctx, msgs, c.callOptions()...)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}
	return resp.Choices[0].Content, nil
}

// CompleteStream is Complete with chunks delivered through callback as
// they arrive. The full response is still returned at the end.
func (c *Client) CompleteStream(ctx context.Context, prompt string, callback func(chunk []byte) error) (string, error) {
	msgs := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	opts := append(c.callOptions(), llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
		return callback(chunk)
	}))

	resp, err := c.model.GenerateContent(ctx, msgs, opts...)
	if err != nil {
		return "", fmt.Errorf("streaming completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}
	return resp.Choices[0].Content, nil
}
