// Package chain runs a prompt template against a model, with an
// optional response cache in front of the call.
package chain

import (
	"context"
	"fmt"

	"github.com/nbcoach/nbcoach/internal/cache"
	"github.com/nbcoach/nbcoach/internal/llm"
	"github.com/nbcoach/nbcoach/internal/prompt"

	"github.com/tmc/langchaingo/chains"
)

// Result carries the model's answer plus where it came from.
type Result struct {
	Response string
	Rendered string
	CacheHit bool
}

// TutorChain binds one prompt entry to a model client.
type TutorChain struct {
	client *llm.Client
	entry  *prompt.Entry
	store  cache.Store
}

// New builds a chain for the given chain type. Only the "default"
// (plain prompt-to-completion) type exists; an empty type means
// "default". The store may be nil to disable caching.
func New(chainType string, client *llm.Client, entry *prompt.Entry, store cache.Store) (*TutorChain, error) {
	switch chainType {
	case "", "default":
	default:
		return nil, fmt.Errorf("unknown chain type %q", chainType)
	}
	return &TutorChain{
		client: client,
		entry:  entry,
		store:  store,
	}, nil
}

// Execute renders the template with the supplied variables and returns
// the model's answer. With a cache store attached, an identical prompt
// to the same provider and model is answered from the cache.
func (c *TutorChain) Execute(ctx context.Context, vars map[string]string) (*Result, error) {
	rendered, err := c.entry.Render(vars)
	if err != nil {
		return nil, err
	}

	modelCfg := c.client.GetConfig()
	key := cache.Key(modelCfg.Provider, modelCfg.Name, rendered)

	if c.store != nil {
		cached, ok, err := c.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("cache lookup failed: %w", err)
		}
		if ok {
			return &Result{Response: cached, Rendered: rendered, CacheHit: true}, nil
		}
	}

	response, err := c.run(ctx, vars)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		if err := c.store.Put(ctx, key, response); err != nil {
			return nil, fmt.Errorf("cache store failed: %w", err)
		}
	}

	return &Result{Response: response, Rendered: rendered}, nil
}

// ExecuteStream is Execute with incremental output. Cache hits are
// delivered to the callback in one chunk.
func (c *TutorChain) ExecuteStream(ctx context.Context, vars map[string]string, callback func(chunk []byte) error) (*Result, error) {
	rendered, err := c.entry.Render(vars)
	if err != nil {
		return nil, err
	}

	modelCfg := c.client.GetConfig()
	key := cache.Key(modelCfg.Provider, modelCfg.Name, rendered)

	if c.store != nil {
		cached, ok, err := c.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("cache lookup failed: %w", err)
		}
		if ok {
			if err := callback([]byte(cached)); err != nil {
				return nil, err
			}
			return &Result{Response: cached, Rendered: rendered, CacheHit: true}, nil
		}
	}

	response, err := c.client.CompleteStream(ctx, rendered, callback)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		if err := c.store.Put(ctx, key, response); err != nil {
			return nil, fmt.Errorf("cache store failed: %w", err)
		}
	}

	return &Result{Response: response, Rendered: rendered}, nil
}

// run executes the underlying LLMChain and reads its text output.
func (c *TutorChain) run(ctx context.Context, vars map[string]string) (string, error) {
	llmChain := chains.NewLLMChain(c.client.Model(), c.entry.Template())

	values := make(map[string]any, len(vars))
	for k, v := range vars {
		values[k] = v
	}

	out, err := chains.Call(ctx, llmChain, values, c.callOptions()...)
	if err != nil {
		return "", fmt.Errorf("chain call failed: %w", err)
	}

	text, ok := out[llmChain.OutputKey].(string)
	if !ok {
		return "", fmt.Errorf("chain returned no text output")
	}
	return text, nil
}

func (c *TutorChain) callOptions() []chains.ChainCallOption {
	modelCfg := c.client.GetConfig()
	opts := []chains.ChainCallOption{
		chains.WithTemperature(modelCfg.Temperature),
	}
	if modelCfg.MaxTokens > 0 {
		opts = append(opts, chains.WithMaxTokens(modelCfg.MaxTokens))
	}
	return opts
}
