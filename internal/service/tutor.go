// Package service wires the prompt registry, model client, cache, and
// history together behind the operations the CLI exposes.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nbcoach/nbcoach/internal/cache"
	"github.com/nbcoach/nbcoach/internal/chain"
	"github.com/nbcoach/nbcoach/internal/config"
	"github.com/nbcoach/nbcoach/internal/domain"
	"github.com/nbcoach/nbcoach/internal/llm"
	"github.com/nbcoach/nbcoach/internal/prompt"
	"github.com/nbcoach/nbcoach/internal/repository"
)

// TutorService answers tutoring requests with one of the configured
// prompt templates.
type TutorService struct {
	registry *prompt.Registry
	client   *llm.Client
	store    cache.Store
	history  repository.ExchangeRepository
	logger   *slog.Logger
}

// Options assembles a TutorService. Store and History may be nil to
// disable caching and history recording.
type Options struct {
	Registry *prompt.Registry
	Client   *llm.Client
	Store    cache.Store
	History  repository.ExchangeRepository
	Logger   *slog.Logger
}

// New creates a TutorService.
func New(opts Options) (*TutorService, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("prompt registry is required")
	}
	if opts.Client == nil {
		return nil, fmt.Errorf("model client is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TutorService{
		registry: opts.Registry,
		client:   opts.Client,
		store:    opts.Store,
		history:  opts.History,
		logger:   logger,
	}, nil
}

// NewFromConfig builds the full service stack for the given
// configuration: prompt registry (file or embedded), provider client,
// and optionally the shared database for cache and history.
func NewFromConfig(ctx context.Context, cfg *config.ConfigSchema, openDB func(path string) (cache.Store, repository.ExchangeRepository, error)) (*TutorService, error) {
	registry := prompt.Default()
	if cfg.PromptsFile != "" {
		var err error
		registry, err = prompt.LoadFile(cfg.PromptsFile)
		if err != nil {
			return nil, err
		}
	}

	modelCfg, err := cfg.Active()
	if err != nil {
		return nil, err
	}
	client, err := llm.NewClient(ctx, modelCfg)
	if err != nil {
		return nil, err
	}

	var store cache.Store
	var history repository.ExchangeRepository
	if cfg.Cache.Enabled || cfg.History.Enabled {
		st, hist, err := openDB(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if cfg.Cache.Enabled {
			store = st
		}
		if cfg.History.Enabled {
			history = hist
		}
	}

	return New(Options{
		Registry: registry,
		Client:   client,
		Store:    store,
		History:  history,
	})
}

// Registry exposes the loaded prompt registry.
func (s *TutorService) Registry() *prompt.Registry {
	return s.registry
}

// Ask renders the named prompt around the student's snippet, runs it
// through the model, and records the exchange.
func (s *TutorService) Ask(ctx context.Context, promptName, input string) (*domain.Exchange, error) {
	return s.ask(ctx, promptName, input, nil)
}

// AskStream is Ask with incremental output through callback.
func (s *TutorService) AskStream(ctx context.Context, promptName, input string, callback func(chunk []byte) error) (*domain.Exchange, error) {
	return s.ask(ctx, promptName, input, callback)
}

func (s *TutorService) ask(ctx context.Context, promptName, input string, callback func(chunk []byte) error) (*domain.Exchange, error) {
	entry, err := s.registry.Get(promptName)
	if err != nil {
		return nil, err
	}

	tutorChain, err := chain.New("default", s.client, entry, s.store)
	if err != nil {
		return nil, err
	}

	var result *chain.Result
	if callback != nil {
		result, err = tutorChain.ExecuteStream(ctx, map[string]string{"text": input}, callback)
	} else {
		result, err = tutorChain.Execute(ctx, map[string]string{"text": input})
	}
	if err != nil {
		return nil, err
	}

	modelCfg := s.client.GetConfig()
	exchange := &domain.Exchange{
		PromptName: promptName,
		Input:      input,
		Rendered:   result.Rendered,
		Response:   result.Response,
		ModelName:  modelCfg.Name,
		Provider:   modelCfg.Provider,
		CacheHit:   result.CacheHit,
	}

	s.logger.Debug("tutoring exchange complete",
		"prompt", promptName,
		"model", modelCfg.Name,
		"provider", modelCfg.Provider,
		"cacheHit", result.CacheHit,
	)

	if s.history != nil {
		if err := s.history.Create(ctx, exchange); err != nil {
			// History failures do not fail the request.
			s.logger.Warn("failed to record exchange", "error", err)
		}
	}

	return exchange, nil
}
