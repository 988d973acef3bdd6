package shared

import (
	"context"
	"fmt"

	"github.com/nbcoach/nbcoach/internal/appstate"
	"github.com/nbcoach/nbcoach/internal/cache"
	"github.com/nbcoach/nbcoach/internal/repository"
	sqliteRepo "github.com/nbcoach/nbcoach/internal/repository/sqlite"
	"github.com/nbcoach/nbcoach/internal/service"
	"github.com/nbcoach/nbcoach/internal/storage"
)

// InitializeTutorService builds the full service stack from the global
// app state.
func InitializeTutorService(ctx context.Context) (*service.TutorService, error) {
	app := appstate.Get()

	svc, err := service.NewFromConfig(ctx, app.Config, OpenStores)
	if err != nil {
		return nil, fmt.Errorf("failed to create tutor service: %w", err)
	}
	return svc, nil
}

// OpenStores opens the shared database and returns the cache store and
// exchange repository on top of it.
func OpenStores(path string) (cache.Store, repository.ExchangeRepository, error) {
	db, err := storage.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewSQLStore(db), sqliteRepo.NewExchangeRepository(db), nil
}
