package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/nbcoach/nbcoach/internal/domain"
	"github.com/nbcoach/nbcoach/internal/storage"
)

func testRepo(t *testing.T) *exchangeRepo {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return &exchangeRepo{db: db}
}

func TestCreateAndGet(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	exchange := &domain.Exchange{
		PromptName: "hint",
		Input:      "def f(): pass",
		Rendered:   "give a hint about def f(): pass",
		Response:   "think about the return value",
		ModelName:  "gpt-4o-mini",
		Provider:   "openai",
	}
	if err := repo.Create(ctx, exchange); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if exchange.ID == uuid.Nil {
		t.Fatal("Create() should assign an ID")
	}

	got, err := repo.GetByID(ctx, exchange.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.PromptName != "hint" || got.Response != "think about the return value" {
		t.Errorf("GetByID() = %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !domain.IsNoExchangeError(err) {
		t.Errorf("GetByID() error = %v, want NoExchangeError", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for _, name := range []string{"explain question", "hint", "fully-explain"} {
		if err := repo.Create(ctx, &domain.Exchange{PromptName: name}); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	all, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d exchanges, want 3", len(all))
	}

	limited, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(limit) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d exchanges, want 2", len(limited))
	}
}

func TestDelete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	exchange := &domain.Exchange{PromptName: "hint"}
	if err := repo.Create(ctx, exchange); err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(ctx, exchange.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, exchange.ID); !domain.IsNoExchangeError(err) {
		t.Errorf("GetByID() after delete error = %v, want NoExchangeError", err)
	}

	t.Run("missing id", func(t *testing.T) {
		if err := repo.Delete(ctx, uuid.New()); !domain.IsNoExchangeError(err) {
			t.Errorf("Delete() error = %v, want NoExchangeError", err)
		}
	})
}
