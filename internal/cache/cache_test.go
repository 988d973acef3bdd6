package cache

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestKey(t *testing.T) {
	a := Key("openai", "gpt-4o-mini", "explain this")
	b := Key("openai", "gpt-4o-mini", "explain this")
	if a != b {
		t.Error("identical inputs should produce identical keys")
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}

	tests := []struct {
		name     string
		provider string
		model    string
		prompt   string
	}{
		{"different provider", "anthropic", "gpt-4o-mini", "explain this"},
		{"different model", "openai", "gpt-4o", "explain this"},
		{"different prompt", "openai", "gpt-4o-mini", "explain that"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Key(tt.provider, tt.model, tt.prompt) == a {
				t.Error("key should change when any input changes")
			}
		})
	}
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sql":    NewSQLStore(db),
	}
}

func TestStores(t *testing.T) {
	ctx := context.Background()

	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			key := Key("openai", "gpt-4o-mini", "prompt")

			if _, ok, err := store.Get(ctx, key); err != nil || ok {
				t.Fatalf("Get() on empty store = ok %v, err %v", ok, err)
			}

			if err := store.Put(ctx, key, "first"); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			got, ok, err := store.Get(ctx, key)
			if err != nil || !ok {
				t.Fatalf("Get() after Put = ok %v, err %v", ok, err)
			}
			if got != "first" {
				t.Errorf("Get() = %q, want first", got)
			}

			// Put replaces.
			if err := store.Put(ctx, key, "second"); err != nil {
				t.Fatalf("Put() replace error = %v", err)
			}
			got, _, _ = store.Get(ctx, key)
			if got != "second" {
				t.Errorf("Get() after replace = %q, want second", got)
			}

			n, err := store.Len(ctx)
			if err != nil || n != 1 {
				t.Errorf("Len() = %d, %v, want 1", n, err)
			}

			if err := store.Purge(ctx); err != nil {
				t.Fatalf("Purge() error = %v", err)
			}
			n, _ = store.Len(ctx)
			if n != 0 {
				t.Errorf("Len() after purge = %d, want 0", n)
			}
		})
	}
}
