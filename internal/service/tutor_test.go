package service

import (
	"context"
	"strings"
	"testing"

	"github.com/nbcoach/nbcoach/internal/cache"
	"github.com/nbcoach/nbcoach/internal/config"
	"github.com/nbcoach/nbcoach/internal/domain"
	"github.com/nbcoach/nbcoach/internal/llm"
	"github.com/nbcoach/nbcoach/internal/prompt"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	response string
	calls    int
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, p string, options ...llms.CallOption) (string, error) {
	f.calls++
	return f.response, nil
}

type memoryRepo struct {
	exchanges []*domain.Exchange
}

func (r *memoryRepo) Create(ctx context.Context, e *domain.Exchange) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.exchanges = append(r.exchanges, e)
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exchange, error) {
	for _, e := range r.exchanges {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.NoExchangeError{}
}

func (r *memoryRepo) List(ctx context.Context, limit int) ([]*domain.Exchange, error) {
	return r.exchanges, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range r.exchanges {
		if e.ID == id {
			r.exchanges = append(r.exchanges[:i], r.exchanges[i+1:]...)
			return nil
		}
	}
	return domain.NoExchangeError{}
}

func testService(t *testing.T) (*TutorService, *fakeModel, *memoryRepo) {
	t.Helper()

	fake := &fakeModel{response: "consider using a loop"}
	repo := &memoryRepo{}
	svc, err := New(Options{
		Registry: prompt.Default(),
		Client: llm.NewClientWithModel(fake, config.Model{
			Provider: "openai",
			Name:     "test-model",
		}),
		Store:   cache.NewMemoryStore(),
		History: repo,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc, fake, repo
}

func TestAsk(t *testing.T) {
	svc, _, repo := testService(t)

	exchange, err := svc.Ask(context.Background(), "hint", "sum = 0")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if exchange.Response != "consider using a loop" {
		t.Errorf("Response = %q", exchange.Response)
	}
	if exchange.PromptName != "hint" {
		t.Errorf("PromptName = %q", exchange.PromptName)
	}
	if !strings.Contains(exchange.Rendered, "sum = 0") {
		t.Error("Rendered should contain the input snippet")
	}
	if len(repo.exchanges) != 1 {
		t.Errorf("history has %d exchanges, want 1", len(repo.exchanges))
	}
}

func TestAskUnknownPrompt(t *testing.T) {
	svc, _, _ := testService(t)

	_, err := svc.Ask(context.Background(), "socratic", "x")
	if err == nil || !strings.Contains(err.Error(), "unknown prompt") {
		t.Errorf("Ask() error = %v, want unknown prompt error", err)
	}
}

func TestAskCachesRepeats(t *testing.T) {
	svc, fake, repo := testService(t)
	ctx := context.Background()

	first, err := svc.Ask(ctx, "hint", "x = 1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Ask(ctx, "hint", "x = 1")
	if err != nil {
		t.Fatal(err)
	}

	if first.CacheHit {
		t.Error("first exchange should not be a cache hit")
	}
	if !second.CacheHit {
		t.Error("second exchange should be a cache hit")
	}
	if fake.calls != 1 {
		t.Errorf("model calls = %d, want 1", fake.calls)
	}
	// Both exchanges are recorded, hit or not.
	if len(repo.exchanges) != 2 {
		t.Errorf("history has %d exchanges, want 2", len(repo.exchanges))
	}
}

func TestAskStream(t *testing.T) {
	svc, _, _ := testService(t)

	var got strings.Builder
	exchange, err := svc.AskStream(context.Background(), "explain question", "print('hi')", func(chunk []byte) error {
		got.Write(chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("AskStream() error = %v", err)
	}
	if exchange.Response != "consider using a loop" {
		t.Errorf("Response = %q", exchange.Response)
	}
}
