package middleware_test

import (
	"context"
	"testing"

	"github.com/flowsmith/flowsmith/pkg/adapters/memory"
	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/persistence/middleware"
	"github.com/flowsmith/flowsmith/pkg/ports/tests"
)

func TestRedactionMiddleware_MasksPersistedCopy(t *testing.T) {
	underlying := memory.NewStore()
	mw := middleware.NewRedactionMiddleware([]string{
		`sk-[A-Za-z0-9]+`,
		`[\w.+-]+@[\w-]+\.[\w.]+`,
	})
	store := mw(underlying)

	ctx := context.Background()
	run := domain.PendingRun{
		RunID:   "run-1",
		Input:   "send results to ops@example.com using sk-abc123",
		Answers: map[string]string{"contact": "reply to admin@example.com"},
	}

	if err := store.Save(ctx, run); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The persisted copy is masked.
	stored, err := underlying.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if stored.Input != "send results to *** using ***" {
		t.Errorf("Expected masked input, got %q", stored.Input)
	}
	if stored.Answers["contact"] != "reply to ***" {
		t.Errorf("Expected masked answer, got %q", stored.Answers["contact"])
	}

	// The caller's run is untouched.
	if run.Input != "send results to ops@example.com using sk-abc123" {
		t.Errorf("Caller's run was mutated: %q", run.Input)
	}
	if run.Answers["contact"] != "reply to admin@example.com" {
		t.Errorf("Caller's answers were mutated: %q", run.Answers["contact"])
	}
}

func TestRedactionMiddleware_Contract(t *testing.T) {
	// With no patterns the middleware is a pass-through and must still
	// honor the store contract.
	mw := middleware.NewRedactionMiddleware(nil)
	tests.RunStoreContract(t, mw(memory.NewStore()))
}
