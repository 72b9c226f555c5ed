package testsupport

import (
	"context"
	"testing"

	"versecut/internal/config"
	"versecut/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddJob inserts a pending render job for tests using the provided store.
func AddJob(t testing.TB, store *queue.Store, input, output string) *queue.Item {
	t.Helper()

	item, err := store.Add(context.Background(), &queue.Item{InputPath: input, OutputPath: output})
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return item
}
