package history

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), slog.Default())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	runs := []Run{
		{Command: "send", Platform: "discord", Recipient: "123", Outcome: "ok"},
		{Command: "purge", Platform: "discord", Recipient: "123", Deleted: 7, Outcome: "ok"},
		{Command: "purge", Platform: "discord", Recipient: "123", Deleted: 2, Outcome: "rate-limit"},
	}
	for _, r := range runs {
		if err := store.Record(ctx, r); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d runs, want 3", len(got))
	}
	// Newest first.
	if got[0].Outcome != "rate-limit" || got[0].Deleted != 2 {
		t.Fatalf("newest run = %+v, want the rate-limit purge", got[0])
	}
	if got[2].Command != "send" {
		t.Fatalf("oldest run = %+v, want the send", got[2])
	}
}

func TestRecentRespectsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, Run{Command: "send", Platform: "telegram", Recipient: "9", Outcome: "ok"}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d runs, want 2", len(got))
	}
}

func TestRecentEmpty(t *testing.T) {
	store := openTestStore(t)
	got, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d runs, want none", len(got))
	}
}
