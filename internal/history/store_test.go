package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/studyhall/kyoshi/internal/models"
)

// storeFixtures builds each backend against a temp location.
func storeFixtures(t *testing.T) map[string]Store {
	t.Helper()
	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "history"))
	if err != nil {
		t.Fatal(err)
	}
	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = fileStore.Close()
		_ = sqliteStore.Close()
	})
	return map[string]Store{"file": fileStore, "sqlite": sqliteStore}
}

func TestStore_unknownSessionEmpty(t *testing.T) {
	for name, store := range storeFixtures(t) {
		t.Run(name, func(t *testing.T) {
			turns, err := store.Get(context.Background(), "never-seen")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if len(turns) != 0 {
				t.Errorf("unknown session should be empty, got %d turns", len(turns))
			}
		})
	}
}

func TestStore_appendAndRoundTrip(t *testing.T) {
	for name, store := range storeFixtures(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := []models.Turn{
				{Role: models.RoleUser, Content: "what is a heap?"},
				{Role: models.RoleAssistant, Content: "a tree-shaped priority structure"},
			}
			for _, turn := range want {
				if err := store.Append(ctx, "s1", turn); err != nil {
					t.Fatalf("Append: %v", err)
				}
			}
			got, err := store.Get(ctx, "s1")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("got %d turns, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("turn %d: got %+v want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestStore_fifoEvictionAtCap(t *testing.T) {
	for name, store := range storeFixtures(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			total := MaxTurns + 7
			for i := 0; i < total; i++ {
				turn := models.Turn{Role: models.RoleUser, Content: fmt.Sprintf("msg-%d", i)}
				if err := store.Append(ctx, "s2", turn); err != nil {
					t.Fatalf("Append %d: %v", i, err)
				}
				got, err := store.Get(ctx, "s2")
				if err != nil {
					t.Fatal(err)
				}
				if len(got) > MaxTurns {
					t.Fatalf("history exceeded cap after %d appends: %d", i+1, len(got))
				}
			}
			got, err := store.Get(ctx, "s2")
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != MaxTurns {
				t.Fatalf("expected %d turns, got %d", MaxTurns, len(got))
			}
			// Oldest evicted first, order preserved.
			for i, turn := range got {
				want := fmt.Sprintf("msg-%d", total-MaxTurns+i)
				if turn.Content != want {
					t.Errorf("turn %d content=%q want %q", i, turn.Content, want)
				}
			}
		})
	}
}

func TestStore_clear(t *testing.T) {
	for name, store := range storeFixtures(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := store.Append(ctx, "s3", models.Turn{Role: models.RoleUser, Content: "hi"}); err != nil {
				t.Fatal(err)
			}
			if err := store.Clear(ctx, "s3"); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			got, err := store.Get(ctx, "s3")
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 0 {
				t.Errorf("cleared session should be empty, got %d turns", len(got))
			}
		})
	}
}

func TestStore_sessionsIsolated(t *testing.T) {
	for name, store := range storeFixtures(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := store.Append(ctx, "alice", models.Turn{Role: models.RoleUser, Content: "from alice"}); err != nil {
				t.Fatal(err)
			}
			if err := store.Append(ctx, "bob", models.Turn{Role: models.RoleUser, Content: "from bob"}); err != nil {
				t.Fatal(err)
			}
			alice, _ := store.Get(ctx, "alice")
			bob, _ := store.Get(ctx, "bob")
			if len(alice) != 1 || alice[0].Content != "from alice" {
				t.Errorf("alice history polluted: %+v", alice)
			}
			if len(bob) != 1 || bob[0].Content != "from bob" {
				t.Errorf("bob history polluted: %+v", bob)
			}
		})
	}
}

func TestFileStore_persistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "history")
	first, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := first.Append(ctx, "s", models.Turn{Role: models.RoleUser, Content: "survives restarts"}); err != nil {
		t.Fatal(err)
	}
	_ = first.Close()

	second, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, err := second.Get(ctx, "s")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Content != "survives restarts" {
		t.Errorf("reload mismatch: %+v", got)
	}
}

func TestSanitizeSessionID(t *testing.T) {
	if sanitizeSessionID("") != "default" {
		t.Error("empty key maps to default")
	}
	if sanitizeSessionID("../../etc/passwd") == "../../etc/passwd" {
		t.Error("path characters must be sanitized")
	}
	if sanitizeSessionID("class-2026_a.b") != "class-2026_a.b" {
		t.Error("safe characters pass through unchanged")
	}
}
