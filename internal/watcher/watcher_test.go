package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, root string, extensions []string) chan struct{} {
	t.Helper()
	reloads := make(chan struct{}, 8)
	w := NewWatcher(root, extensions, func() { reloads <- struct{}{} },
		WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	t.Cleanup(w.Stop)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return reloads
}

func waitReload(t *testing.T, reloads chan struct{}) {
	t.Helper()
	select {
	case <-reloads:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_reloadsOnMaterialWrite(t *testing.T) {
	dir := t.TempDir()
	reloads := startWatcher(t, dir, []string{".md", ".txt"})

	if err := os.WriteFile(filepath.Join(dir, "ch1.md"), []byte("# sorting"), 0600); err != nil {
		t.Fatal(err)
	}
	waitReload(t, reloads)
}

func TestWatcher_ignoresUnsupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	reloads := startWatcher(t, dir, []string{".md"})

	if err := os.WriteFile(filepath.Join(dir, "notes.bin"), []byte{0x01}, 0600); err != nil {
		t.Fatal(err)
	}
	select {
	case <-reloads:
		t.Fatal("unsupported extension must not trigger a reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_debouncesBursts(t *testing.T) {
	dir := t.TempDir()
	reloads := startWatcher(t, dir, []string{".md"})

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(filepath.Join(dir, "ch1.md"), []byte("rev"), 0600); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	waitReload(t, reloads)
	select {
	case <-reloads:
		t.Error("burst of writes must collapse into one reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_watchesNewSubdirectories(t *testing.T) {
	dir := t.TempDir()
	reloads := startWatcher(t, dir, []string{".md"})

	sub := filepath.Join(dir, "week2")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	waitReload(t, reloads)

	if err := os.WriteFile(filepath.Join(sub, "heaps.md"), []byte("# heaps"), 0600); err != nil {
		t.Fatal(err)
	}
	waitReload(t, reloads)
}

func TestWatcher_createsMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "materials")
	_ = startWatcher(t, root, nil)
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("missing root must be created: %v", err)
	}
}
