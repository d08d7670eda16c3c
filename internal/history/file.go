package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studyhall/kyoshi/internal/models"
)

// FileStore keeps one JSON array file per session. The file is overwritten
// wholesale on every append; the sequence is append-only in memory only.
type FileStore struct {
	dir string
}

// NewFileStore creates the history directory if needed and returns a store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(sessionID string) string {
	return filepath.Join(s.dir, "history_"+sanitizeSessionID(sessionID)+".json")
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, sessionID string) ([]models.Turn, error) {
	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	var turns []models.Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return turns, nil
}

// Append implements Store: read-modify-write against the session file. Two
// concurrent appends to the same session race (last writer wins); callers
// serialize per session.
func (s *FileStore) Append(ctx context.Context, sessionID string, turn models.Turn) error {
	turns, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	turns = evict(append(turns, turn))
	return s.write(sessionID, turns)
}

// Clear implements Store.
func (s *FileStore) Clear(_ context.Context, sessionID string) error {
	return s.write(sessionID, []models.Turn{})
}

func (s *FileStore) write(sessionID string, turns []models.Turn) error {
	data, err := json.MarshalIndent(turns, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.WriteFile(s.path(sessionID), data, 0600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Close implements Store. The file store holds no open handles.
func (s *FileStore) Close() error { return nil }
