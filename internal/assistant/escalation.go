package assistant

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/studyhall/kyoshi/internal/models"
)

// EscalationLog is the append-only pending-for-human audit file: one JSON
// record per line. Records are written once and never mutated or deleted
// here; the human-side queue consumes the file out of band.
type EscalationLog struct {
	mu   sync.Mutex
	path string
}

// NewEscalationLog prepares the log at path, creating parent directories.
func NewEscalationLog(path string) (*EscalationLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create escalation log dir: %w", err)
		}
	}
	return &EscalationLog{path: path}, nil
}

// Append writes one record as a JSONL line.
func (l *EscalationLog) Append(rec models.PendingEscalation) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal escalation: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open escalation log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write escalation log: %w", err)
	}
	return nil
}
