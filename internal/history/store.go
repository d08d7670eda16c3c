// Package history persists per-session conversation turns with bounded
// retention.
package history

import (
	"context"
	"regexp"

	"github.com/studyhall/kyoshi/internal/models"
)

// MaxTurns caps a session's history. Appending beyond the cap evicts the
// oldest turns first; relative order of survivors is preserved.
const MaxTurns = 20

// Store persists conversation turns per session. Sessions are identified by
// opaque string keys and created on first use. The backing medium is
// swappable: file and sqlite implementations ship here.
type Store interface {
	// Get returns the session's turns in order. An unknown session yields
	// an empty slice, not an error.
	Get(ctx context.Context, sessionID string) ([]models.Turn, error)
	// Append adds a turn, evicts past MaxTurns, and persists the result.
	Append(ctx context.Context, sessionID string, turn models.Turn) error
	// Clear truncates the session's history to empty and persists that state.
	Clear(ctx context.Context, sessionID string) error
	Close() error
}

// evict trims turns to the newest MaxTurns entries, oldest dropped first.
func evict(turns []models.Turn) []models.Turn {
	if len(turns) <= MaxTurns {
		return turns
	}
	return turns[len(turns)-MaxTurns:]
}

var unsafeSessionChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeSessionID maps an opaque session key onto a filesystem-safe name.
func sanitizeSessionID(sessionID string) string {
	if sessionID == "" {
		return "default"
	}
	return unsafeSessionChars.ReplaceAllString(sessionID, "_")
}
