package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/studyhall/kyoshi/internal/models"
)

// ErrMalformedRouterOutput reports a reply whose decision payload could not
// be parsed. This is a violated upstream contract and is surfaced to the
// caller, never silently defaulted; the asymmetry with missing-field
// defaulting (fillDefaults) is deliberate.
var ErrMalformedRouterOutput = errors.New("malformed router output")

// rawDecision mirrors RouterDecision with pointer fields so that a missing
// field is distinguishable from an explicit zero value.
type rawDecision struct {
	Category   *string `json:"category"`
	Difficulty *string `json:"difficulty"`
	Escalate   *bool   `json:"escalate"`
	Target     *string `json:"target_agent"`
	Notes      *string `json:"notes"`
}

// parseDecision extracts the substring between the first '{' and the last
// '}' of reply and unmarshals it. No brace pair, or invalid JSON between
// the braces, yields ErrMalformedRouterOutput.
func parseDecision(reply string) (rawDecision, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end < start {
		return rawDecision{}, fmt.Errorf("%w: no JSON object in reply", ErrMalformedRouterOutput)
	}
	var raw rawDecision
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return rawDecision{}, fmt.Errorf("%w: %v", ErrMalformedRouterOutput, err)
	}
	return raw, nil
}

// fillDefaults converts a successfully parsed payload into a decision,
// substituting safe defaults for any missing field: a partially-specified
// but well-formed decision degrades gracefully.
func fillDefaults(raw rawDecision) models.RouterDecision {
	d := models.RouterDecision{
		Category:   models.CategoryOutOfScope,
		Difficulty: models.DifficultyMedium,
		Escalate:   false,
		Target:     models.AgentNone,
	}
	if raw.Category != nil {
		d.Category = models.Category(*raw.Category)
	}
	if raw.Difficulty != nil {
		d.Difficulty = models.Difficulty(*raw.Difficulty)
	}
	if raw.Escalate != nil {
		d.Escalate = *raw.Escalate
	}
	if raw.Target != nil {
		d.Target = models.AgentName(*raw.Target)
	}
	if raw.Notes != nil {
		d.Notes = *raw.Notes
	}
	return d
}

// DefaultDecision is the safe fallback used when classification itself
// fails: out of scope, no escalation, no agent.
func DefaultDecision() models.RouterDecision {
	return models.RouterDecision{
		Category:   models.CategoryOutOfScope,
		Difficulty: models.DifficultyMedium,
		Escalate:   false,
		Target:     models.AgentNone,
	}
}
