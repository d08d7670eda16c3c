package models

import "time"

// Result is what the dispatcher returns for every question. Exactly one of
// Answer or Notice is meaningful for the caller to display, but both may be
// set (a degraded answer carries a notice explaining why).
type Result struct {
	Decision RouterDecision `json:"decision"`
	Answer   string         `json:"answer,omitempty"`
	Notice   string         `json:"notice,omitempty"`
	// Escalated is true when the question was logged for a human instead of
	// answered automatically.
	Escalated bool `json:"escalated"`
}

// PendingEscalation is one append-only audit record for a question routed to
// a human. Records are written once and never mutated or deleted here; the
// human-side queue consumes them out of band.
type PendingEscalation struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Question  string         `json:"question"`
	Decision  RouterDecision `json:"decision"`
	Answer    string         `json:"answer,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
