// Package models defines core data structures for chunks, routing decisions,
// conversation turns, and dispatch results.
package models

// Chunk is one fixed-size overlapping text window extracted from a source
// document. Chunks are immutable once produced and are regenerated wholesale
// whenever the materials folder is reloaded.
type Chunk struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}
