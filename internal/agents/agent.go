// Package agents implements the specialist answer variants. All four share
// one capability, producing an answer from a request, the materials digest,
// and prior history; they differ only in instruction text, keyword
// heuristics, and sampling temperature.
package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyhall/kyoshi/internal/digest"
	"github.com/studyhall/kyoshi/internal/llm"
	"github.com/studyhall/kyoshi/internal/models"
)

// framer builds the variant-specific user message from the rendered digest
// and the raw request.
type framer func(digestText, request string) string

// Variant is one specialist configuration. Generation failures propagate to
// the dispatcher uncaught; there is no per-variant retry.
type Variant struct {
	Name         models.AgentName
	systemPrompt string
	temperature  float64
	frame        framer
	client       llm.Client
	digest       *digest.Handle
}

// Temperature returns the variant's sampling temperature.
func (v *Variant) Temperature() float64 { return v.temperature }

// Answer produces the final answer text for request, with prior session
// history (excluding the current question) as conversational context.
func (v *Variant) Answer(ctx context.Context, request string, prior []models.Turn) (string, error) {
	d := v.digest.Current()
	userMsg := v.frame(d.Text, request)

	messages := make([]llm.Message, 0, len(prior)+1)
	for _, t := range prior {
		messages = append(messages, llm.Message{Role: string(t.Role), Content: t.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: userMsg})

	return v.client.Generate(ctx, v.systemPrompt, messages, v.temperature)
}

// digestPreamble wraps the digest text for inclusion in a user message.
// Empty digest contributes nothing.
func digestPreamble(digestText, instruction string) string {
	if digestText == "" {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n---\n", instruction, digestText)
}

// Registry holds the four variants keyed by agent name.
type Registry map[models.AgentName]*Variant

// NewRegistry builds all four variants against one generation client and
// one digest handle.
func NewRegistry(client llm.Client, h *digest.Handle) Registry {
	return Registry{
		models.AgentConcept:  NewConcept(client, h),
		models.AgentCode:     NewCode(client, h),
		models.AgentPractice: NewPractice(client, h),
		models.AgentReview:   NewReview(client, h),
	}
}

// ForName returns the variant for name, or nil for AgentNone and unknown
// names.
func (r Registry) ForName(name models.AgentName) *Variant {
	return r[name]
}

func joinParts(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n")
}
