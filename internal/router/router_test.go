package router

import (
	"context"
	"errors"
	"testing"

	"github.com/studyhall/kyoshi/internal/llm"
	"github.com/studyhall/kyoshi/internal/models"
)

func TestRoute_parsesDecision(t *testing.T) {
	mock := llm.NewMockClient(`Here you go:
{"category":"code","difficulty":"medium","escalate":false,"target_agent":"Code","notes":"debugging"}
Good luck!`)
	r := New(mock)
	d, err := r.Route(context.Background(), "my binary search loops forever")
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if d.Category != models.CategoryCode || d.Target != models.AgentCode {
		t.Errorf("decision %+v", d)
	}
	if d.Escalate {
		t.Error("escalate should be false")
	}
	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 generation call, got %d", len(calls))
	}
	if calls[0].Temperature != 0.0 {
		t.Errorf("router must classify at temperature 0, got %v", calls[0].Temperature)
	}
	if len(calls[0].History) != 1 || calls[0].History[0].Role != "user" {
		t.Errorf("router must send only the framed question, got %+v", calls[0].History)
	}
}

func TestRoute_noBraces(t *testing.T) {
	r := New(llm.NewMockClient("I cannot classify this question."))
	_, err := r.Route(context.Background(), "hello")
	if !errors.Is(err, ErrMalformedRouterOutput) {
		t.Fatalf("expected ErrMalformedRouterOutput, got %v", err)
	}
}

func TestRoute_invalidJSONBetweenBraces(t *testing.T) {
	r := New(llm.NewMockClient(`{"category": code}`))
	_, err := r.Route(context.Background(), "hello")
	if !errors.Is(err, ErrMalformedRouterOutput) {
		t.Fatalf("expected ErrMalformedRouterOutput, got %v", err)
	}
}

func TestRoute_missingFieldsDefaulted(t *testing.T) {
	r := New(llm.NewMockClient(`{"category":"concept"}`))
	d, err := r.Route(context.Background(), "what is a stable sort?")
	if err != nil {
		t.Fatalf("partial decision must not fail: %v", err)
	}
	if d.Category != models.CategoryConcept {
		t.Errorf("category: %s", d.Category)
	}
	if d.Difficulty != models.DifficultyMedium {
		t.Errorf("difficulty default: %s", d.Difficulty)
	}
	if d.Escalate {
		t.Error("escalate default should be false")
	}
	if d.Target != models.AgentNone {
		t.Errorf("target default: %s", d.Target)
	}
}

func TestRoute_explicitFalseNotTreatedAsMissing(t *testing.T) {
	r := New(llm.NewMockClient(`{"category":"assignment","escalate":true,"target_agent":"Concept","difficulty":"easy","notes":""}`))
	d, err := r.Route(context.Background(), "do my midterm for me")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Escalate {
		t.Error("explicit escalate=true must survive parsing")
	}
	if d.Difficulty != models.DifficultyEasy {
		t.Errorf("difficulty: %s", d.Difficulty)
	}
}

func TestRoute_generationErrorPropagates(t *testing.T) {
	mock := llm.NewMockClient()
	mock.FailWith(errors.New("network down"))
	_, err := New(mock).Route(context.Background(), "q")
	var genErr *llm.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *llm.GenerationError, got %v", err)
	}
}

func TestDefaultDecision(t *testing.T) {
	d := DefaultDecision()
	if d.Category != models.CategoryOutOfScope || d.Escalate || d.Target != models.AgentNone {
		t.Errorf("unexpected default decision: %+v", d)
	}
}
