package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/studyhall/kyoshi/internal/digest"
	"github.com/studyhall/kyoshi/internal/llm"
	"github.com/studyhall/kyoshi/internal/models"
)

func testHandle() *digest.Handle {
	d := digest.Build([]models.Chunk{
		{Source: "/m/quicksort.pptx", Text: "pivot selection and partition"},
	}, 0)
	return digest.NewHandle(d)
}

func TestVariant_temperatures(t *testing.T) {
	reg := NewRegistry(llm.NewMockClient("x"), testHandle())
	want := map[models.AgentName]float64{
		models.AgentConcept:  0.5,
		models.AgentCode:     0.4,
		models.AgentPractice: 0.6,
		models.AgentReview:   0.5,
	}
	for name, temp := range want {
		v := reg.ForName(name)
		if v == nil {
			t.Fatalf("missing variant %s", name)
		}
		if v.Temperature() != temp {
			t.Errorf("%s temperature=%v want %v", name, v.Temperature(), temp)
		}
	}
	if reg.ForName(models.AgentNone) != nil {
		t.Error("None must not resolve to a variant")
	}
}

func TestAnswer_includesDigestAndHistory(t *testing.T) {
	mock := llm.NewMockClient("an answer")
	v := NewConcept(mock, testHandle())
	prior := []models.Turn{
		{Role: models.RoleUser, Content: "earlier question"},
		{Role: models.RoleAssistant, Content: "earlier answer"},
	}
	got, err := v.Answer(context.Background(), "what is a pivot?", prior)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != "an answer" {
		t.Errorf("got %q", got)
	}
	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	call := calls[0]
	if len(call.History) != 3 {
		t.Fatalf("expected prior history + question, got %d messages", len(call.History))
	}
	if call.History[0].Content != "earlier question" || call.History[1].Content != "earlier answer" {
		t.Error("prior history must precede the question in order")
	}
	last := call.History[2]
	if last.Role != "user" || !strings.Contains(last.Content, "what is a pivot?") {
		t.Errorf("final message must carry the question: %+v", last)
	}
	if !strings.Contains(last.Content, "pivot selection and partition") {
		t.Error("digest text must be prepended to the question")
	}
	if call.SystemPrompt != conceptSystemPrompt {
		t.Error("variant must use its own system prompt")
	}
}

func TestAnswer_emptyDigestOmitsPreamble(t *testing.T) {
	mock := llm.NewMockClient("ok")
	empty := digest.NewHandle(digest.Build(nil, 0))
	v := NewCode(mock, empty)
	if _, err := v.Answer(context.Background(), "why segfault?", nil); err != nil {
		t.Fatal(err)
	}
	msg := mock.Calls()[0].History[0].Content
	if strings.Contains(msg, "course-materials digest") {
		t.Error("no digest preamble expected when the digest is empty")
	}
}

func TestConcept_labHeuristic(t *testing.T) {
	mock := llm.NewMockClient("ok")
	v := NewConcept(mock, testHandle())
	if _, err := v.Answer(context.Background(), "teach me how to do the quicksort lab", nil); err != nil {
		t.Fatal(err)
	}
	msg := mock.Calls()[0].History[0].Content
	if !strings.Contains(msg, "restate the task requirements") {
		t.Error("lab-like question should trigger the restate-then-hint instruction")
	}
	if !strings.Contains(msg, "Do not provide complete code") {
		t.Error("lab-like question should withhold full solutions")
	}

	mock2 := llm.NewMockClient("ok")
	v2 := NewConcept(mock2, testHandle())
	if _, err := v2.Answer(context.Background(), "why is quicksort O(n log n) on average?", nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(mock2.Calls()[0].History[0].Content, "restate the task requirements") {
		t.Error("plain concept question must not trigger the lab instruction")
	}
}

func TestPractice_defaultsToMediumDifficulty(t *testing.T) {
	mock := llm.NewMockClient("ok")
	v := NewPractice(mock, testHandle())
	if _, err := v.Answer(context.Background(), "give me 5 problems on AVL trees", nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(mock.Calls()[0].History[0].Content, "default to medium") {
		t.Error("unspecified difficulty should default to medium")
	}

	mock2 := llm.NewMockClient("ok")
	v2 := NewPractice(mock2, testHandle())
	if _, err := v2.Answer(context.Background(), "give me 5 hard problems on AVL trees", nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(mock2.Calls()[0].History[0].Content, "default to medium") {
		t.Error("explicit difficulty must not be overridden")
	}
}

func TestReview_timeBudgetHeuristic(t *testing.T) {
	mock := llm.NewMockClient("ok")
	v := NewReview(mock, testHandle())
	if _, err := v.Answer(context.Background(), "exam in 3 days, help me review sorting", nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(mock.Calls()[0].History[0].Content, "day-by-day") {
		t.Error("time budget should request a day-by-day plan")
	}
}

func TestAnswer_generationErrorPropagates(t *testing.T) {
	mock := llm.NewMockClient()
	mock.FailWith(errors.New("quota exceeded"))
	v := NewCode(mock, testHandle())
	_, err := v.Answer(context.Background(), "q", nil)
	var genErr *llm.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("generation errors must propagate uncaught, got %v", err)
	}
}
