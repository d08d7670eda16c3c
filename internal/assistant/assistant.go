// Package assistant wires the classifier, the specialist variants, session
// history, and the escalation log into the single ask-a-question entrypoint.
package assistant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studyhall/kyoshi/internal/agents"
	"github.com/studyhall/kyoshi/internal/history"
	"github.com/studyhall/kyoshi/internal/llm"
	"github.com/studyhall/kyoshi/internal/models"
	"github.com/studyhall/kyoshi/internal/router"
	"github.com/studyhall/kyoshi/pkg/utils"
)

// examKeywords force an assignment question onto the human path even after
// the override below.
var examKeywords = []string{
	"exam", "midterm", "final", "quiz", "test",
	"考试", "期中", "期末", "小测", "考卷", "试卷",
}

// codeKeywords steer an overridden assignment question to the Code variant.
var codeKeywords = []string{
	"code", "c++", "java", "python", "implementation", "compile", "error",
	"代码", "实现", "报错",
}

const (
	// noticeEscalated tells the student their question was queued for a human.
	noticeEscalated = "This question involves graded or exam-related content, so it has been forwarded to a human teaching assistant. You will get a reply from them."
	// answerNoAgent is the canned reply when classification picks no variant.
	answerNoAgent = "This question is outside what the AI teaching assistant can help with. Please ask the course instructor or a human teaching assistant directly."
	// answerUnavailable is the degraded reply when generation itself fails.
	answerUnavailable = "The answering service is temporarily unavailable. Please try again in a moment, or ask a human teaching assistant."
	// noticeClassifierFallback marks a reply produced under a defaulted
	// classification.
	noticeClassifierFallback = "The question could not be classified; a default handling path was used."
)

// Dispatcher owns the per-question state machine: record, classify, override,
// then escalate or answer. Calls for the same session are serialized; calls
// for different sessions run concurrently.
type Dispatcher struct {
	router      *router.Router
	agents      agents.Registry
	store       history.Store
	escalations *EscalationLog
	logger      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*sync.Mutex
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a logger for dispatch diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// New assembles a Dispatcher from its collaborators.
func New(r *router.Router, reg agents.Registry, store history.Store, esc *EscalationLog, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		router:      r,
		agents:      reg,
		store:       store,
		escalations: esc,
		logger:      zap.NewNop(),
		sessions:    make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// sessionLock returns the mutex serializing one session's questions.
func (d *Dispatcher) sessionLock(sessionID string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.sessions[sessionID]
	if !ok {
		l = &sync.Mutex{}
		d.sessions[sessionID] = l
	}
	return l
}

// HandleQuestion runs one question through the full pipeline and always
// returns a displayable Result; infrastructure failures degrade to canned
// replies rather than surfacing as errors.
//
// The question is recorded in history before classification, so it is kept
// even when the outcome is an escalation or a degraded reply. Escalated
// questions record no assistant turn.
func (d *Dispatcher) HandleQuestion(ctx context.Context, sessionID, question string) (*models.Result, error) {
	lock := d.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := d.store.Append(ctx, sessionID, models.Turn{Role: models.RoleUser, Content: question}); err != nil {
		d.logger.Error("record question", zap.String("session", sessionID), zap.Error(err))
	}

	decision, notice, err := d.classify(ctx, question)
	if err != nil {
		// Generation itself is down; degrade rather than fail the request.
		return &models.Result{
			Decision: router.DefaultDecision(),
			Answer:   answerUnavailable,
			Notice:   notice,
		}, nil
	}

	decision = applyOverride(decision, question)

	if decision.Escalate {
		d.recordEscalation(sessionID, question, decision)
		return &models.Result{
			Decision:  decision,
			Notice:    noticeEscalated,
			Escalated: true,
		}, nil
	}

	variant := d.agents.ForName(decision.Target)
	if variant == nil {
		d.appendAssistant(ctx, sessionID, answerNoAgent)
		return &models.Result{Decision: decision, Answer: answerNoAgent, Notice: notice}, nil
	}

	prior, err := d.priorTurns(ctx, sessionID)
	if err != nil {
		d.logger.Error("load history", zap.String("session", sessionID), zap.Error(err))
		prior = nil
	}

	answer, err := variant.Answer(ctx, question, prior)
	if err != nil {
		var genErr *llm.GenerationError
		if errors.As(err, &genErr) {
			d.logger.Error("generation failed",
				zap.String("session", sessionID),
				zap.String("agent", string(decision.Target)),
				zap.Error(err),
			)
			return &models.Result{Decision: decision, Answer: answerUnavailable, Notice: notice}, nil
		}
		return nil, err
	}

	d.appendAssistant(ctx, sessionID, answer)
	return &models.Result{Decision: decision, Answer: answer, Notice: notice}, nil
}

// classify routes the question, downgrading known failure modes. A malformed
// reply yields the default decision with a notice; a generation failure is
// returned for the caller to degrade.
func (d *Dispatcher) classify(ctx context.Context, question string) (models.RouterDecision, string, error) {
	decision, err := d.router.Route(ctx, question)
	if err == nil {
		return decision, "", nil
	}
	if errors.Is(err, router.ErrMalformedRouterOutput) {
		d.logger.Warn("classifier reply malformed, using default decision", zap.Error(err))
		return router.DefaultDecision(), noticeClassifierFallback, nil
	}
	return models.RouterDecision{}, noticeClassifierFallback, err
}

// applyOverride enforces the assignment policy after classification: homework
// that does not mention exams is answered with guidance instead of escalated,
// steered to Code or Concept by the question's wording. Exam-flavored
// assignment questions keep whatever escalation the classifier chose.
func applyOverride(decision models.RouterDecision, question string) models.RouterDecision {
	if decision.Category != models.CategoryAssignment {
		return decision
	}
	if utils.ContainsAny(question, examKeywords) {
		return decision
	}
	decision.Escalate = false
	if utils.ContainsAny(question, codeKeywords) {
		decision.Target = models.AgentCode
	} else {
		decision.Target = models.AgentConcept
	}
	return decision
}

// priorTurns returns the session history excluding the question just
// recorded, as conversational context for the variant.
func (d *Dispatcher) priorTurns(ctx context.Context, sessionID string) ([]models.Turn, error) {
	turns, err := d.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if n := len(turns); n > 0 && turns[n-1].Role == models.RoleUser {
		turns = turns[:n-1]
	}
	return turns, nil
}

func (d *Dispatcher) appendAssistant(ctx context.Context, sessionID, content string) {
	if err := d.store.Append(ctx, sessionID, models.Turn{Role: models.RoleAssistant, Content: content}); err != nil {
		d.logger.Error("record answer", zap.String("session", sessionID), zap.Error(err))
	}
}

// recordEscalation appends the pending record; a write failure is logged but
// never blocks the student-facing notice.
func (d *Dispatcher) recordEscalation(sessionID, question string, decision models.RouterDecision) {
	rec := models.PendingEscalation{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Question:  question,
		Decision:  decision,
		CreatedAt: time.Now().UTC(),
	}
	if err := d.escalations.Append(rec); err != nil {
		d.logger.Error("record escalation", zap.String("session", sessionID), zap.Error(err))
	}
}

// History returns the session's stored turns.
func (d *Dispatcher) History(ctx context.Context, sessionID string) ([]models.Turn, error) {
	return d.store.Get(ctx, sessionID)
}

// ClearHistory wipes the session's stored turns.
func (d *Dispatcher) ClearHistory(ctx context.Context, sessionID string) error {
	return d.store.Clear(ctx, sessionID)
}
