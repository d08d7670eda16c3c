// Package router classifies a raw student question into a structured
// routing decision via a fixed-prompt generation call.
package router

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/studyhall/kyoshi/internal/llm"
	"github.com/studyhall/kyoshi/internal/models"
)

// Router maps a question to a RouterDecision. It sees only the question:
// no digest, no conversation history, temperature 0.
type Router struct {
	client llm.Client
	logger *zap.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets a logger for classification diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// New creates a Router using the given generation client.
func New(client llm.Client, opts ...Option) *Router {
	r := &Router{client: client, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route classifies question. Generation failures surface as the client's
// *llm.GenerationError; unparseable replies surface as
// ErrMalformedRouterOutput. Missing fields in a parseable reply are filled
// with safe defaults instead of failing.
func (r *Router) Route(ctx context.Context, question string) (models.RouterDecision, error) {
	userMsg := llm.Message{Role: "user", Content: fmt.Sprintf(routerUserTemplate, question)}
	reply, err := r.client.Generate(ctx, routerSystemPrompt, []llm.Message{userMsg}, 0.0)
	if err != nil {
		return models.RouterDecision{}, err
	}

	parsed, err := parseDecision(reply)
	if err != nil {
		r.logger.Warn("router reply unparseable", zap.String("reply_head", head(reply)), zap.Error(err))
		return models.RouterDecision{}, err
	}
	decision := fillDefaults(parsed)
	r.logger.Debug("question classified",
		zap.String("category", string(decision.Category)),
		zap.String("target", string(decision.Target)),
		zap.Bool("escalate", decision.Escalate),
	)
	return decision, nil
}

func head(s string) string {
	if len(s) > 120 {
		return s[:120]
	}
	return s
}
