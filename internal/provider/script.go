package provider

import (
	"context"
	"fmt"
	"sync"
)

// Compile-time check.
var _ Provider = (*Script)(nil)

// Step is one scripted exchange: when Match is non-nil and returns false for
// the incoming request, the step is skipped and the next one is tried.
// Either Text or Err is returned.
type Step struct {
	Match func(Request) bool
	Text  string
	Err   error
}

// Script is a deterministic Provider that replays canned responses in order.
// It is safe for concurrent use, so it can stand in for a real model under
// the drafting fan-out.
type Script struct {
	mu    sync.Mutex
	steps []Step
	calls []Request
}

// NewScript creates a Script provider from ordered steps.
func NewScript(steps ...Step) *Script {
	return &Script{steps: steps}
}

// Generate consumes the first unconsumed step whose Match accepts req.
func (s *Script) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)

	for i, step := range s.steps {
		if step.Match != nil && !step.Match(req) {
			continue
		}
		s.steps = append(s.steps[:i], s.steps[i+1:]...)
		if step.Err != nil {
			return "", step.Err
		}
		return step.Text, nil
	}
	return "", fmt.Errorf("script: no scripted response for request (call %d)", len(s.calls))
}

// Calls returns a copy of every request seen so far, in arrival order.
func (s *Script) Calls() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.calls))
	copy(out, s.calls)
	return out
}
