// Package provider abstracts the text-generation capability the pipeline
// consumes. Any implementation of Provider works, including deterministic
// test doubles; retry, timeout, and caching policy live in the caller, never
// here.
package provider

import "context"

// Request is one generation request. System carries the role instructions,
// User the task instructions. Hints are optional; nil means provider default.
type Request struct {
	System      string
	User        string
	Temperature *float64
	MaxTokens   *int
}

// Provider produces raw text for a request, or fails with a descriptive
// error (transport, quota, model). Errors are never swallowed at this layer.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}
