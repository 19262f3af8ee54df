package pipeline

import (
	"strings"

	"github.com/dusk-indust/draftsmith/internal/article"
	"github.com/dusk-indust/draftsmith/internal/gates"
)

// Result aggregates everything one pipeline run produced. It is constructed
// incrementally by the pipeline and returned once at termination; callers
// must treat it as immutable after return.
type Result struct {
	// RunID uniquely identifies this run for the caller's bookkeeping.
	RunID string `json:"runId"`

	// Ref echoes Brief.Ref.
	Ref string `json:"ref,omitempty"`

	Research  article.ResearchData     `json:"research"`
	Outline   article.Outline          `json:"outline"`
	Sections  []article.SectionContent `json:"sections"`
	SEO       article.SEOMetadata      `json:"seo"`
	VoiceTone article.VoiceToneReport  `json:"voiceTone"`

	// Gates records every quality-gate outcome by name, including advisory
	// gates that did not block success.
	Gates map[string]gates.Result `json:"gates"`

	// RetryCount is how many shared-budget retries the run consumed.
	RetryCount int `json:"retryCount"`

	Success bool `json:"success"`

	// Error is the one-line failure classification; empty on success.
	Error string `json:"error,omitempty"`
}

// spendRetry consumes one unit of the shared retry budget. It returns false
// when the budget is exhausted, in which case the counter is unchanged.
func (r *Result) spendRetry(budget int) bool {
	if r.RetryCount >= budget {
		return false
	}
	r.RetryCount++
	return true
}

// AssembleDraft joins section contents in order with blank-line separators,
// producing the full article draft used by the SEO and voice/tone stages.
func AssembleDraft(sections []article.SectionContent) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, strings.TrimSpace(s.Content))
	}
	return strings.Join(parts, "\n\n")
}
