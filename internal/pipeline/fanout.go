package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/draftsmith/internal/agents"
	"github.com/dusk-indust/draftsmith/internal/article"
	"github.com/dusk-indust/draftsmith/internal/provider"
)

// draftResult holds the outcome of drafting one section.
type draftResult struct {
	Key     string
	Content article.SectionContent
	Err     error
}

// FanOut drafts outline sections concurrently under a bounded worker pool and
// collects per-section results. A single section failure does not abort the
// other sections; failures surface as per-section errors so the completeness
// gate (and the retry loop behind it) can deal with exactly the sections that
// failed. Only context cancellation aborts the whole fan-out.
type FanOut struct {
	provider   provider.Provider
	limit      int
	onProgress func(ProgressEvent)
}

// NewFanOut creates a FanOut drafting via p with at most limit concurrent
// calls. onProgress is called synchronously from worker goroutines; it may be
// nil.
func NewFanOut(p provider.Provider, limit int, onProgress func(ProgressEvent)) *FanOut {
	if limit <= 0 {
		limit = 1
	}
	return &FanOut{provider: p, limit: limit, onProgress: onProgress}
}

// Run drafts every section, emitting progress events for each. Results are
// returned indexed by position, matching the input order regardless of
// completion order. The returned error is non-nil only when ctx was
// cancelled.
func (f *FanOut) Run(ctx context.Context, brief article.Brief, sections []article.OutlineSection, research article.ResearchData) ([]draftResult, error) {
	results := make([]draftResult, len(sections))

	var g errgroup.Group
	g.SetLimit(f.limit)

	for i, section := range sections {
		f.emit(ProgressEvent{State: StateDrafting, Section: section.Key, Status: ProgressPending})

		g.Go(func() error {
			f.emit(ProgressEvent{State: StateDrafting, Section: section.Key, Status: ProgressWorking})

			content, err := agents.Draft{}.Run(ctx, f.provider, brief, section, research)
			if err != nil {
				results[i] = draftResult{Key: section.Key, Err: err}
				f.emit(ProgressEvent{State: StateDrafting, Section: section.Key, Status: ProgressFailed, Message: err.Error()})
				return nil
			}

			results[i] = draftResult{Key: section.Key, Content: content}
			f.emit(ProgressEvent{State: StateDrafting, Section: section.Key, Status: ProgressComplete})
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// emit sends a progress event if a callback is registered.
func (f *FanOut) emit(ev ProgressEvent) {
	if f.onProgress != nil {
		f.onProgress(ev)
	}
}
