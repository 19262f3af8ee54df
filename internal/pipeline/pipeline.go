// Package pipeline orchestrates the content-generation pipeline: research,
// outline, per-section drafting, SEO, and voice/tone auditing, each followed
// by its quality gate, with a shared bounded retry budget for self-correction.
//
// Stages are strictly sequential at the macro level; section drafting fans
// out under a bounded worker pool and results are merged back in outline
// order under the pipeline's single thread of control. All failures below
// the pipeline are converted to typed values; Run never panics and never
// returns a raw provider error to the caller.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dusk-indust/draftsmith/internal/agents"
	"github.com/dusk-indust/draftsmith/internal/article"
	"github.com/dusk-indust/draftsmith/internal/gates"
	"github.com/dusk-indust/draftsmith/internal/provider"
)

// Pipeline runs briefs through the generation stages. One Pipeline may run
// any number of briefs; each Run owns its own Result accumulator.
type Pipeline struct {
	cfg      Config
	provider provider.Provider
	progress *ProgressReporter
	fanout   *FanOut
	log      zerolog.Logger
}

// New creates a Pipeline over the given provider.
func New(p provider.Provider, cfg Config) *Pipeline {
	cfg = cfg.withDefaults()
	progress := NewProgressReporter()
	return &Pipeline{
		cfg:      cfg,
		provider: p,
		progress: progress,
		fanout:   NewFanOut(p, cfg.DraftConcurrency, progress.Emit),
		log:      cfg.Logger,
	}
}

// Progress returns a channel that emits progress events across runs.
func (pl *Pipeline) Progress() <-chan ProgressEvent {
	return pl.progress.Subscribe()
}

// Close shuts down the progress reporter. Callers should invoke this when the
// pipeline is no longer needed.
func (pl *Pipeline) Close() {
	pl.progress.Close()
}

// Run executes the full pipeline for one brief and returns the aggregated
// result. The result reports success only if research, outline, and
// completeness ultimately passed; SEO and voice/tone outcomes are attached
// regardless of their pass state.
func (pl *Pipeline) Run(ctx context.Context, brief article.Brief) *Result {
	res := &Result{
		RunID: uuid.NewString(),
		Ref:   brief.Ref,
		Gates: make(map[string]gates.Result),
	}

	// Researching: one attempt only, nothing to retry against.
	pl.enterState(StateResearching, res)
	research, err := agents.Research{}.Run(ctx, pl.provider, brief)
	if err != nil {
		if wasCancelled(ctx, err) {
			return pl.failCancelled(res)
		}
		return pl.fail(res, fmt.Sprintf("Research failed: %v", err))
	}
	res.Research = research
	if research.Empty() {
		pl.log.Warn().Str("run", res.RunID).Msg("research returned no findings")
	}

	// Outlining: agent + gate, drawing on the shared retry budget.
	pl.enterState(StateOutlining, res)
	outline, ok := pl.runOutline(ctx, brief, research, res)
	if !ok {
		return res
	}
	res.Outline = outline

	// Drafting: bounded fan-out, ordered merge, completeness gate.
	pl.enterState(StateDrafting, res)
	if ok := pl.runDrafting(ctx, brief, outline, research, res); !ok {
		return res
	}

	fullDraft := AssembleDraft(res.Sections)

	// SEO: advisory; a failing gate or agent is recorded, never blocking.
	pl.enterState(StateSEOOptimizing, res)
	seoMeta, err := agents.SEO{}.Run(ctx, pl.provider, fullDraft, brief.TargetKeyword)
	switch {
	case err != nil && wasCancelled(ctx, err):
		return pl.failCancelled(res)
	case err != nil:
		res.Gates[GateSEO] = gates.Result{Issues: []string{fmt.Sprintf("seo stage failed: %v", err)}}
		pl.log.Warn().Str("run", res.RunID).Err(err).Msg("seo stage failed (advisory)")
	default:
		res.SEO = seoMeta
		res.Gates[GateSEO] = gates.SEO(seoMeta)
	}

	// Voice/Tone: same advisory treatment as SEO.
	pl.enterState(StateVoiceAuditing, res)
	report, err := agents.VoiceTone{}.Run(ctx, pl.provider, fullDraft, brief, res.Sections)
	switch {
	case err != nil && wasCancelled(ctx, err):
		return pl.failCancelled(res)
	case err != nil:
		res.Gates[GateVoiceTone] = gates.Result{Issues: []string{fmt.Sprintf("voice-tone stage failed: %v", err)}}
		pl.log.Warn().Str("run", res.RunID).Err(err).Msg("voice-tone stage failed (advisory)")
	default:
		res.VoiceTone = report
		res.Gates[GateVoiceTone] = gates.VoiceTone(report, pl.cfg.VoiceToneThreshold)
	}

	res.Success = true
	pl.progress.Emit(ProgressEvent{State: StateSucceeded, Status: ProgressComplete})
	pl.log.Info().Str("run", res.RunID).Int("retries", res.RetryCount).Msg("pipeline succeeded")
	return res
}

// runOutline loops the outline agent and gate until the gate passes or the
// shared retry budget runs out. Returns ok=false after recording the failure
// on res.
func (pl *Pipeline) runOutline(ctx context.Context, brief article.Brief, research article.ResearchData, res *Result) (article.Outline, bool) {
	for {
		outline, err := agents.Outline{}.Run(ctx, pl.provider, brief, research)
		if err != nil {
			if wasCancelled(ctx, err) {
				pl.failCancelled(res)
				return article.Outline{}, false
			}
			if res.spendRetry(pl.cfg.RetryBudget) {
				pl.log.Warn().Str("run", res.RunID).Err(err).Int("retry", res.RetryCount).Msg("outline agent failed, retrying")
				continue
			}
			pl.fail(res, fmt.Sprintf("Outline generation failed after %d retries: %v", res.RetryCount, err))
			return article.Outline{}, false
		}

		gr := gates.Outline(outline)
		res.Gates[GateOutline] = gr
		if gr.Passed {
			return outline, true
		}

		pl.log.Warn().Str("run", res.RunID).Int("score", gr.Score).Strs("issues", gr.Issues).Msg("outline quality gate failed")
		if !res.spendRetry(pl.cfg.RetryBudget) {
			pl.fail(res, fmt.Sprintf("%s quality gate failed after %d retries: %s",
				GateOutline, res.RetryCount, strings.Join(gr.Issues, "; ")))
			return article.Outline{}, false
		}
	}
}

// runDrafting fans out drafts, validates completeness, and redrafts only the
// flagged sections on a gated retry. Aggregate-only failures (total out of
// band with no individual section flagged) redraft everything.
func (pl *Pipeline) runDrafting(ctx context.Context, brief article.Brief, outline article.Outline, research article.ResearchData, res *Result) bool {
	byKey := make(map[string]article.SectionContent, len(outline.Sections))
	toDraft := outline.Sections

	for {
		results, err := pl.fanout.Run(ctx, brief, toDraft, research)
		if err != nil {
			pl.failCancelled(res)
			return false
		}

		for _, dr := range results {
			if dr.Err != nil {
				// Leave an empty placeholder; the completeness gate flags
				// it and the retry loop redrafts exactly this section.
				byKey[dr.Key] = article.SectionContent{Key: dr.Key}
				continue
			}
			byKey[dr.Key] = dr.Content
		}

		ordered := orderedSections(outline, byKey)
		gr := gates.Completeness(ordered, brief.WordCountGoal)
		res.Gates[GateCompleteness] = gr
		res.Sections = ordered
		if gr.Passed {
			return true
		}

		pl.log.Warn().Str("run", res.RunID).Int("score", gr.Score).Strs("issues", gr.Issues).Msg("completeness quality gate failed")
		if !res.spendRetry(pl.cfg.RetryBudget) {
			pl.fail(res, fmt.Sprintf("%s quality gate failed after %d retries: %s",
				GateCompleteness, res.RetryCount, strings.Join(gr.Issues, "; ")))
			return false
		}

		flagged := gates.ShortSections(ordered)
		toDraft = sectionsByKey(outline, flagged)
		if len(toDraft) == 0 {
			toDraft = outline.Sections
		}
	}
}

// enterState emits and logs a stage transition.
func (pl *Pipeline) enterState(s State, res *Result) {
	pl.progress.Emit(ProgressEvent{State: s, Status: ProgressWorking})
	pl.log.Info().Str("run", res.RunID).Stringer("state", s).Msg("stage start")
}

// fail records a terminal failure classification on res.
func (pl *Pipeline) fail(res *Result, msg string) *Result {
	res.Success = false
	res.Error = msg
	pl.progress.Emit(ProgressEvent{State: StateFailed, Status: ProgressFailed, Message: msg})
	pl.log.Error().Str("run", res.RunID).Str("reason", msg).Msg("pipeline failed")
	return res
}

// failCancelled records cancellation. Partially completed sections are
// discarded; a partial result is not a valid result.
func (pl *Pipeline) failCancelled(res *Result) *Result {
	res.Sections = nil
	return pl.fail(res, "cancelled")
}

// wasCancelled reports whether err (or the context itself) reflects caller
// cancellation rather than a provider-side failure.
func wasCancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// orderedSections re-assembles drafted contents in the outline's original
// section order. Order is significant for content coherence even though
// generation order is not.
func orderedSections(outline article.Outline, byKey map[string]article.SectionContent) []article.SectionContent {
	ordered := make([]article.SectionContent, 0, len(outline.Sections))
	for _, s := range outline.Sections {
		ordered = append(ordered, byKey[s.Key])
	}
	return ordered
}

// sectionsByKey selects the outline sections matching keys, in outline order.
func sectionsByKey(outline article.Outline, keys []string) []article.OutlineSection {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var out []article.OutlineSection
	for _, s := range outline.Sections {
		if want[s.Key] {
			out = append(out, s)
		}
	}
	return out
}
