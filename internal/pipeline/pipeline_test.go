package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/draftsmith/internal/article"
	"github.com/dusk-indust/draftsmith/internal/provider"
)

// --- scripted payload helpers ---

func prose(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "word"
	}
	return strings.Join(words, " ")
}

const researchJSON = `{"painPoints":["p"],"keyFacts":["f"],"differentiators":["d"],"subtopics":["s"],"angles":["a"]}`

// fiveSectionOutlineJSON is a complete intro/body/body/conclusion/cta outline.
func fiveSectionOutlineJSON(goal int) string {
	per := goal / 5
	section := func(key, typ string) string {
		return fmt.Sprintf(`{"key":%q,"title":"T","type":%q,"keyPoints":["k"],"estimatedWords":%d}`, key, typ, per)
	}
	return fmt.Sprintf(`{"sections":[%s,%s,%s,%s,%s],"totalEstimatedWords":%d}`,
		section("intro", "intro"), section("body-1", "body"), section("body-2", "body"),
		section("conclusion", "conclusion"), section("cta", "cta"), goal)
}

const introOnlyOutlineJSON = `{"sections":[{"key":"intro","title":"T","type":"intro","keyPoints":["k"],"estimatedWords":200}],"totalEstimatedWords":200}`

func draftJSON(n int) string {
	return fmt.Sprintf(`{"key":"x","content":%q}`, prose(n))
}

func seoJSON(density float64) string {
	return fmt.Sprintf(`{"title":"A Perfectly Reasonable Article Title Here","metaDescription":%q,"slug":"article","suggestions":[],"keywordDensity":%.1f,"readability":"easy"}`,
		strings.Repeat("d", 120), density)
}

const voiceJSON = `{"alignmentScore":90,"issues":[],"feedback":"on brand","passed":true}`

func matchUser(sub string) func(provider.Request) bool {
	return func(r provider.Request) bool { return strings.Contains(r.User, sub) }
}

var (
	matchResearch = matchUser("Research the topic")
	matchOutline  = matchUser("Plan the article")
	matchDraft    = matchUser("Draft the section")
	matchSEO      = matchUser("Article draft:")
	matchVoice    = matchUser("Audit the draft")
)

func testBrief(goal int) article.Brief {
	return article.Brief{
		Topic:         "Heat pump maintenance",
		TargetKeyword: "heat pump service",
		WordCountGoal: goal,
		ClientProfile: []string{"Regional HVAC company"},
		Ref:           "post-42",
	}
}

func draftSteps(n, words int) []provider.Step {
	steps := make([]provider.Step, n)
	for i := range steps {
		steps[i] = provider.Step{Match: matchDraft, Text: draftJSON(words)}
	}
	return steps
}

// happyScript scripts a clean five-section run for the given goal.
func happyScript(goal int) *provider.Script {
	steps := []provider.Step{
		{Match: matchResearch, Text: researchJSON},
		{Match: matchOutline, Text: fiveSectionOutlineJSON(goal)},
	}
	steps = append(steps, draftSteps(5, goal/5)...)
	steps = append(steps,
		provider.Step{Match: matchSEO, Text: seoJSON(1.8)},
		provider.Step{Match: matchVoice, Text: voiceJSON},
	)
	return provider.NewScript(steps...)
}

// --- tests ---

func TestRun_FiveSectionHappyPath(t *testing.T) {
	p := happyScript(1200)
	pl := New(p, Config{DraftConcurrency: 2})
	defer pl.Close()

	res := pl.Run(context.Background(), testBrief(1200))

	require.True(t, res.Success, "error: %s", res.Error)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "post-42", res.Ref)
	assert.Len(t, res.Sections, 5)
	assert.Equal(t, 0, res.RetryCount)

	assert.True(t, res.Gates[GateOutline].Passed)
	assert.True(t, res.Gates[GateCompleteness].Passed)
	assert.True(t, res.Gates[GateSEO].Passed)
	assert.True(t, res.Gates[GateVoiceTone].Passed)

	// Sections come back in outline order regardless of draft scheduling.
	keys := make([]string, 0, len(res.Sections))
	for _, s := range res.Sections {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"intro", "body-1", "body-2", "conclusion", "cta"}, keys)
}

func TestRun_ResearchFailureIsFatal(t *testing.T) {
	p := provider.NewScript(provider.Step{Match: matchResearch, Err: errors.New("model unavailable")})
	pl := New(p, Config{})
	defer pl.Close()

	res := pl.Run(context.Background(), testBrief(1200))

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "Research failed:")
	assert.Contains(t, res.Error, "model unavailable")
	// No retry budget is spent on research.
	assert.Equal(t, 0, res.RetryCount)
	assert.Len(t, p.Calls(), 1)
}

func TestRun_OutlineGateRetryThenPass(t *testing.T) {
	steps := []provider.Step{
		{Match: matchResearch, Text: researchJSON},
		// First outline is intro-only; the gate rejects it.
		{Match: matchOutline, Text: introOnlyOutlineJSON},
		// Second outline is complete.
		{Match: matchOutline, Text: fiveSectionOutlineJSON(1000)},
	}
	steps = append(steps, draftSteps(5, 200)...)
	steps = append(steps,
		provider.Step{Match: matchSEO, Text: seoJSON(1.8)},
		provider.Step{Match: matchVoice, Text: voiceJSON},
	)
	pl := New(provider.NewScript(steps...), Config{})
	defer pl.Close()

	res := pl.Run(context.Background(), testBrief(1000))

	require.True(t, res.Success, "error: %s", res.Error)
	assert.GreaterOrEqual(t, res.RetryCount, 1)
	assert.True(t, res.Gates[GateOutline].Passed)
}

func TestRun_OutlineGateExhaustsSharedBudget(t *testing.T) {
	// Initial attempt plus two retries, all structurally invalid.
	pl := New(provider.NewScript(
		provider.Step{Match: matchResearch, Text: researchJSON},
		provider.Step{Match: matchOutline, Text: introOnlyOutlineJSON},
		provider.Step{Match: matchOutline, Text: introOnlyOutlineJSON},
		provider.Step{Match: matchOutline, Text: introOnlyOutlineJSON},
	), Config{})
	defer pl.Close()

	res := pl.Run(context.Background(), testBrief(1000))

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "outline quality gate failed")
	assert.Equal(t, DefaultRetryBudget, res.RetryCount)
}

func TestRun_RetryCountNeverExceedsBudget(t *testing.T) {
	// Outline always fails the gate; drafting would fail too if reached.
	steps := []provider.Step{{Match: matchResearch, Text: researchJSON}}
	for i := 0; i < 10; i++ {
		steps = append(steps, provider.Step{Match: matchOutline, Text: introOnlyOutlineJSON})
	}
	pl := New(provider.NewScript(steps...), Config{RetryBudget: 3})
	defer pl.Close()

	res := pl.Run(context.Background(), testBrief(1000))

	assert.False(t, res.Success)
	assert.LessOrEqual(t, res.RetryCount, 3)
	assert.Equal(t, 3, res.RetryCount)
}

func TestRun_CompletenessRetryRedraftsOnlyFlaggedSections(t *testing.T) {
	goal := 600
	steps := []provider.Step{
		{Match: matchResearch, Text: researchJSON},
		{Match: matchOutline, Text: fiveSectionOutlineJSON(goal)},
	}
	// First pass: intro comes back under the per-section floor, the other
	// four are fine. Aggregate stays in band.
	steps = append(steps, provider.Step{Match: matchDraft, Text: draftJSON(10)})
	steps = append(steps, draftSteps(4, 140)...)
	// Retry pass: exactly one redraft, for the flagged section.
	steps = append(steps, provider.Step{Match: matchDraft, Text: draftJSON(80)})
	steps = append(steps,
		provider.Step{Match: matchSEO, Text: seoJSON(1.8)},
		provider.Step{Match: matchVoice, Text: voiceJSON},
	)

	p := provider.NewScript(steps...)
	// Concurrency 1 keeps the draft/step pairing deterministic.
	pl := New(p, Config{DraftConcurrency: 1})
	defer pl.Close()

	res := pl.Run(context.Background(), testBrief(goal))

	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, 1, res.RetryCount)
	assert.True(t, res.Gates[GateCompleteness].Passed)

	// 1 research + 1 outline + 5 first-pass drafts + 1 redraft + seo + voice.
	assert.Len(t, p.Calls(), 10)

	// The redrafted intro content made it into the final ordered sections.
	assert.Equal(t, "intro", res.Sections[0].Key)
	assert.Equal(t, 80, res.Sections[0].WordCount)
}

func TestRun_CompletenessBelowGoalExhaustsBudget(t *testing.T) {
	goal := 2000
	steps := []provider.Step{
		{Match: matchResearch, Text: researchJSON},
		{Match: matchOutline, Text: fiveSectionOutlineJSON(goal)},
	}
	// Every pass drafts far too little; no individual section is short, so
	// each retry redrafts all five sections.
	steps = append(steps, draftSteps(15, 100)...)

	p := provider.NewScript(steps...)
	pl := New(p, Config{DraftConcurrency: 1})
	defer pl.Close()

	res := pl.Run(context.Background(), testBrief(goal))

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "completeness quality gate failed")
	assert.Contains(t, res.Error, "below goal")
	assert.Equal(t, DefaultRetryBudget, res.RetryCount)
	// 1 research + 1 outline + 3 full drafting passes of 5.
	assert.Len(t, p.Calls(), 17)
}

func TestRun_SEOGateFailureIsAdvisory(t *testing.T) {
	goal := 1000
	steps := []provider.Step{
		{Match: matchResearch, Text: researchJSON},
		{Match: matchOutline, Text: fiveSectionOutlineJSON(goal)},
	}
	steps = append(steps, draftSteps(5, 200)...)
	steps = append(steps,
		// Keyword stuffing: density 4.5% fails the SEO gate.
		provider.Step{Match: matchSEO, Text: seoJSON(4.5)},
		provider.Step{Match: matchVoice, Text: voiceJSON},
	)
	pl := New(provider.NewScript(steps...), Config{})
	defer pl.Close()

	res := pl.Run(context.Background(), testBrief(goal))

	require.True(t, res.Success, "error: %s", res.Error)
	assert.False(t, res.Gates[GateSEO].Passed)
	require.NotEmpty(t, res.Gates[GateSEO].Issues)
	assert.Contains(t, res.Gates[GateSEO].Issues[0], "keyword stuffing")
}

func TestRun_VoiceToneAgentFailureIsAdvisory(t *testing.T) {
	goal := 1000
	steps := []provider.Step{
		{Match: matchResearch, Text: researchJSON},
		{Match: matchOutline, Text: fiveSectionOutlineJSON(goal)},
	}
	steps = append(steps, draftSteps(5, 200)...)
	steps = append(steps,
		provider.Step{Match: matchSEO, Text: seoJSON(1.8)},
		provider.Step{Match: matchVoice, Err: errors.New("model refused")},
	)
	pl := New(provider.NewScript(steps...), Config{})
	defer pl.Close()

	res := pl.Run(context.Background(), testBrief(goal))

	require.True(t, res.Success, "error: %s", res.Error)
	assert.False(t, res.Gates[GateVoiceTone].Passed)
	assert.Contains(t, res.Gates[GateVoiceTone].Issues[0], "voice-tone stage failed")
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	pl := New(happyScript(1200), Config{})
	defer pl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := pl.Run(ctx, testBrief(1200))

	assert.False(t, res.Success)
	assert.Equal(t, "cancelled", res.Error)
	assert.Nil(t, res.Sections)
}

// providerFunc adapts a function to provider.Provider for test doubles that
// need to react to the request contents.
type providerFunc func(ctx context.Context, req provider.Request) (string, error)

func (f providerFunc) Generate(ctx context.Context, req provider.Request) (string, error) {
	return f(ctx, req)
}

func TestRun_CancelledDuringDrafting_DiscardsPartials(t *testing.T) {
	goal := 1000
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var drafts int
	p := providerFunc(func(_ context.Context, req provider.Request) (string, error) {
		switch {
		case matchResearch(req):
			return researchJSON, nil
		case matchOutline(req):
			return fiveSectionOutlineJSON(goal), nil
		case matchDraft(req):
			drafts++
			if drafts == 1 {
				return draftJSON(200), nil
			}
			// The caller cancels mid-drafting.
			cancel()
			return "", context.Canceled
		}
		return "", errors.New("unexpected request")
	})

	pl := New(p, Config{DraftConcurrency: 1})
	defer pl.Close()

	res := pl.Run(ctx, testBrief(goal))

	assert.False(t, res.Success)
	assert.Equal(t, "cancelled", res.Error)
	assert.Nil(t, res.Sections)
}

func TestAssembleDraft_JoinsInOrder(t *testing.T) {
	draft := AssembleDraft([]article.SectionContent{
		{Key: "intro", Content: "## Intro\n\nfirst"},
		{Key: "body", Content: "## Body\n\nsecond"},
	})
	assert.Equal(t, "## Intro\n\nfirst\n\n## Body\n\nsecond", draft)
	assert.Less(t, strings.Index(draft, "first"), strings.Index(draft, "second"))
}

func TestConfig_Defaults(t *testing.T) {
	c := Config{}.withDefaults()
	assert.Equal(t, DefaultRetryBudget, c.RetryBudget)
	assert.Equal(t, DefaultDraftConcurrency, c.DraftConcurrency)
	assert.Equal(t, 80, c.VoiceToneThreshold)

	c = Config{RetryBudget: -1}.withDefaults()
	assert.Equal(t, 0, c.RetryBudget)
}
