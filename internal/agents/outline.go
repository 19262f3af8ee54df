package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/dusk-indust/draftsmith/internal/article"
	"github.com/dusk-indust/draftsmith/internal/provider"
)

const outlineSystem = `You are an editorial planner structuring a long-form article.
Respond with a single JSON object and nothing else. Fields:
{"sections": [{"key": "intro", "title": "..", "type": "intro|body|conclusion|cta",
"keyPoints": [..], "estimatedWords": 150}], "totalEstimatedWords": 1200}
The outline must contain one intro, at least one body section, a conclusion, and a cta.
Section keys must be unique slugs.`

// Outline plans the article structure from the brief and research findings.
// The word-count goal is embedded in the request so the result can be checked
// against it downstream.
type Outline struct{}

// Run executes the outline stage.
func (Outline) Run(ctx context.Context, p provider.Provider, brief article.Brief, research article.ResearchData) (article.Outline, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", brief.Topic)
	if brief.TargetKeyword != "" {
		fmt.Fprintf(&b, "Target keyword: %s\n", brief.TargetKeyword)
	}
	fmt.Fprintf(&b, "Word count goal: %d words total across all sections.\n\n", brief.WordCountGoal)

	b.WriteString("Research findings:\n")
	b.WriteString("Pain points:\n")
	b.WriteString(bulletList(research.PainPoints, "- (none)\n"))
	b.WriteString("Key facts:\n")
	b.WriteString(bulletList(research.KeyFacts, "- (none)\n"))
	b.WriteString("Differentiators:\n")
	b.WriteString(bulletList(research.Differentiators, "- (none)\n"))
	b.WriteString("Suggested angles:\n")
	b.WriteString(bulletList(research.Angles, "- (none)\n"))

	b.WriteString("\nClient profile:\n")
	b.WriteString(bulletList(brief.ClientProfile, "- (none provided)\n"))

	voice := brief.EffectiveVoice()
	fmt.Fprintf(&b, "\nAudience: %s\n", voice.Audience)
	b.WriteString("\nPlan the article and return the JSON object.")

	var outline article.Outline
	err := generate(ctx, p, "outline", provider.Request{
		System: outlineSystem,
		User:   b.String(),
	}, &outline)
	if err != nil {
		return article.Outline{}, err
	}
	return outline, nil
}
