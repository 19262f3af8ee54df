package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/dusk-indust/draftsmith/internal/article"
	"github.com/dusk-indust/draftsmith/internal/provider"
)

const researchSystem = `You are a content strategist researching a topic for a client article.
Respond with a single JSON object and nothing else. Fields:
{"painPoints": [..], "keyFacts": [..], "differentiators": [..], "subtopics": [..], "angles": [..]}
Each field is a list of short strings.`

// Research gathers pain points, key facts, differentiators, subtopics, and
// suggested angles for a brief. It runs once per pipeline; there is no gate
// after it, and a failure here is fatal to the run.
type Research struct{}

// Run executes the research stage.
func (Research) Run(ctx context.Context, p provider.Provider, brief article.Brief) (article.ResearchData, error) {
	voice := brief.EffectiveVoice()

	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n\n", brief.Topic)
	b.WriteString("Client profile:\n")
	b.WriteString(bulletList(brief.ClientProfile, "- (none provided)\n"))
	fmt.Fprintf(&b, "\nAudience: %s\n", voice.Audience)
	if voice.StyleNotes != "" {
		fmt.Fprintf(&b, "Style notes: %s\n", voice.StyleNotes)
	}
	b.WriteString("\nResearch the topic for this client and return the JSON object.")

	var data article.ResearchData
	err := generate(ctx, p, "research", provider.Request{
		System: researchSystem,
		User:   b.String(),
	}, &data)
	if err != nil {
		return article.ResearchData{}, err
	}
	return data, nil
}
