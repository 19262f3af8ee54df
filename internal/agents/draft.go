package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/dusk-indust/draftsmith/internal/article"
	"github.com/dusk-indust/draftsmith/internal/provider"
)

const draftSystem = `You are a senior copywriter drafting one section of a long-form article.
Respond with a single JSON object and nothing else. Fields:
{"key": "<section key>", "content": "<markdown prose for this section>"}
Write only this section. Do not repeat other sections or add a document title.`

// Draft realizes a single outline section. Draft invocations are independent
// of one another, so the orchestrator may fan them out concurrently.
type Draft struct{}

// Run executes one section draft.
func (Draft) Run(ctx context.Context, p provider.Provider, brief article.Brief, section article.OutlineSection, research article.ResearchData) (article.SectionContent, error) {
	voice := brief.EffectiveVoice()

	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n\n", brief.Topic)
	fmt.Fprintf(&b, "Section key: %s\nSection title: %s\nSection type: %s\nTarget length: about %d words.\n",
		section.Key, section.Title, section.Type, section.EstimatedWords)
	b.WriteString("Key points to cover:\n")
	b.WriteString(bulletList(section.KeyPoints, "- (author's discretion)\n"))

	b.WriteString("\nBrand voice traits (follow exactly):\n")
	b.WriteString(bulletList(voice.ToneTraits, "- Professional\n"))
	if len(voice.ProhibitedPhrases) > 0 {
		b.WriteString("Never use these phrases:\n")
		b.WriteString(bulletList(voice.ProhibitedPhrases, ""))
	}
	fmt.Fprintf(&b, "Audience: %s\n", voice.Audience)

	b.WriteString("\nRelevant research:\n")
	b.WriteString("Key facts:\n")
	b.WriteString(bulletList(research.KeyFacts, "- (none)\n"))
	b.WriteString("Pain points:\n")
	b.WriteString(bulletList(research.PainPoints, "- (none)\n"))

	b.WriteString("\nClient profile:\n")
	b.WriteString(bulletList(brief.ClientProfile, "- (none provided)\n"))
	b.WriteString("\nDraft the section and return the JSON object.")

	var payload struct {
		Key     string `json:"key"`
		Content string `json:"content"`
	}
	err := generate(ctx, p, "draft", provider.Request{
		System: draftSystem,
		User:   b.String(),
	}, &payload)
	if err != nil {
		return article.SectionContent{}, err
	}
	if strings.TrimSpace(payload.Content) == "" {
		return article.SectionContent{}, fmt.Errorf("draft agent: empty content for section %q", section.Key)
	}

	// The model's own key is unreliable; the outline key is authoritative.
	// Word count is computed locally rather than trusted from the model.
	return article.SectionContent{
		Key:       section.Key,
		Content:   payload.Content,
		WordCount: article.CountWords(payload.Content),
	}, nil
}
