package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/dusk-indust/draftsmith/internal/article"
	"github.com/dusk-indust/draftsmith/internal/provider"
)

const seoSystem = `You are an SEO specialist producing metadata for a finished article.
Respond with a single JSON object and nothing else. Fields:
{"title": "..", "metaDescription": "..", "slug": "..", "socialTitle": "..",
"socialDescription": "..", "suggestions": [..], "keywordDensity": 1.8, "readability": ".."}
keywordDensity is the target keyword's density in the draft as a percentage.
readability is a short qualitative label (e.g. "easy", "standard", "advanced").`

// SEO produces metadata and optimization suggestions for the assembled draft.
type SEO struct{}

// Run executes the SEO stage over the full concatenated draft.
func (SEO) Run(ctx context.Context, p provider.Provider, fullDraft, keyword string) (article.SEOMetadata, error) {
	var b strings.Builder
	if keyword != "" {
		fmt.Fprintf(&b, "Target keyword: %s\n\n", keyword)
	} else {
		b.WriteString("No target keyword was set; infer the primary keyword from the draft.\n\n")
	}
	b.WriteString("Article draft:\n\n")
	b.WriteString(fullDraft)
	b.WriteString("\n\nReturn the JSON object.")

	var meta article.SEOMetadata
	err := generate(ctx, p, "seo", provider.Request{
		System: seoSystem,
		User:   b.String(),
	}, &meta)
	if err != nil {
		return article.SEOMetadata{}, err
	}
	return meta, nil
}
