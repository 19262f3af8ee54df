package agents

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dusk-indust/draftsmith/internal/article"
	"github.com/dusk-indust/draftsmith/internal/provider"
)

// voiceReviewLimit bounds how much draft content is included in the audit
// request. Only the reviewed content is truncated, never the instructions.
const voiceReviewLimit = 3000

const voiceToneSystem = `You are a brand editor auditing a draft against the client's voice guidelines.
Respond with a single JSON object and nothing else. Fields:
{"alignmentScore": 0-100, "issues": [{"sectionKey": "..", "issue": "..",
"suggestion": "..", "severity": "low|medium|high"}], "feedback": "..", "passed": true}`

// VoiceTone audits the assembled draft against the brief's brand voice.
type VoiceTone struct{}

// Run executes the voice/tone audit over the full draft plus per-section map.
func (VoiceTone) Run(ctx context.Context, p provider.Provider, fullDraft string, brief article.Brief, sections []article.SectionContent) (article.VoiceToneReport, error) {
	voice := brief.EffectiveVoice()

	var b strings.Builder
	b.WriteString("Brand voice traits:\n")
	b.WriteString(bulletList(voice.ToneTraits, "- Professional\n"))
	if len(voice.ProhibitedPhrases) > 0 {
		b.WriteString("Prohibited phrases:\n")
		b.WriteString(bulletList(voice.ProhibitedPhrases, ""))
	}
	fmt.Fprintf(&b, "Audience: %s\n", voice.Audience)
	if voice.StyleNotes != "" {
		fmt.Fprintf(&b, "Style notes: %s\n", voice.StyleNotes)
	}

	b.WriteString("\nSection keys, for locating issues:\n")
	for _, s := range sections {
		fmt.Fprintf(&b, "- %s (%d words)\n", s.Key, s.WordCount)
	}

	b.WriteString("\nDraft content under review:\n\n")
	b.WriteString(truncate(fullDraft, voiceReviewLimit))
	b.WriteString("\n\nAudit the draft and return the JSON object.")

	var report article.VoiceToneReport
	err := generate(ctx, p, "voice-tone", provider.Request{
		System: voiceToneSystem,
		User:   b.String(),
	}, &report)
	if err != nil {
		return article.VoiceToneReport{}, err
	}
	return report, nil
}

// truncate cuts s to at most limit bytes, marking the cut. The cut backs up
// to a rune boundary so a multibyte character is never split.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit] + "\n\n[content truncated for review]"
}
