// Package article defines the artifact types that flow through the content
// generation pipeline: the input brief, research findings, the outline,
// drafted sections, and the SEO / brand-voice reports produced near the end.
package article

// SectionType classifies an outline section.
type SectionType string

const (
	SectionIntro      SectionType = "intro"
	SectionBody       SectionType = "body"
	SectionConclusion SectionType = "conclusion"
	SectionCTA        SectionType = "cta"
)

// BrandVoice carries the marketing context for a client: how the copy should
// sound and what it must never say. All fields are optional; absent fields
// fall back to DefaultBrandVoice.
type BrandVoice struct {
	ToneTraits        []string `json:"toneTraits,omitempty" yaml:"toneTraits,omitempty"`
	ProhibitedPhrases []string `json:"prohibitedPhrases,omitempty" yaml:"prohibitedPhrases,omitempty"`
	Audience          string   `json:"audience,omitempty" yaml:"audience,omitempty"`
	StyleNotes        string   `json:"styleNotes,omitempty" yaml:"styleNotes,omitempty"`
}

// Brief is the immutable input for one pipeline run.
type Brief struct {
	// Topic is the subject of the article.
	Topic string `json:"topic" yaml:"topic"`

	// TargetKeyword is the primary SEO keyword. Optional.
	TargetKeyword string `json:"targetKeyword,omitempty" yaml:"targetKeyword,omitempty"`

	// WordCountGoal is the desired total length of the article body.
	WordCountGoal int `json:"wordCountGoal" yaml:"wordCountGoal"`

	// ClientProfile is an ordered list of key facts about the subject and
	// its audience, in whatever form the caller keeps them.
	ClientProfile []string `json:"clientProfile,omitempty" yaml:"clientProfile,omitempty"`

	// Voice is the brand-voice context. Nil means DefaultBrandVoice applies.
	Voice *BrandVoice `json:"voice,omitempty" yaml:"voice,omitempty"`

	// Ref is an opaque caller reference (post ID, batch ID). The pipeline
	// threads it through untouched.
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// EffectiveVoice returns the brief's brand voice with fallback defaults
// substituted for absent fields, so downstream auditing always has something
// to check against.
func (b Brief) EffectiveVoice() BrandVoice {
	v := BrandVoice{}
	if b.Voice != nil {
		v = *b.Voice
	}
	if len(v.ToneTraits) == 0 {
		v.ToneTraits = DefaultBrandVoice.ToneTraits
	}
	if v.Audience == "" {
		v.Audience = DefaultBrandVoice.Audience
	}
	return v
}

// ResearchData is the Research agent's output. Each list is ordered as
// produced and read-only after the research stage completes.
type ResearchData struct {
	PainPoints      []string `json:"painPoints"`
	KeyFacts        []string `json:"keyFacts"`
	Differentiators []string `json:"differentiators"`
	Subtopics       []string `json:"subtopics"`
	Angles          []string `json:"angles"`
}

// Empty reports whether research produced nothing usable in any category.
func (r ResearchData) Empty() bool {
	return len(r.PainPoints) == 0 && len(r.KeyFacts) == 0 &&
		len(r.Differentiators) == 0 && len(r.Subtopics) == 0 && len(r.Angles) == 0
}

// OutlineSection is one planned section of the article.
type OutlineSection struct {
	Key            string      `json:"key"`
	Title          string      `json:"title"`
	Type           SectionType `json:"type"`
	KeyPoints      []string    `json:"keyPoints"`
	EstimatedWords int         `json:"estimatedWords"`
}

// Outline is the planned article structure. An Outline may be structurally
// invalid (missing intro, no key points); the outline quality gate decides
// usability, not construction.
type Outline struct {
	Sections            []OutlineSection `json:"sections"`
	TotalEstimatedWords int              `json:"totalEstimatedWords"`
}

// SectionContent is a realized section, keyed one-to-one with its
// OutlineSection by Key.
type SectionContent struct {
	Key       string `json:"key"`
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`
}

// SEOMetadata is the SEO agent's output.
type SEOMetadata struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"metaDescription"`
	Slug            string   `json:"slug"`
	SocialTitle     string   `json:"socialTitle,omitempty"`
	SocialDesc      string   `json:"socialDescription,omitempty"`
	Suggestions     []string `json:"suggestions"`
	KeywordDensity  float64  `json:"keywordDensity"` // percent
	Readability     string   `json:"readability"`
}

// Severity grades a voice/tone issue.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// VoiceIssue is one brand-voice problem found in the draft.
type VoiceIssue struct {
	SectionKey string   `json:"sectionKey,omitempty"`
	Issue      string   `json:"issue"`
	Suggestion string   `json:"suggestion"`
	Severity   Severity `json:"severity"`
}

// VoiceToneReport is the Voice/Tone agent's output.
type VoiceToneReport struct {
	AlignmentScore int          `json:"alignmentScore"` // 0-100
	Issues         []VoiceIssue `json:"issues"`
	Feedback       string       `json:"feedback"`
	Passed         bool         `json:"passed"`
}
