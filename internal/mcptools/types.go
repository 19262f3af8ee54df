package mcptools

// --- MCP tool types for the draftsmith server mode (--serve-mcp) ---
// These tools are exposed when the binary runs as an MCP server, so agent
// frontends can drive article generation through structured tools instead of
// shelling out.

import (
	"github.com/dusk-indust/draftsmith/internal/article"
	"github.com/dusk-indust/draftsmith/internal/gates"
)

// GeneratePostInput is the input for the generate_post MCP tool.
type GeneratePostInput struct {
	Topic         string              `json:"topic" jsonschema:"article topic"`
	TargetKeyword string              `json:"targetKeyword,omitempty" jsonschema:"primary SEO keyword"`
	WordCountGoal int                 `json:"wordCountGoal,omitempty" jsonschema:"desired total word count (default from config)"`
	ClientProfile []string            `json:"clientProfile,omitempty" jsonschema:"key facts about the client and audience"`
	Voice         *article.BrandVoice `json:"voice,omitempty" jsonschema:"brand voice context; defaults apply when absent"`
	Ref           string              `json:"ref,omitempty" jsonschema:"opaque caller reference threaded through the result"`
}

// GeneratePostOutput is the result of the generate_post MCP tool.
type GeneratePostOutput struct {
	RunID      string                   `json:"runId"`
	Success    bool                     `json:"success"`
	Error      string                   `json:"error,omitempty"`
	RetryCount int                      `json:"retryCount"`
	Sections   []article.SectionContent `json:"sections,omitempty"`
	SEO        article.SEOMetadata      `json:"seo"`
	VoiceTone  article.VoiceToneReport  `json:"voiceTone"`
	Gates      map[string]gates.Result  `json:"gates"`
	Draft      string                   `json:"draft,omitempty"`
}

// CheckOutlineInput is the input for the check_outline MCP tool.
type CheckOutlineInput struct {
	Outline article.Outline `json:"outline" jsonschema:"outline to validate"`
}

// CheckOutlineOutput is the result of the check_outline MCP tool.
type CheckOutlineOutput struct {
	Passed bool     `json:"passed"`
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
}
