package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/dusk-indust/draftsmith/internal/gates"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultRetryBudget      = 2
	DefaultDraftConcurrency = 3
)

// Config holds per-run pipeline policy. The zero value is usable; withDefaults
// fills in anything unset.
type Config struct {
	// RetryBudget is the number of additional generation attempts shared
	// across the outline and completeness gates. It is pipeline-wide, not
	// per-gate. Zero means DefaultRetryBudget; negative disables retries.
	RetryBudget int

	// DraftConcurrency bounds the section-drafting worker pool. Sections
	// fan out up to this limit to respect provider rate limits.
	DraftConcurrency int

	// VoiceToneThreshold is the minimum alignment score for the voice gate.
	VoiceToneThreshold int

	// Logger receives structured stage/gate/retry events. Defaults to a
	// no-op logger.
	Logger zerolog.Logger
}

func (c Config) withDefaults() Config {
	switch {
	case c.RetryBudget == 0:
		c.RetryBudget = DefaultRetryBudget
	case c.RetryBudget < 0:
		c.RetryBudget = 0
	}
	if c.DraftConcurrency <= 0 {
		c.DraftConcurrency = DefaultDraftConcurrency
	}
	if c.VoiceToneThreshold <= 0 {
		c.VoiceToneThreshold = gates.DefaultVoiceToneThreshold
	}
	return c
}
