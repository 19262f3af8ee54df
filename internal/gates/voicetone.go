package gates

import (
	"fmt"

	"github.com/dusk-indust/draftsmith/internal/article"
)

// DefaultVoiceToneThreshold is the alignment score required when the caller
// does not override it.
const DefaultVoiceToneThreshold = 80

// VoiceTone validates a brand-voice audit report. It passes iff the alignment
// score meets the threshold and the report carries no high-severity issues.
// The threshold is per-invocation so strict and lenient modes coexist.
func VoiceTone(report article.VoiceToneReport, threshold int) Result {
	var issues []string

	high := 0
	for _, issue := range report.Issues {
		if issue.Severity == article.SeverityHigh {
			high++
		}
	}

	if report.AlignmentScore < threshold {
		issues = append(issues, fmt.Sprintf("alignment score %d below threshold %d", report.AlignmentScore, threshold))
	}
	if high > 0 {
		issues = append(issues, fmt.Sprintf("%d high-severity brand voice violations", high))
	}

	return Result{
		Passed: report.AlignmentScore >= threshold && high == 0,
		Score:  clampScore(report.AlignmentScore),
		Issues: issues,
	}
}
