package gates

import (
	"fmt"

	"github.com/dusk-indust/draftsmith/internal/article"
)

// outlinePassThreshold is the minimum score for a usable outline.
const outlinePassThreshold = 70

// Outline validates the structural shape of an outline. One intro, at least
// one body section, a conclusion, and a cta must all exist, and section keys
// must be unique; any of those violations fails the gate outright, whatever
// the score. Missing key points only reduce the score.
func Outline(o article.Outline) Result {
	score := 100
	structural := true
	var issues []string

	counts := make(map[article.SectionType]int, 4)
	seen := make(map[string]bool, len(o.Sections))
	missingKeyPoints := 0
	duplicateKeys := 0
	for _, s := range o.Sections {
		counts[s.Type]++
		if seen[s.Key] {
			duplicateKeys++
		}
		seen[s.Key] = true
		if len(s.KeyPoints) == 0 {
			missingKeyPoints++
		}
	}

	if counts[article.SectionIntro] == 0 {
		issues = append(issues, "Missing intro section")
		score -= 40
		structural = false
	}
	if counts[article.SectionBody] == 0 {
		issues = append(issues, "Missing body section")
		score -= 25
		structural = false
	}
	if counts[article.SectionConclusion] == 0 {
		issues = append(issues, "Missing conclusion section")
		score -= 15
		structural = false
	}
	if counts[article.SectionCTA] == 0 {
		issues = append(issues, "Missing cta section")
		score -= 15
		structural = false
	}
	if duplicateKeys > 0 {
		issues = append(issues, fmt.Sprintf("%d duplicate section keys", duplicateKeys))
		score -= 20 * duplicateKeys
		structural = false
	}
	if missingKeyPoints > 0 {
		issues = append(issues, fmt.Sprintf("%d sections missing key points", missingKeyPoints))
		score -= 10 * missingKeyPoints
	}

	score = clampScore(score)
	return Result{
		Passed: structural && score >= outlinePassThreshold,
		Score:  score,
		Issues: issues,
	}
}
