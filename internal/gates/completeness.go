package gates

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/draftsmith/internal/article"
)

const (
	// completenessLowRatio / completenessHighRatio bound the acceptable
	// total word count relative to the goal.
	completenessLowRatio  = 0.8
	completenessHighRatio = 1.2

	// minSectionWords is the floor for an individual section to count as
	// substantive content.
	minSectionWords = 30
)

// Completeness validates drafted sections against the word-count goal.
// The aggregate total must land within [80%, 120%] of the goal, and every
// individual section must carry substantive content; a short section fails
// the gate even when the total is acceptable.
func Completeness(sections []article.SectionContent, wordCountGoal int) Result {
	score := 100
	var issues []string

	total := 0
	for _, s := range sections {
		total += article.CountWords(s.Content)
	}

	if wordCountGoal > 0 {
		low := int(float64(wordCountGoal) * completenessLowRatio)
		high := int(float64(wordCountGoal) * completenessHighRatio)
		switch {
		case total < low:
			issues = append(issues, fmt.Sprintf("total word count %d below goal %d (minimum %d)", total, wordCountGoal, low))
			score -= 40
		case total > high:
			issues = append(issues, fmt.Sprintf("total word count %d exceeds goal %d (maximum %d)", total, wordCountGoal, high))
			score -= 30
		}
	}

	short := ShortSections(sections)
	if len(short) > 0 {
		issues = append(issues, fmt.Sprintf("%d sections empty or too short: %s", len(short), strings.Join(short, ", ")))
		score -= 15 * len(short)
	}

	score = clampScore(score)
	return Result{
		Passed: len(issues) == 0,
		Score:  score,
		Issues: issues,
	}
}

// ShortSections returns the keys of sections whose content is empty or under
// the minimal length threshold, in input order. The orchestrator redrafts
// exactly these on a completeness retry.
func ShortSections(sections []article.SectionContent) []string {
	var keys []string
	for _, s := range sections {
		if article.CountWords(s.Content) < minSectionWords {
			keys = append(keys, s.Key)
		}
	}
	return keys
}
