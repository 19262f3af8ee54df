package gates

import (
	"fmt"

	"github.com/dusk-indust/draftsmith/internal/article"
)

const (
	seoPassThreshold = 75

	seoTitleMin = 30
	seoTitleMax = 60

	seoMetaDescMin = 70
	seoMetaDescMax = 160

	// seoMaxKeywordDensity is the stuffing ceiling, in percent.
	seoMaxKeywordDensity = 3.5
)

// SEO validates generated metadata: title and meta-description length bands
// and keyword density against the stuffing ceiling. The score is a weighted
// combination; density weighs heaviest because stuffing carries ranking
// penalties the length bands do not.
func SEO(meta article.SEOMetadata) Result {
	score := 100
	var issues []string

	if n := len(meta.Title); n < seoTitleMin || n > seoTitleMax {
		issues = append(issues, fmt.Sprintf("SEO title length %d outside %d-%d characters", n, seoTitleMin, seoTitleMax))
		score -= 35
	}
	if meta.KeywordDensity > seoMaxKeywordDensity {
		issues = append(issues, fmt.Sprintf("possible keyword stuffing: density %.1f%% above %.1f%%", meta.KeywordDensity, seoMaxKeywordDensity))
		score -= 40
	}
	if n := len(meta.MetaDescription); n < seoMetaDescMin || n > seoMetaDescMax {
		issues = append(issues, fmt.Sprintf("meta description length %d outside %d-%d characters", n, seoMetaDescMin, seoMetaDescMax))
		score -= 25
	}

	score = clampScore(score)
	return Result{
		Passed: score >= seoPassThreshold,
		Score:  score,
		Issues: issues,
	}
}
