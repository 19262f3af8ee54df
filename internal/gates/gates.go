// Package gates implements the pipeline's quality gates: pure, deterministic
// validators over produced artifacts. A gate never performs I/O and never
// touches the generation provider; it scores an artifact and decides pass or
// fail against a threshold. All gates return the same Result shape so the
// orchestrator can treat them uniformly.
package gates

// Result is the uniform outcome of every quality gate.
type Result struct {
	Passed bool     `json:"passed"`
	Score  int      `json:"score"` // 0-100
	Issues []string `json:"issues"`
}

// clampScore bounds a score to [0, 100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
