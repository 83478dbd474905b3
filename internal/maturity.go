package internal

import (
	"github.com/lychee-technology/schemalens"
)

// maturityScore penalizes every open suggestion by its severity weight and
// clamps the result to [0,100].
func maturityScore(suggestions []schemalens.Suggestion, weights schemalens.SeverityWeights) int {
	penalty := 0
	for _, s := range suggestions {
		switch s.Severity {
		case schemalens.SeverityHigh:
			penalty += weights.High
		case schemalens.SeverityMedium:
			penalty += weights.Medium
		case schemalens.SeverityLow:
			penalty += weights.Low
		}
	}
	return clampInt(100-penalty, 0, 100)
}
