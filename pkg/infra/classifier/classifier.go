package classifier

import (
	"context"
)

// Scores maps toxicity categories to their [0,1] scores.
type Scores map[string]float64

// Max returns the highest category score, zero when empty.
func (s Scores) Max() float64 {
	var max float64
	for _, v := range s {
		if v > max {
			max = v
		}
	}
	return max
}

// Categories returns the categories scoring above the threshold.
func (s Scores) Categories(threshold float64) []string {
	var out []string
	for category, score := range s {
		if score > threshold {
			out = append(out, category)
		}
	}
	return out
}

// Scorer scores text across toxicity categories. Implementations must
// be side-effect-free from the engine's perspective.
//
//go:generate mockery --name=Scorer --dir=. --output=./mocks --filename=scorer_mock.go --case=underscore --with-expecter
type Scorer interface {
	Score(ctx context.Context, text string) (Scores, error)
}
