package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veloxchat/sentinel/pkg/app/blacklist"
	"github.com/veloxchat/sentinel/pkg/app/scoring"
	"github.com/veloxchat/sentinel/pkg/domain"
	"github.com/veloxchat/sentinel/pkg/infra/classifier"
)

func newCombiner() *scoring.Combiner {
	return scoring.NewCombiner(scoring.Thresholds{Low: 0.5, Medium: 0.7, High: 0.9})
}

func TestCombine_CleanMessage(t *testing.T) {
	combined := newCombiner().Combine(
		classifier.Scores{"toxicity": 0.1},
		blacklist.Result{MaxSeverity: domain.SeverityNone},
	)

	assert.False(t, combined.IsToxic)
	assert.Equal(t, domain.SeverityNone, combined.Severity)
	assert.Equal(t, 0.1, combined.ToxicityScore)
}

func TestCombine_ClassifierOnly(t *testing.T) {
	combined := newCombiner().Combine(
		classifier.Scores{"toxicity": 0.75, "insult": 0.4},
		blacklist.Result{MaxSeverity: domain.SeverityNone},
	)

	assert.True(t, combined.IsToxic)
	assert.Equal(t, domain.SeverityMedium, combined.Severity)
	assert.Equal(t, 0.75, combined.ToxicityScore)
	assert.Empty(t, combined.DetectedWords)
}

func TestCombine_BlacklistOnly(t *testing.T) {
	combined := newCombiner().Combine(
		classifier.Scores{"toxicity": 0.2},
		blacklist.Result{Matched: true, Terms: []string{"badword"}, MaxSeverity: domain.SeverityHigh},
	)

	assert.True(t, combined.IsToxic)
	// high severity match carries the 0.9 proxy, above the raw score
	assert.Equal(t, 0.9, combined.ToxicityScore)
	assert.Equal(t, domain.SeverityHigh, combined.Severity)
	assert.Equal(t, []string{"badword"}, combined.DetectedWords)
}

func TestCombine_ClassifierScoreWinsOverProxy(t *testing.T) {
	combined := newCombiner().Combine(
		classifier.Scores{"toxicity": 0.95},
		blacklist.Result{Matched: true, Terms: []string{"badword"}, MaxSeverity: domain.SeverityLow},
	)

	assert.Equal(t, 0.95, combined.ToxicityScore)
	assert.Equal(t, domain.SeverityHigh, combined.Severity)
}

func TestCombine_BlacklistSeverityWinsOverBucket(t *testing.T) {
	// classifier says low, the dictionary says high; high prevails
	combined := newCombiner().Combine(
		classifier.Scores{"toxicity": 0.55},
		blacklist.Result{Matched: true, Terms: []string{"slur"}, MaxSeverity: domain.SeverityHigh},
	)

	assert.Equal(t, domain.SeverityHigh, combined.Severity)
}

func TestCombine_UnknownSeverityFallsBackToMediumProxy(t *testing.T) {
	combined := newCombiner().Combine(
		classifier.Scores{},
		blacklist.Result{Matched: true, Terms: []string{"x"}, MaxSeverity: domain.Severity("weird")},
	)

	assert.True(t, combined.IsToxic)
	assert.Equal(t, 0.75, combined.ToxicityScore)
}

func TestBucketSeverity_Boundaries(t *testing.T) {
	c := newCombiner()

	cases := []struct {
		score    float64
		expected domain.Severity
	}{
		{0.0, domain.SeverityNone},
		{0.49, domain.SeverityNone},
		{0.5, domain.SeverityLow},
		{0.69, domain.SeverityLow},
		{0.7, domain.SeverityMedium},
		{0.89, domain.SeverityMedium},
		{0.9, domain.SeverityHigh},
		{1.0, domain.SeverityHigh},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, c.BucketSeverity(tc.score), "score %v", tc.score)
	}
}
