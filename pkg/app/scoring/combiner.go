package scoring

import (
	"github.com/veloxchat/sentinel/pkg/app/blacklist"
	"github.com/veloxchat/sentinel/pkg/domain"
	"github.com/veloxchat/sentinel/pkg/infra/classifier"
)

// Thresholds bucket a continuous classifier score into severities.
// They must be strictly ascending.
type Thresholds struct {
	Low    float64
	Medium float64
	High   float64
}

// CombinedScore is the merged verdict over both signals.
type CombinedScore struct {
	IsToxic       bool
	ToxicityScore float64
	Severity      domain.Severity
	DetectedWords []string
	Categories    []string
}

// Proxy scores stand in for blacklist severities so they can compete
// with the classifier's continuous score.
var severityProxyScores = map[domain.Severity]float64{
	domain.SeverityLow:    0.6,
	domain.SeverityMedium: 0.75,
	domain.SeverityHigh:   0.9,
}

// Combiner merges classifier output and blacklist output into one
// verdict. Pure and deterministic; no I/O.
type Combiner struct {
	thresholds Thresholds
}

func NewCombiner(thresholds Thresholds) *Combiner {
	return &Combiner{thresholds: thresholds}
}

func (c *Combiner) Combine(scores classifier.Scores, blacklistResult blacklist.Result) CombinedScore {
	classifierMax := scores.Max()
	classifierToxic := classifierMax >= c.thresholds.Low

	var proxyScore float64
	if blacklistResult.Matched {
		if p, ok := severityProxyScores[blacklistResult.MaxSeverity]; ok {
			proxyScore = p
		} else {
			// Unresolvable severity falls back to the medium proxy.
			proxyScore = severityProxyScores[domain.SeverityMedium]
		}
	}

	combined := classifierMax
	if proxyScore > combined {
		combined = proxyScore
	}

	severity := c.BucketSeverity(classifierMax)
	if blacklistResult.Matched {
		severity = severity.Max(blacklistResult.MaxSeverity)
	}

	return CombinedScore{
		IsToxic:       classifierToxic || blacklistResult.Matched,
		ToxicityScore: combined,
		Severity:      severity,
		DetectedWords: blacklistResult.Terms,
		Categories:    scores.Categories(0.5),
	}
}

// BucketSeverity maps a [0,1] score into the severity ladder.
func (c *Combiner) BucketSeverity(score float64) domain.Severity {
	switch {
	case score >= c.thresholds.High:
		return domain.SeverityHigh
	case score >= c.thresholds.Medium:
		return domain.SeverityMedium
	case score >= c.thresholds.Low:
		return domain.SeverityLow
	default:
		return domain.SeverityNone
	}
}
