// Package scoring implements the assessment engine: deterministic,
// side-effect-free computation of effective likelihood and risk scores.
// The engine only reads its inputs and allocates new outputs, so it is safe
// to call from concurrent requests.
package scoring

import (
	"time"

	"github.com/riskradar/riskradar-go/internal/errors"
	"github.com/riskradar/riskradar-go/internal/risk"
)

// EffectiveLikelihood applies every signal's modifier to the base likelihood
// and clamps the result to [0, 1]. Clamping happens once, after the full sum,
// so a strong increase can cancel out against later decreases.
func EffectiveLikelihood(baseLikelihood float64, signals []risk.Signal) float64 {
	effective := baseLikelihood
	for i := range signals {
		effective += signals[i].LikelihoodModifier()
	}
	return clamp(effective, 0.0, 1.0)
}

// RiskScore computes the headline score: likelihood x impact x confidence.
// With inputs in range the score is always within [0, 5].
func RiskScore(likelihood float64, impact int, confidence float64) float64 {
	return likelihood * float64(impact) * confidence
}

// Assess computes a new assessment for a risk from its current signals.
// The risk must have a persisted identity; an assessment has to reference a
// concrete risk ID.
func Assess(r *risk.Risk, signals []risk.Signal) (*risk.Assessment, error) {
	if r.ID == 0 {
		return nil, errors.Newf("cannot assess unpersisted risk %q", r.Name).
			Component("scoring").
			Category(errors.CategoryState).
			Context("risk_name", r.Name).
			Build()
	}

	effectiveLikelihood := EffectiveLikelihood(r.BaseLikelihood, signals)
	score := RiskScore(effectiveLikelihood, r.Impact, r.Confidence)

	return &risk.Assessment{
		RiskID:              r.ID,
		EffectiveLikelihood: effectiveLikelihood,
		Impact:              r.Impact,
		Confidence:          r.Confidence,
		RiskScore:           score,
		SignalCount:         len(signals),
		AssessedAt:          time.Now(),
	}, nil
}

// AssessAll assesses each (risk, signals) pair independently. Output order
// matches input order; no pair's computation depends on another's. The first
// error aborts and propagates unchanged.
func AssessAll(pairs []risk.RiskWithSignals) ([]risk.Assessment, error) {
	assessments := make([]risk.Assessment, 0, len(pairs))
	for i := range pairs {
		assessment, err := Assess(&pairs[i].Risk, pairs[i].Signals)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, *assessment)
	}
	return assessments, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
