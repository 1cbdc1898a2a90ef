package scoring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskradar/riskradar-go/internal/errors"
	"github.com/riskradar/riskradar-go/internal/risk"
)

func signal(direction risk.SignalDirection, strength risk.SignalStrength) risk.Signal {
	return risk.Signal{RiskID: 1, Name: "test signal", Direction: direction, Strength: strength}
}

func TestEffectiveLikelihood(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		base    float64
		signals []risk.Signal
		want    float64
	}{
		{"no signals", 0.5, nil, 0.5},
		{
			"strong increase plus weak decrease",
			0.5,
			[]risk.Signal{
				signal(risk.DirectionIncrease, risk.StrengthStrong),
				signal(risk.DirectionDecrease, risk.StrengthWeak),
			},
			0.65,
		},
		{
			"clamps to one",
			0.9,
			[]risk.Signal{
				signal(risk.DirectionIncrease, risk.StrengthStrong),
				signal(risk.DirectionIncrease, risk.StrengthStrong),
				signal(risk.DirectionIncrease, risk.StrengthStrong),
			},
			1.0,
		},
		{
			"clamps to zero",
			0.1,
			[]risk.Signal{
				signal(risk.DirectionDecrease, risk.StrengthStrong),
				signal(risk.DirectionDecrease, risk.StrengthStrong),
				signal(risk.DirectionDecrease, risk.StrengthStrong),
			},
			0.0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := EffectiveLikelihood(tt.base, tt.signals)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEffectiveLikelihoodClampsExactly(t *testing.T) {
	t.Parallel()

	over := []risk.Signal{
		signal(risk.DirectionIncrease, risk.StrengthStrong),
		signal(risk.DirectionIncrease, risk.StrengthStrong),
		signal(risk.DirectionIncrease, risk.StrengthStrong),
	}
	assert.Equal(t, 1.0, EffectiveLikelihood(0.9, over)) //nolint:testifylint // exact clamp value

	under := []risk.Signal{
		signal(risk.DirectionDecrease, risk.StrengthStrong),
		signal(risk.DirectionDecrease, risk.StrengthStrong),
	}
	assert.Equal(t, 0.0, EffectiveLikelihood(0.05, under)) //nolint:testifylint // exact clamp value
}

// Clamping is applied once after the full sum, so an intermediate overshoot
// can still be pulled back into range by later signals.
func TestEffectiveLikelihoodClampsAfterSum(t *testing.T) {
	t.Parallel()

	signals := []risk.Signal{
		signal(risk.DirectionIncrease, risk.StrengthStrong),
		signal(risk.DirectionIncrease, risk.StrengthStrong), // running total 1.35
		signal(risk.DirectionDecrease, risk.StrengthStrong),
		signal(risk.DirectionDecrease, risk.StrengthStrong),
	}
	assert.InDelta(t, 0.95, EffectiveLikelihood(0.95, signals), 1e-9)
}

func TestEffectiveLikelihoodOrderIndependent(t *testing.T) {
	t.Parallel()

	signals := []risk.Signal{
		signal(risk.DirectionIncrease, risk.StrengthStrong),
		signal(risk.DirectionDecrease, risk.StrengthWeak),
		signal(risk.DirectionIncrease, risk.StrengthMedium),
		signal(risk.DirectionDecrease, risk.StrengthMedium),
		signal(risk.DirectionIncrease, risk.StrengthWeak),
	}

	want := EffectiveLikelihood(0.4, signals)

	rng := rand.New(rand.NewSource(42)) //nolint:gosec // deterministic shuffle for test
	for i := 0; i < 20; i++ {
		shuffled := make([]risk.Signal, len(signals))
		copy(shuffled, signals)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		assert.InDelta(t, want, EffectiveLikelihood(0.4, shuffled), 1e-9)
	}
}

func TestRiskScore(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.56, RiskScore(0.65, 3, 0.8), 1e-9)
	assert.InDelta(t, 5.0, RiskScore(1.0, 5, 1.0), 1e-9)
	assert.InDelta(t, 0.0, RiskScore(0.0, 5, 1.0), 1e-9)
}

func TestRiskScoreRange(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic inputs for test
	for i := 0; i < 200; i++ {
		likelihood := rng.Float64()
		impact := rng.Intn(5) + 1
		confidence := rng.Float64()
		score := RiskScore(likelihood, impact, confidence)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 5.0)
		assert.InDelta(t, likelihood*float64(impact)*confidence, score, 0)
	}
}

func TestAssess(t *testing.T) {
	t.Parallel()

	r := risk.Risk{
		ID:             42,
		Category:       risk.CategoryCareer,
		Name:           "Career stagnation",
		BaseLikelihood: 0.5,
		Impact:         3,
		Confidence:     0.8,
		TimeHorizon:    risk.HorizonMonths,
	}
	signals := []risk.Signal{
		signal(risk.DirectionIncrease, risk.StrengthStrong),
		signal(risk.DirectionDecrease, risk.StrengthWeak),
	}

	assessment, err := Assess(&r, signals)
	require.NoError(t, err)

	assert.Equal(t, uint(42), assessment.RiskID)
	assert.InDelta(t, 0.65, assessment.EffectiveLikelihood, 1e-9)
	assert.Equal(t, 3, assessment.Impact)
	assert.InDelta(t, 0.8, assessment.Confidence, 0)
	assert.InDelta(t, 1.56, assessment.RiskScore, 1e-9)
	assert.Equal(t, 2, assessment.SignalCount)
	assert.False(t, assessment.AssessedAt.IsZero())
	assert.NoError(t, assessment.Validate())
}

func TestAssessEmptySignals(t *testing.T) {
	t.Parallel()

	r := risk.Risk{ID: 1, BaseLikelihood: 0.5, Impact: 3, Confidence: 1.0}
	assessment, err := Assess(&r, nil)
	require.NoError(t, err)

	assert.InDelta(t, r.BaseLikelihood, assessment.EffectiveLikelihood, 0)
	assert.Equal(t, 0, assessment.SignalCount)
	assert.InDelta(t, 1.5, assessment.RiskScore, 1e-9)
	assert.Equal(t, SeverityMedium, SeverityForScore(assessment.RiskScore))
}

func TestAssessUnpersistedRisk(t *testing.T) {
	t.Parallel()

	r := risk.Risk{BaseLikelihood: 0.5, Impact: 3, Confidence: 0.8}
	_, err := Assess(&r, nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryState))
}

func TestAssessAllMatchesIndividualCalls(t *testing.T) {
	t.Parallel()

	pairs := []risk.RiskWithSignals{
		{
			Risk: risk.Risk{ID: 1, BaseLikelihood: 0.5, Impact: 3, Confidence: 0.8},
			Signals: []risk.Signal{
				signal(risk.DirectionIncrease, risk.StrengthStrong),
				signal(risk.DirectionDecrease, risk.StrengthWeak),
			},
		},
		{
			Risk:    risk.Risk{ID: 2, BaseLikelihood: 0.9, Impact: 5, Confidence: 1.0},
			Signals: []risk.Signal{signal(risk.DirectionIncrease, risk.StrengthStrong)},
		},
		{
			Risk: risk.Risk{ID: 3, BaseLikelihood: 0.2, Impact: 1, Confidence: 0.4},
		},
	}

	batch, err := AssessAll(pairs)
	require.NoError(t, err)
	require.Len(t, batch, len(pairs))

	for i := range pairs {
		individual, err := Assess(&pairs[i].Risk, pairs[i].Signals)
		require.NoError(t, err)
		assert.Equal(t, individual.RiskID, batch[i].RiskID)
		assert.InDelta(t, individual.EffectiveLikelihood, batch[i].EffectiveLikelihood, 0)
		assert.InDelta(t, individual.RiskScore, batch[i].RiskScore, 0)
		assert.Equal(t, individual.SignalCount, batch[i].SignalCount)
	}
}

func TestAssessAllPropagatesError(t *testing.T) {
	t.Parallel()

	pairs := []risk.RiskWithSignals{
		{Risk: risk.Risk{ID: 1, BaseLikelihood: 0.5, Impact: 3, Confidence: 0.8}},
		{Risk: risk.Risk{BaseLikelihood: 0.5, Impact: 3, Confidence: 0.8}}, // unpersisted
	}
	_, err := AssessAll(pairs)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryState))
}

func TestAssessAllEmptyInput(t *testing.T) {
	t.Parallel()

	batch, err := AssessAll(nil)
	require.NoError(t, err)
	assert.Empty(t, batch)
}
