package risk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskradar/riskradar-go/internal/errors"
)

func validRisk() Risk {
	return Risk{
		Category:       CategoryCareer,
		Name:           "Career stagnation",
		BaseLikelihood: 0.5,
		Impact:         3,
		Confidence:     0.8,
		TimeHorizon:    HorizonMonths,
	}
}

func validSignal() Signal {
	return Signal{
		RiskID:    1,
		Name:      "No new responsibilities in 6 months",
		Direction: DirectionIncrease,
		Strength:  StrengthMedium,
	}
}

func TestRiskValidateBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Risk)
		wantErr bool
		field   string
	}{
		{"valid", func(r *Risk) {}, false, ""},
		{"likelihood lower bound", func(r *Risk) { r.BaseLikelihood = 0.0 }, false, ""},
		{"likelihood upper bound", func(r *Risk) { r.BaseLikelihood = 1.0 }, false, ""},
		{"likelihood above range", func(r *Risk) { r.BaseLikelihood = 1.5 }, true, "base_likelihood"},
		{"likelihood below range", func(r *Risk) { r.BaseLikelihood = -0.1 }, true, "base_likelihood"},
		{"impact lower bound", func(r *Risk) { r.Impact = 1 }, false, ""},
		{"impact upper bound", func(r *Risk) { r.Impact = 5 }, false, ""},
		{"impact zero", func(r *Risk) { r.Impact = 0 }, true, "impact"},
		{"impact six", func(r *Risk) { r.Impact = 6 }, true, "impact"},
		{"confidence above range", func(r *Risk) { r.Confidence = 1.01 }, true, "confidence"},
		{"empty name", func(r *Risk) { r.Name = "" }, true, "name"},
		{"name too long", func(r *Risk) { r.Name = strings.Repeat("a", 201) }, true, "name"},
		{"name at limit", func(r *Risk) { r.Name = strings.Repeat("a", 200) }, false, ""},
		{"multibyte name at limit", func(r *Risk) { r.Name = strings.Repeat("é", 200) }, false, ""},
		{"multibyte name too long", func(r *Risk) { r.Name = strings.Repeat("é", 201) }, true, "name"},
		{"missing category", func(r *Risk) { r.Category = CategoryUnknown }, true, "category"},
		{"missing horizon", func(r *Risk) { r.TimeHorizon = HorizonUnknown }, true, "time_horizon"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := validRisk()
			tt.mutate(&r)
			err := r.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

			var ee *errors.EnhancedError
			require.True(t, errors.As(err, &ee))
			assert.Equal(t, tt.field, ee.Context["field"])
		})
	}
}

func TestSignalValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Signal)
		wantErr bool
	}{
		{"valid", func(s *Signal) {}, false},
		{"missing risk id", func(s *Signal) { s.RiskID = 0 }, true},
		{"empty name", func(s *Signal) { s.Name = "" }, true},
		{"multibyte name at limit", func(s *Signal) { s.Name = strings.Repeat("é", 200) }, false},
		{"multibyte name too long", func(s *Signal) { s.Name = strings.Repeat("é", 201) }, true},
		{"missing direction", func(s *Signal) { s.Direction = DirectionUnknown }, true},
		{"missing strength", func(s *Signal) { s.Strength = StrengthUnknown }, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := validSignal()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLikelihoodModifierTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		direction SignalDirection
		strength  SignalStrength
		want      float64
	}{
		{DirectionIncrease, StrengthWeak, 0.05},
		{DirectionIncrease, StrengthMedium, 0.10},
		{DirectionIncrease, StrengthStrong, 0.20},
		{DirectionDecrease, StrengthWeak, -0.05},
		{DirectionDecrease, StrengthMedium, -0.10},
		{DirectionDecrease, StrengthStrong, -0.20},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.direction.String()+"/"+tt.strength.String(), func(t *testing.T) {
			t.Parallel()
			s := Signal{Direction: tt.direction, Strength: tt.strength}
			assert.InDelta(t, tt.want, s.LikelihoodModifier(), 0)
		})
	}
}

func TestAssessmentValidate(t *testing.T) {
	t.Parallel()

	a := Assessment{
		RiskID:              1,
		EffectiveLikelihood: 0.65,
		Impact:              3,
		Confidence:          0.8,
		RiskScore:           1.56,
		SignalCount:         2,
	}
	assert.NoError(t, a.Validate())

	a.EffectiveLikelihood = 1.1
	assert.Error(t, a.Validate())

	a.EffectiveLikelihood = 0.65
	a.RiskScore = -0.1
	assert.Error(t, a.Validate())
}
