package risk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"career", CategoryCareer, false},
		{"financial", CategoryFinancial, false},
		{"health", CategoryHealth, false},
		{"technical", CategoryTechnical, false},
		{"personal", CategoryPersonal, false},
		{"  Career  ", CategoryCareer, false},
		{"FINANCIAL", CategoryFinancial, false},
		{"social", CategoryUnknown, true},
		{"", CategoryUnknown, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeHorizon(t *testing.T) {
	t.Parallel()

	got, err := ParseTimeHorizon(" Weeks ")
	require.NoError(t, err)
	assert.Equal(t, HorizonWeeks, got)

	got, err = ParseTimeHorizon("months")
	require.NoError(t, err)
	assert.Equal(t, HorizonMonths, got)

	_, err = ParseTimeHorizon("years")
	require.Error(t, err)
}

func TestParseSignalEnums(t *testing.T) {
	t.Parallel()

	d, err := ParseSignalDirection("Increase")
	require.NoError(t, err)
	assert.Equal(t, DirectionIncrease, d)

	_, err = ParseSignalDirection("sideways")
	require.Error(t, err)

	s, err := ParseSignalStrength("STRONG")
	require.NoError(t, err)
	assert.Equal(t, StrengthStrong, s)

	_, err = ParseSignalStrength("overwhelming")
	require.Error(t, err)
}

func TestEnumJSONRoundTrip(t *testing.T) {
	t.Parallel()

	original := Signal{
		RiskID:    7,
		Name:      "Recruiter outreach dropped",
		Direction: DirectionDecrease,
		Strength:  StrengthWeak,
	}

	data, err := json.Marshal(&original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"direction":"decrease"`)
	assert.Contains(t, string(data), `"strength":"weak"`)

	var decoded Signal
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.Direction, decoded.Direction)
	assert.Equal(t, original.Strength, decoded.Strength)
}

func TestEnumJSONRejectsUnknown(t *testing.T) {
	t.Parallel()

	var c Category
	err := json.Unmarshal([]byte(`"astrological"`), &c)
	require.Error(t, err)
}
