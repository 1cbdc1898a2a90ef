package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityForScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  Severity
	}{
		{0.0, SeverityLow},
		{1.49, SeverityLow},
		{1.5, SeverityMedium}, // lower bound inclusive
		{2.99, SeverityMedium},
		{3.0, SeverityHigh}, // lower bound inclusive
		{5.0, SeverityHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityForScore(tt.score), "score %v", tt.score)
	}
}

func TestSeverityString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "low", SeverityLow.String())
	assert.Equal(t, "medium", SeverityMedium.String())
	assert.Equal(t, "high", SeverityHigh.String())
}
