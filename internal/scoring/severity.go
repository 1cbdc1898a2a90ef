package scoring

// Severity classifies a risk score into a presentation band.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

// Band thresholds, inclusive on the lower bound.
const (
	mediumThreshold = 1.5
	highThreshold   = 3.0
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	}
	return "low"
}

// SeverityForScore maps a risk score onto its severity band.
func SeverityForScore(score float64) Severity {
	switch {
	case score >= highThreshold:
		return SeverityHigh
	case score >= mediumThreshold:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
