// Package risk defines the domain model: risks, their early-warning signals
// and the immutable assessments computed from them.
package risk

import (
	"time"
	"unicode/utf8"

	"github.com/riskradar/riskradar-go/internal/errors"
)

const maxNameLength = 200

// Risk represents a future uncertainty under consideration.
// ID is zero until the persistence layer assigns one.
type Risk struct {
	ID             uint        `json:"id,omitempty"`
	Category       Category    `json:"category"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	BaseLikelihood float64     `json:"base_likelihood"`
	Impact         int         `json:"impact"`
	Confidence     float64     `json:"confidence"`
	TimeHorizon    TimeHorizon `json:"time_horizon"`
	CreatedAt      time.Time   `json:"created_at,omitzero"`
	UpdatedAt      time.Time   `json:"updated_at,omitzero"`
}

// Validate checks all field invariants. The returned error names the offending
// field and its constraint.
func (r *Risk) Validate() error {
	if r.Category == CategoryUnknown {
		return validationError("category", "must be one of career, financial, health, technical, personal")
	}
	if !validNameLength(r.Name) {
		return validationError("name", "must be 1 to 200 characters")
	}
	if r.BaseLikelihood < 0.0 || r.BaseLikelihood > 1.0 {
		return validationError("base_likelihood", "must be between 0.0 and 1.0")
	}
	if r.Impact < 1 || r.Impact > 5 {
		return validationError("impact", "must be between 1 and 5")
	}
	if r.Confidence < 0.0 || r.Confidence > 1.0 {
		return validationError("confidence", "must be between 0.0 and 1.0")
	}
	if r.TimeHorizon == HorizonUnknown {
		return validationError("time_horizon", "must be weeks or months")
	}
	return nil
}

// Signal represents an observable early-warning indicator linked to one risk.
type Signal struct {
	ID          uint            `json:"id,omitempty"`
	RiskID      uint            `json:"risk_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Direction   SignalDirection `json:"direction"`
	Strength    SignalStrength  `json:"strength"`
	ObservedAt  *time.Time      `json:"observed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitzero"`
}

// Validate checks all field invariants.
func (s *Signal) Validate() error {
	if s.RiskID == 0 {
		return validationError("risk_id", "must reference an existing risk")
	}
	if !validNameLength(s.Name) {
		return validationError("name", "must be 1 to 200 characters")
	}
	if s.Direction == DirectionUnknown {
		return validationError("direction", "must be increase or decrease")
	}
	if s.Strength == StrengthUnknown {
		return validationError("strength", "must be weak, medium or strong")
	}
	return nil
}

// LikelihoodModifier returns the signed likelihood adjustment this signal
// contributes: weak 0.05, medium 0.10, strong 0.20, negated for decrease.
func (s *Signal) LikelihoodModifier() float64 {
	var magnitude float64
	switch s.Strength {
	case StrengthWeak:
		magnitude = 0.05
	case StrengthMedium:
		magnitude = 0.10
	case StrengthStrong:
		magnitude = 0.20
	case StrengthUnknown:
		return 0.0
	}

	if s.Direction == DirectionDecrease {
		return -magnitude
	}
	return magnitude
}

// Assessment is an immutable snapshot of a computed score at a point in time.
// Impact and Confidence are copied from the risk at computation time, not
// live references.
type Assessment struct {
	ID                  uint      `json:"id,omitempty"`
	RiskID              uint      `json:"risk_id"`
	EffectiveLikelihood float64   `json:"effective_likelihood"`
	Impact              int       `json:"impact"`
	Confidence          float64   `json:"confidence"`
	RiskScore           float64   `json:"risk_score"`
	SignalCount         int       `json:"signal_count"`
	AssessedAt          time.Time `json:"assessed_at"`
}

// Validate checks all field invariants.
func (a *Assessment) Validate() error {
	if a.RiskID == 0 {
		return validationError("risk_id", "must reference an existing risk")
	}
	if a.EffectiveLikelihood < 0.0 || a.EffectiveLikelihood > 1.0 {
		return validationError("effective_likelihood", "must be between 0.0 and 1.0")
	}
	if a.Impact < 1 || a.Impact > 5 {
		return validationError("impact", "must be between 1 and 5")
	}
	if a.Confidence < 0.0 || a.Confidence > 1.0 {
		return validationError("confidence", "must be between 0.0 and 1.0")
	}
	if a.RiskScore < 0.0 {
		return validationError("risk_score", "must not be negative")
	}
	if a.SignalCount < 0 {
		return validationError("signal_count", "must not be negative")
	}
	return nil
}

// RiskWithSignals pairs a risk with its current signals, the input shape for
// batch assessment.
type RiskWithSignals struct {
	Risk    Risk     `json:"risk"`
	Signals []Signal `json:"signals"`
}

// validNameLength counts runes, not bytes, so multibyte names are not
// penalized for their encoding.
func validNameLength(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 1 && n <= maxNameLength
}

func validationError(field, constraint string) error {
	return errors.Newf("%s %s", field, constraint).
		Component("risk").
		Category(errors.CategoryValidation).
		Context("field", field).
		Context("constraint", constraint).
		Build()
}
