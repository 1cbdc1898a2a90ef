// model.go: database records for risks, signals and assessments
package datastore

import (
	"time"

	"github.com/riskradar/riskradar-go/internal/errors"
	"github.com/riskradar/riskradar-go/internal/risk"
)

// Risk is the persisted form of a risk. Enum fields are stored as their
// lowercase string names. A risk owns its signals and assessments; deleting
// the risk cascades to both.
type Risk struct {
	ID             uint   `gorm:"primaryKey"`
	Category       string `gorm:"type:varchar(20);not null;index:idx_risks_category"`
	Name           string `gorm:"type:varchar(200);not null"`
	Description    string `gorm:"type:text"`
	BaseLikelihood float64
	Impact         int
	Confidence     float64
	TimeHorizon    string `gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Signals     []Signal     `gorm:"foreignKey:RiskID;constraint:OnDelete:CASCADE"`
	Assessments []Assessment `gorm:"foreignKey:RiskID;constraint:OnDelete:CASCADE"`
}

// Signal is the persisted form of an early-warning signal.
type Signal struct {
	ID          uint   `gorm:"primaryKey"`
	RiskID      uint   `gorm:"index;not null"`
	Name        string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	Direction   string `gorm:"type:varchar(20);not null"`
	Strength    string `gorm:"type:varchar(20);not null"`
	ObservedAt  *time.Time
	CreatedAt   time.Time
}

// Assessment is an append-only score snapshot. Rows are never updated;
// history per risk is the source of truth for the "current" score.
type Assessment struct {
	ID                  uint `gorm:"primaryKey"`
	RiskID              uint `gorm:"index:idx_assessments_risk_assessed;not null"`
	EffectiveLikelihood float64
	Impact              int
	Confidence          float64
	RiskScore           float64
	SignalCount         int
	AssessedAt          time.Time `gorm:"index:idx_assessments_risk_assessed"`
}

// ToDomain converts the record into a validated domain value. Enum columns
// that fail to parse surface as database-category errors since they indicate
// corrupted rows, not caller mistakes.
func (r *Risk) ToDomain() (*risk.Risk, error) {
	category, err := risk.ParseCategory(r.Category)
	if err != nil {
		return nil, corruptEnumError("risks", r.ID, "category", r.Category)
	}
	horizon, err := risk.ParseTimeHorizon(r.TimeHorizon)
	if err != nil {
		return nil, corruptEnumError("risks", r.ID, "time_horizon", r.TimeHorizon)
	}
	return &risk.Risk{
		ID:             r.ID,
		Category:       category,
		Name:           r.Name,
		Description:    r.Description,
		BaseLikelihood: r.BaseLikelihood,
		Impact:         r.Impact,
		Confidence:     r.Confidence,
		TimeHorizon:    horizon,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}, nil
}

// RiskFromDomain converts a domain risk into its persisted form.
func RiskFromDomain(r *risk.Risk) *Risk {
	return &Risk{
		ID:             r.ID,
		Category:       r.Category.String(),
		Name:           r.Name,
		Description:    r.Description,
		BaseLikelihood: r.BaseLikelihood,
		Impact:         r.Impact,
		Confidence:     r.Confidence,
		TimeHorizon:    r.TimeHorizon.String(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ToDomain converts the record into a domain signal.
func (s *Signal) ToDomain() (*risk.Signal, error) {
	direction, err := risk.ParseSignalDirection(s.Direction)
	if err != nil {
		return nil, corruptEnumError("signals", s.ID, "direction", s.Direction)
	}
	strength, err := risk.ParseSignalStrength(s.Strength)
	if err != nil {
		return nil, corruptEnumError("signals", s.ID, "strength", s.Strength)
	}
	return &risk.Signal{
		ID:          s.ID,
		RiskID:      s.RiskID,
		Name:        s.Name,
		Description: s.Description,
		Direction:   direction,
		Strength:    strength,
		ObservedAt:  s.ObservedAt,
		CreatedAt:   s.CreatedAt,
	}, nil
}

// SignalFromDomain converts a domain signal into its persisted form.
func SignalFromDomain(s *risk.Signal) *Signal {
	return &Signal{
		ID:          s.ID,
		RiskID:      s.RiskID,
		Name:        s.Name,
		Description: s.Description,
		Direction:   s.Direction.String(),
		Strength:    s.Strength.String(),
		ObservedAt:  s.ObservedAt,
		CreatedAt:   s.CreatedAt,
	}
}

// ToDomain converts the record into a domain assessment.
func (a *Assessment) ToDomain() *risk.Assessment {
	return &risk.Assessment{
		ID:                  a.ID,
		RiskID:              a.RiskID,
		EffectiveLikelihood: a.EffectiveLikelihood,
		Impact:              a.Impact,
		Confidence:          a.Confidence,
		RiskScore:           a.RiskScore,
		SignalCount:         a.SignalCount,
		AssessedAt:          a.AssessedAt,
	}
}

// AssessmentFromDomain converts a domain assessment into its persisted form.
func AssessmentFromDomain(a *risk.Assessment) *Assessment {
	return &Assessment{
		ID:                  a.ID,
		RiskID:              a.RiskID,
		EffectiveLikelihood: a.EffectiveLikelihood,
		Impact:              a.Impact,
		Confidence:          a.Confidence,
		RiskScore:           a.RiskScore,
		SignalCount:         a.SignalCount,
		AssessedAt:          a.AssessedAt,
	}
}

func corruptEnumError(table string, id uint, column, value string) error {
	return errors.Newf("%s row %d has unrecognized %s value %q", table, id, column, value).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("table", table).
		Context("column", column).
		Build()
}
