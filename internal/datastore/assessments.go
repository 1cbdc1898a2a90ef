// assessments.go: append-only storage and queries for score snapshots
package datastore

import (
	"fmt"

	"github.com/riskradar/riskradar-go/internal/risk"
)

// CreateAssessment appends a new assessment row. Assessments are never
// updated or deleted individually; they only go away when their risk is
// cascade-deleted.
func (ds *DataStore) CreateAssessment(a *risk.Assessment) (*risk.Assessment, error) {
	record := AssessmentFromDomain(a)
	record.ID = 0

	if err := ds.DB.Create(record).Error; err != nil {
		return nil, databaseError("creating assessment", err)
	}
	return record.ToDomain(), nil
}

// GetAssessmentsForRisk retrieves the most recent assessments for a risk,
// newest first.
func (ds *DataStore) GetAssessmentsForRisk(riskID uint, limit int) ([]risk.Assessment, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	var records []Assessment
	err := ds.DB.Where("risk_id = ?", riskID).
		Order("assessed_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, databaseError(fmt.Sprintf("listing assessments for risk %d", riskID), err)
	}

	return assessmentsToDomain(records), nil
}

// GetLatestAssessments returns the single most recent assessment per risk,
// ordered by risk score descending. Equal timestamps are broken by the
// highest ID, which matches insertion order; timestamps carry sub-millisecond
// resolution so collisions are not observable in practice.
func (ds *DataStore) GetLatestAssessments(limit int) ([]risk.Assessment, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	var records []Assessment
	query := `
		SELECT * FROM assessments a
		WHERE a.id = (
			SELECT b.id FROM assessments b
			WHERE b.risk_id = a.risk_id
			ORDER BY b.assessed_at DESC, b.id DESC
			LIMIT 1
		)
		ORDER BY a.risk_score DESC
		LIMIT ?
	`
	if err := ds.DB.Raw(query, limit).Scan(&records).Error; err != nil {
		return nil, databaseError("listing latest assessments", err)
	}

	return assessmentsToDomain(records), nil
}

func assessmentsToDomain(records []Assessment) []risk.Assessment {
	assessments := make([]risk.Assessment, 0, len(records))
	for i := range records {
		assessments = append(assessments, *records[i].ToDomain())
	}
	return assessments
}
