// risks.go: CRUD and query operations for risks
package datastore

import (
	"fmt"
	"time"

	"github.com/riskradar/riskradar-go/internal/errors"
	"github.com/riskradar/riskradar-go/internal/risk"
	"gorm.io/gorm"
)

// DefaultQueryLimit caps list queries when the caller does not set a limit.
const DefaultQueryLimit = 100

// CreateRisk persists a new risk and returns it with its assigned identity.
func (ds *DataStore) CreateRisk(r *risk.Risk) (*risk.Risk, error) {
	record := RiskFromDomain(r)
	record.ID = 0
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := ds.DB.Create(record).Error; err != nil {
		return nil, databaseError("creating risk", err)
	}
	return record.ToDomain()
}

// GetRisk retrieves a risk by ID, returning nil without error when it does
// not exist.
func (ds *DataStore) GetRisk(id uint) (*risk.Risk, error) {
	var record Risk
	if err := ds.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, databaseError(fmt.Sprintf("getting risk %d", id), err)
	}
	return record.ToDomain()
}

// GetAllRisks retrieves risks, optionally filtered by category name.
func (ds *DataStore) GetAllRisks(category string, limit, offset int) ([]risk.Risk, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	query := ds.DB.Model(&Risk{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var records []Risk
	if err := query.Order("id").Limit(limit).Offset(offset).Find(&records).Error; err != nil {
		return nil, databaseError("listing risks", err)
	}

	risks := make([]risk.Risk, 0, len(records))
	for i := range records {
		domain, err := records[i].ToDomain()
		if err != nil {
			return nil, err
		}
		risks = append(risks, *domain)
	}
	return risks, nil
}

// UpdateRisk applies a partial update to a risk and returns the updated
// record, or nil when the risk does not exist. Keys in updates are column
// names; validation happens in the calling layer against the merged value.
func (ds *DataStore) UpdateRisk(id uint, updates map[string]any) (*risk.Risk, error) {
	var record Risk
	if err := ds.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, databaseError(fmt.Sprintf("getting risk %d", id), err)
	}

	updates["updated_at"] = time.Now()
	if err := ds.DB.Model(&record).Updates(updates).Error; err != nil {
		return nil, databaseError(fmt.Sprintf("updating risk %d", id), err)
	}

	if err := ds.DB.First(&record, id).Error; err != nil {
		return nil, databaseError(fmt.Sprintf("reloading risk %d", id), err)
	}
	return record.ToDomain()
}

// DeleteRisk removes a risk together with its signals and assessments.
// Returns false without error when the risk does not exist.
func (ds *DataStore) DeleteRisk(id uint) (bool, error) {
	var record Risk
	if err := ds.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, databaseError(fmt.Sprintf("getting risk %d", id), err)
	}

	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("risk_id = ?", id).Delete(&Signal{}).Error; err != nil {
			return fmt.Errorf("deleting signals for risk %d: %w", id, err)
		}
		if err := tx.Where("risk_id = ?", id).Delete(&Assessment{}).Error; err != nil {
			return fmt.Errorf("deleting assessments for risk %d: %w", id, err)
		}
		if err := tx.Delete(&Risk{}, id).Error; err != nil {
			return fmt.Errorf("deleting risk %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return false, databaseError("deleting risk", err)
	}
	return true, nil
}

// CountRisks returns the total number of risks.
func (ds *DataStore) CountRisks() (int64, error) {
	var count int64
	if err := ds.DB.Model(&Risk{}).Count(&count).Error; err != nil {
		return 0, databaseError("counting risks", err)
	}
	return count, nil
}

// GetRiskWithSignals retrieves a risk together with its current signals,
// returning nil without error when the risk does not exist.
func (ds *DataStore) GetRiskWithSignals(id uint) (*risk.RiskWithSignals, error) {
	var record Risk
	if err := ds.DB.Preload("Signals").First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, databaseError(fmt.Sprintf("getting risk %d with signals", id), err)
	}
	return riskWithSignalsToDomain(&record)
}

// GetAllRisksWithSignals retrieves every risk paired with its signals,
// the input for batch recomputation.
func (ds *DataStore) GetAllRisksWithSignals() ([]risk.RiskWithSignals, error) {
	var records []Risk
	if err := ds.DB.Preload("Signals").Order("id").Find(&records).Error; err != nil {
		return nil, databaseError("listing risks with signals", err)
	}

	pairs := make([]risk.RiskWithSignals, 0, len(records))
	for i := range records {
		pair, err := riskWithSignalsToDomain(&records[i])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, *pair)
	}
	return pairs, nil
}

func riskWithSignalsToDomain(record *Risk) (*risk.RiskWithSignals, error) {
	domainRisk, err := record.ToDomain()
	if err != nil {
		return nil, err
	}

	signals := make([]risk.Signal, 0, len(record.Signals))
	for i := range record.Signals {
		domainSignal, err := record.Signals[i].ToDomain()
		if err != nil {
			return nil, err
		}
		signals = append(signals, *domainSignal)
	}

	return &risk.RiskWithSignals{Risk: *domainRisk, Signals: signals}, nil
}

func databaseError(operation string, err error) error {
	return errors.New(fmt.Errorf("%s: %w", operation, err)).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation).
		Build()
}
