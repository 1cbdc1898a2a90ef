// signals.go: CRUD operations for early-warning signals
package datastore

import (
	"fmt"
	"time"

	"github.com/riskradar/riskradar-go/internal/errors"
	"github.com/riskradar/riskradar-go/internal/risk"
	"gorm.io/gorm"
)

// CreateSignal persists a new signal. The owning risk must already exist;
// callers check that before creating.
func (ds *DataStore) CreateSignal(s *risk.Signal) (*risk.Signal, error) {
	record := SignalFromDomain(s)
	record.ID = 0
	record.CreatedAt = time.Now()

	if err := ds.DB.Create(record).Error; err != nil {
		return nil, databaseError("creating signal", err)
	}
	return record.ToDomain()
}

// GetSignal retrieves a signal by ID, returning nil without error when it
// does not exist.
func (ds *DataStore) GetSignal(id uint) (*risk.Signal, error) {
	var record Signal
	if err := ds.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, databaseError(fmt.Sprintf("getting signal %d", id), err)
	}
	return record.ToDomain()
}

// GetSignalsForRisk retrieves all signals linked to a risk.
func (ds *DataStore) GetSignalsForRisk(riskID uint) ([]risk.Signal, error) {
	var records []Signal
	if err := ds.DB.Where("risk_id = ?", riskID).Order("id").Find(&records).Error; err != nil {
		return nil, databaseError(fmt.Sprintf("listing signals for risk %d", riskID), err)
	}

	signals := make([]risk.Signal, 0, len(records))
	for i := range records {
		domain, err := records[i].ToDomain()
		if err != nil {
			return nil, err
		}
		signals = append(signals, *domain)
	}
	return signals, nil
}

// UpdateSignal applies a partial update to a signal and returns the updated
// record, or nil when the signal does not exist.
func (ds *DataStore) UpdateSignal(id uint, updates map[string]any) (*risk.Signal, error) {
	var record Signal
	if err := ds.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, databaseError(fmt.Sprintf("getting signal %d", id), err)
	}

	if err := ds.DB.Model(&record).Updates(updates).Error; err != nil {
		return nil, databaseError(fmt.Sprintf("updating signal %d", id), err)
	}

	if err := ds.DB.First(&record, id).Error; err != nil {
		return nil, databaseError(fmt.Sprintf("reloading signal %d", id), err)
	}
	return record.ToDomain()
}

// DeleteSignal removes a single signal, leaving the owning risk and its other
// signals untouched. Returns false without error when the signal does not
// exist. The caller is responsible for triggering recomputation of the risk's
// assessment afterwards.
func (ds *DataStore) DeleteSignal(id uint) (bool, error) {
	result := ds.DB.Delete(&Signal{}, id)
	if result.Error != nil {
		return false, databaseError(fmt.Sprintf("deleting signal %d", id), result.Error)
	}
	return result.RowsAffected > 0, nil
}
