// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"github.com/riskradar/riskradar-go/internal/conf"
	"github.com/riskradar/riskradar-go/internal/risk"
	"gorm.io/gorm"
)

// Interface abstracts the underlying database implementation and defines the
// persistence gateway the engine and API depend on.
//
// Lookups translate "record not found" into a nil result with a nil error;
// callers decide whether a missing record is fatal.
type Interface interface {
	Open() error
	Close() error

	CreateRisk(r *risk.Risk) (*risk.Risk, error)
	GetRisk(id uint) (*risk.Risk, error)
	GetAllRisks(category string, limit, offset int) ([]risk.Risk, error)
	UpdateRisk(id uint, updates map[string]any) (*risk.Risk, error)
	DeleteRisk(id uint) (bool, error)
	CountRisks() (int64, error)

	CreateSignal(s *risk.Signal) (*risk.Signal, error)
	GetSignal(id uint) (*risk.Signal, error)
	GetSignalsForRisk(riskID uint) ([]risk.Signal, error)
	UpdateSignal(id uint, updates map[string]any) (*risk.Signal, error)
	DeleteSignal(id uint) (bool, error)

	CreateAssessment(a *risk.Assessment) (*risk.Assessment, error)
	GetAssessmentsForRisk(riskID uint, limit int) ([]risk.Assessment, error)
	GetLatestAssessments(limit int) ([]risk.Assessment, error)

	GetRiskWithSignals(id uint) (*risk.RiskWithSignals, error)
	GetAllRisksWithSignals() ([]risk.RiskWithSignals, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a datastore instance for whichever backend the settings enable.
// SQLite wins when both are enabled; it is the default backend.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{Settings: settings}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{Settings: settings}
	default:
		return nil
	}
}

// Close releases the underlying database connection.
func (ds *DataStore) Close() error {
	if ds.DB == nil {
		return nil
	}
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// performAutoMigration creates or updates the schema for all tables.
func performAutoMigration(db *gorm.DB) error {
	return db.AutoMigrate(&Risk{}, &Signal{}, &Assessment{})
}
