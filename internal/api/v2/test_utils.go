// test_utils.go: shared test utilities for API v2 tests.

package api

import (
	"log"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/riskradar/riskradar-go/internal/conf"
	"github.com/riskradar/riskradar-go/internal/risk"
)

// MockDataStore implements datastore.Interface for testing. It is shared
// across all test files in this package.
type MockDataStore struct {
	mock.Mock
}

func (m *MockDataStore) Open() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDataStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDataStore) CreateRisk(r *risk.Risk) (*risk.Risk, error) {
	args := m.Called(r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.Risk), args.Error(1)
}

func (m *MockDataStore) GetRisk(id uint) (*risk.Risk, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.Risk), args.Error(1)
}

func (m *MockDataStore) GetAllRisks(category string, limit, offset int) ([]risk.Risk, error) {
	args := m.Called(category, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]risk.Risk), args.Error(1)
}

func (m *MockDataStore) UpdateRisk(id uint, updates map[string]any) (*risk.Risk, error) {
	args := m.Called(id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.Risk), args.Error(1)
}

func (m *MockDataStore) DeleteRisk(id uint) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDataStore) CountRisks() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDataStore) CreateSignal(s *risk.Signal) (*risk.Signal, error) {
	args := m.Called(s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.Signal), args.Error(1)
}

func (m *MockDataStore) GetSignal(id uint) (*risk.Signal, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.Signal), args.Error(1)
}

func (m *MockDataStore) GetSignalsForRisk(riskID uint) ([]risk.Signal, error) {
	args := m.Called(riskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]risk.Signal), args.Error(1)
}

func (m *MockDataStore) UpdateSignal(id uint, updates map[string]any) (*risk.Signal, error) {
	args := m.Called(id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.Signal), args.Error(1)
}

func (m *MockDataStore) DeleteSignal(id uint) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDataStore) CreateAssessment(a *risk.Assessment) (*risk.Assessment, error) {
	args := m.Called(a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.Assessment), args.Error(1)
}

func (m *MockDataStore) GetAssessmentsForRisk(riskID uint, limit int) ([]risk.Assessment, error) {
	args := m.Called(riskID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]risk.Assessment), args.Error(1)
}

func (m *MockDataStore) GetLatestAssessments(limit int) ([]risk.Assessment, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]risk.Assessment), args.Error(1)
}

func (m *MockDataStore) GetRiskWithSignals(id uint) (*risk.RiskWithSignals, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*risk.RiskWithSignals), args.Error(1)
}

func (m *MockDataStore) GetAllRisksWithSignals() ([]risk.RiskWithSignals, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]risk.RiskWithSignals), args.Error(1)
}

// setupTestEnvironment creates an Echo instance, mock datastore and a fully
// routed controller for handler tests.
func setupTestEnvironment(t *testing.T) (*echo.Echo, *MockDataStore, *Controller) {
	t.Helper()

	e := echo.New()
	mockDS := new(MockDataStore)

	settings := &conf.Settings{}
	settings.WebServer.Debug = true

	logger := log.New(os.Stdout, "API TEST: ", log.LstdFlags)

	controller, err := New(e, mockDS, settings, logger, nil)
	if err != nil {
		t.Fatalf("Failed to create test API controller: %v", err)
	}
	t.Cleanup(controller.Shutdown)

	return e, mockDS, controller
}
