// analytics_test.go: tests for the dashboard endpoint
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskradar/riskradar-go/internal/risk"
)

func TestGetDashboard(t *testing.T) {
	e, mockDS, controller := setupTestEnvironment(t)

	risks := []risk.Risk{
		{ID: 1, Category: risk.CategoryCareer, Name: "Job loss", BaseLikelihood: 0.5, Impact: 3, Confidence: 0.8, TimeHorizon: risk.HorizonMonths},
		{ID: 2, Category: risk.CategoryHealth, Name: "Burnout", BaseLikelihood: 0.9, Impact: 5, Confidence: 1.0, TimeHorizon: risk.HorizonWeeks},
	}
	latest := []risk.Assessment{
		{ID: 20, RiskID: 2, EffectiveLikelihood: 1.0, Impact: 5, Confidence: 1.0, RiskScore: 5.0, AssessedAt: time.Now()},
		{ID: 10, RiskID: 1, EffectiveLikelihood: 0.5, Impact: 3, Confidence: 1.0, RiskScore: 1.5, AssessedAt: time.Now()},
	}

	mockDS.On("CountRisks").Return(int64(2), nil).Once()
	mockDS.On("GetLatestAssessments", 0).Return(latest, nil).Once()
	mockDS.On("GetAllRisks", "", 2, 0).Return(risks, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v2/analytics/dashboard", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, controller.GetDashboard(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Equal(t, int64(2), response.TotalRisks)
	require.Len(t, response.TopRisks, 2)

	// ordered by latest score descending, severity bands lower-bound inclusive
	assert.Equal(t, "Burnout", response.TopRisks[0].Name)
	assert.Equal(t, "high", response.TopRisks[0].Severity)
	assert.Equal(t, "Job loss", response.TopRisks[1].Name)
	assert.Equal(t, "medium", response.TopRisks[1].Severity, "1.5 is the inclusive medium boundary")

	assert.Equal(t, 1, response.SeverityCounts["high"])
	assert.Equal(t, 1, response.SeverityCounts["medium"])

	mockDS.AssertExpectations(t)
}

func TestGetDashboardServesFromCache(t *testing.T) {
	e, mockDS, controller := setupTestEnvironment(t)

	mockDS.On("CountRisks").Return(int64(0), nil).Once()
	mockDS.On("GetLatestAssessments", 0).Return([]risk.Assessment{}, nil).Once()
	mockDS.On("GetAllRisks", "", 0, 0).Return([]risk.Risk{}, nil).Once()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v2/analytics/dashboard", http.NoBody)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, controller.GetDashboard(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	// second request must not hit the datastore again
	mockDS.AssertExpectations(t)
	mockDS.AssertNumberOfCalls(t, "CountRisks", 1)
}

func TestDashboardCacheFlushedByMutation(t *testing.T) {
	e, mockDS, controller := setupTestEnvironment(t)

	mockDS.On("CountRisks").Return(int64(0), nil).Twice()
	mockDS.On("GetLatestAssessments", 0).Return([]risk.Assessment{}, nil).Twice()
	mockDS.On("GetAllRisks", "", 0, 0).Return([]risk.Risk{}, nil).Twice()
	mockDS.On("DeleteRisk", uint(1)).Return(true, nil).Once()

	dashboard := func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v2/analytics/dashboard", http.NoBody)
		rec := httptest.NewRecorder()
		require.NoError(t, controller.GetDashboard(e.NewContext(req, rec)))
	}

	dashboard()

	req := httptest.NewRequest(http.MethodDelete, "/api/v2/risks/1", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, controller.DeleteRisk(c))

	dashboard()

	mockDS.AssertNumberOfCalls(t, "CountRisks", 2)
}
