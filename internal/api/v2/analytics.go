// analytics.go: dashboard aggregation endpoint
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/riskradar/riskradar-go/internal/risk"
	"github.com/riskradar/riskradar-go/internal/scoring"
)

const dashboardCacheKey = "dashboard:summary"

// initAnalyticsRoutes registers analytics-related API endpoints
func (c *Controller) initAnalyticsRoutes() {
	c.Group.GET("/analytics/dashboard", c.GetDashboard)
}

// DashboardEntry is one risk's latest assessment annotated with its
// severity band.
type DashboardEntry struct {
	RiskID              uint          `json:"risk_id"`
	Name                string        `json:"name"`
	Category            risk.Category `json:"category"`
	EffectiveLikelihood float64       `json:"effective_likelihood"`
	RiskScore           float64       `json:"risk_score"`
	Severity            string        `json:"severity"`
	AssessedAt          time.Time     `json:"assessed_at"`
}

// DashboardResponse summarizes the current risk landscape. TopRisks is
// ordered by latest risk score descending.
type DashboardResponse struct {
	TotalRisks     int64            `json:"total_risks"`
	SeverityCounts map[string]int   `json:"severity_counts"`
	TopRisks       []DashboardEntry `json:"top_risks"`
	GeneratedAt    time.Time        `json:"generated_at"`
}

// GetDashboard handles GET /api/v2/analytics/dashboard. Results are cached
// briefly; any mutation of risks or assessments flushes the cache.
func (c *Controller) GetDashboard(ctx echo.Context) error {
	if cached, found := c.dashboardCache.Get(dashboardCacheKey); found {
		if response, ok := cached.(*DashboardResponse); ok {
			return ctx.JSON(http.StatusOK, response)
		}
	}

	total, err := c.DS.CountRisks()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to count risks", http.StatusInternalServerError)
	}

	latest, err := c.DS.GetLatestAssessments(queryInt(ctx, "limit", 0))
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list latest assessments", http.StatusInternalServerError)
	}

	risks, err := c.DS.GetAllRisks("", int(total), 0)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list risks", http.StatusInternalServerError)
	}
	risksByID := make(map[uint]*risk.Risk, len(risks))
	for i := range risks {
		risksByID[risks[i].ID] = &risks[i]
	}

	response := &DashboardResponse{
		TotalRisks:     total,
		SeverityCounts: make(map[string]int),
		TopRisks:       make([]DashboardEntry, 0, len(latest)),
		GeneratedAt:    time.Now(),
	}

	for i := range latest {
		a := &latest[i]
		severity := scoring.SeverityForScore(a.RiskScore).String()
		response.SeverityCounts[severity]++

		entry := DashboardEntry{
			RiskID:              a.RiskID,
			EffectiveLikelihood: a.EffectiveLikelihood,
			RiskScore:           a.RiskScore,
			Severity:            severity,
			AssessedAt:          a.AssessedAt,
		}
		if r, ok := risksByID[a.RiskID]; ok {
			entry.Name = r.Name
			entry.Category = r.Category
		}
		response.TopRisks = append(response.TopRisks, entry)
	}

	c.dashboardCache.SetDefault(dashboardCacheKey, response)
	return ctx.JSON(http.StatusOK, response)
}
