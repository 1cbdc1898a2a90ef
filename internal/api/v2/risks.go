// risks.go: risk CRUD, assessment history and recompute endpoints
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/riskradar/riskradar-go/internal/risk"
	"github.com/riskradar/riskradar-go/internal/scoring"
)

// initRiskRoutes registers all risk-related API endpoints
func (c *Controller) initRiskRoutes() {
	c.Group.POST("/risks", c.CreateRisk)
	c.Group.GET("/risks", c.GetRisks)
	c.Group.POST("/risks/recompute", c.RecomputeAllRisks)
	c.Group.GET("/risks/:id", c.GetRisk)
	c.Group.PUT("/risks/:id", c.UpdateRisk)
	c.Group.DELETE("/risks/:id", c.DeleteRisk)
	c.Group.GET("/risks/:id/signals", c.GetRiskWithSignals)
	c.Group.GET("/risks/:id/assessments", c.GetRiskAssessments)
	c.Group.POST("/risks/:id/recompute", c.RecomputeRisk)
}

// UpdateRiskRequest is a partial update; absent fields keep their value.
type UpdateRiskRequest struct {
	Category       *risk.Category    `json:"category"`
	Name           *string           `json:"name"`
	Description    *string           `json:"description"`
	BaseLikelihood *float64          `json:"base_likelihood"`
	Impact         *int              `json:"impact"`
	Confidence     *float64          `json:"confidence"`
	TimeHorizon    *risk.TimeHorizon `json:"time_horizon"`
}

// RecomputeResponse wraps the assessments produced by a batch recompute.
type RecomputeResponse struct {
	Assessments []risk.Assessment `json:"assessments"`
	Count       int               `json:"count"`
}

// CreateRisk handles POST /api/v2/risks
func (c *Controller) CreateRisk(ctx echo.Context) error {
	var r risk.Risk
	if err := ctx.Bind(&r); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := r.Validate(); err != nil {
		return c.HandleError(ctx, err, "Validation failed", http.StatusBadRequest)
	}

	created, err := c.DS.CreateRisk(&r)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to create risk", http.StatusInternalServerError)
	}

	c.dashboardCache.Flush()
	return ctx.JSON(http.StatusCreated, created)
}

// GetRisks handles GET /api/v2/risks with optional category, limit and
// offset query parameters.
func (c *Controller) GetRisks(ctx echo.Context) error {
	limit := queryInt(ctx, "limit", 0)
	offset := queryInt(ctx, "offset", 0)

	risks, err := c.DS.GetAllRisks(ctx.QueryParam("category"), limit, offset)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list risks", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, risks)
}

// GetRisk handles GET /api/v2/risks/:id
func (c *Controller) GetRisk(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid risk ID", http.StatusBadRequest)
	}

	r, err := c.DS.GetRisk(id)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get risk", http.StatusInternalServerError)
	}
	if r == nil {
		return c.HandleError(ctx, nil, "Risk not found", http.StatusNotFound)
	}

	return ctx.JSON(http.StatusOK, r)
}

// UpdateRisk handles PUT /api/v2/risks/:id. The merged result is validated
// against the domain model before anything is written.
func (c *Controller) UpdateRisk(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid risk ID", http.StatusBadRequest)
	}

	var req UpdateRiskRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	existing, err := c.DS.GetRisk(id)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get risk", http.StatusInternalServerError)
	}
	if existing == nil {
		return c.HandleError(ctx, nil, "Risk not found", http.StatusNotFound)
	}

	updates := riskUpdates(existing, &req)
	if len(updates) == 0 {
		return c.HandleError(ctx, nil, "No fields to update", http.StatusBadRequest)
	}
	if err := existing.Validate(); err != nil {
		return c.HandleError(ctx, err, "Validation failed", http.StatusBadRequest)
	}

	updated, err := c.DS.UpdateRisk(id, updates)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to update risk", http.StatusInternalServerError)
	}
	if updated == nil {
		return c.HandleError(ctx, nil, "Risk not found", http.StatusNotFound)
	}

	c.dashboardCache.Flush()
	return ctx.JSON(http.StatusOK, updated)
}

// riskUpdates applies the request onto the existing risk in place and
// returns the column map for the datastore.
func riskUpdates(existing *risk.Risk, req *UpdateRiskRequest) map[string]any {
	updates := make(map[string]any)
	if req.Category != nil {
		existing.Category = *req.Category
		updates["category"] = req.Category.String()
	}
	if req.Name != nil {
		existing.Name = *req.Name
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
		updates["description"] = *req.Description
	}
	if req.BaseLikelihood != nil {
		existing.BaseLikelihood = *req.BaseLikelihood
		updates["base_likelihood"] = *req.BaseLikelihood
	}
	if req.Impact != nil {
		existing.Impact = *req.Impact
		updates["impact"] = *req.Impact
	}
	if req.Confidence != nil {
		existing.Confidence = *req.Confidence
		updates["confidence"] = *req.Confidence
	}
	if req.TimeHorizon != nil {
		existing.TimeHorizon = *req.TimeHorizon
		updates["time_horizon"] = req.TimeHorizon.String()
	}
	return updates
}

// DeleteRisk handles DELETE /api/v2/risks/:id, removing the risk together
// with its signals and assessments.
func (c *Controller) DeleteRisk(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid risk ID", http.StatusBadRequest)
	}

	deleted, err := c.DS.DeleteRisk(id)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to delete risk", http.StatusInternalServerError)
	}
	if !deleted {
		return c.HandleError(ctx, nil, "Risk not found", http.StatusNotFound)
	}

	c.dashboardCache.Flush()
	return ctx.NoContent(http.StatusNoContent)
}

// GetRiskWithSignals handles GET /api/v2/risks/:id/signals
func (c *Controller) GetRiskWithSignals(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid risk ID", http.StatusBadRequest)
	}

	pair, err := c.DS.GetRiskWithSignals(id)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get risk with signals", http.StatusInternalServerError)
	}
	if pair == nil {
		return c.HandleError(ctx, nil, "Risk not found", http.StatusNotFound)
	}

	return ctx.JSON(http.StatusOK, pair)
}

// GetRiskAssessments handles GET /api/v2/risks/:id/assessments, returning
// the assessment history newest first.
func (c *Controller) GetRiskAssessments(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid risk ID", http.StatusBadRequest)
	}

	r, err := c.DS.GetRisk(id)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get risk", http.StatusInternalServerError)
	}
	if r == nil {
		return c.HandleError(ctx, nil, "Risk not found", http.StatusNotFound)
	}

	assessments, err := c.DS.GetAssessmentsForRisk(id, queryInt(ctx, "limit", 0))
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list assessments", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, assessments)
}

// RecomputeRisk handles POST /api/v2/risks/:id/recompute. It reads the risk
// and its current signals, computes a fresh assessment and persists it.
// There is no per-risk locking; concurrent recomputes each persist a valid
// snapshot ordered only by assessed_at.
func (c *Controller) RecomputeRisk(ctx echo.Context) error {
	start := time.Now()

	id, err := pathID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid risk ID", http.StatusBadRequest)
	}

	pair, err := c.DS.GetRiskWithSignals(id)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get risk with signals", http.StatusInternalServerError)
	}
	if pair == nil {
		return c.HandleError(ctx, nil, "Risk not found", http.StatusNotFound)
	}

	assessment, err := scoring.Assess(&pair.Risk, pair.Signals)
	if err != nil {
		c.recordAssessmentError("single")
		return c.HandleError(ctx, err, "Failed to assess risk", http.StatusInternalServerError)
	}

	created, err := c.DS.CreateAssessment(assessment)
	if err != nil {
		c.recordAssessmentError("single")
		return c.HandleError(ctx, err, "Failed to persist assessment", http.StatusInternalServerError)
	}

	c.recordAssessment("single", created.RiskScore, start)
	c.dashboardCache.Flush()
	return ctx.JSON(http.StatusCreated, created)
}

// RecomputeAllRisks handles POST /api/v2/risks/recompute. Risks are
// processed sequentially in ID order; a mid-batch failure leaves earlier
// assessments persisted.
func (c *Controller) RecomputeAllRisks(ctx echo.Context) error {
	start := time.Now()

	pairs, err := c.DS.GetAllRisksWithSignals()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to list risks with signals", http.StatusInternalServerError)
	}

	created := make([]risk.Assessment, 0, len(pairs))
	for i := range pairs {
		assessment, err := scoring.Assess(&pairs[i].Risk, pairs[i].Signals)
		if err != nil {
			c.recordAssessmentError("batch")
			return c.HandleError(ctx, err, "Failed to assess risk", http.StatusInternalServerError)
		}

		persisted, err := c.DS.CreateAssessment(assessment)
		if err != nil {
			c.recordAssessmentError("batch")
			return c.HandleError(ctx, err, "Failed to persist assessment", http.StatusInternalServerError)
		}
		c.recordAssessment("batch", persisted.RiskScore, start)
		created = append(created, *persisted)
	}

	c.dashboardCache.Flush()
	return ctx.JSON(http.StatusCreated, &RecomputeResponse{Assessments: created, Count: len(created)})
}

func (c *Controller) recordAssessment(trigger string, score float64, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.Engine.RecordAssessment(trigger, score)
	c.metrics.Engine.RecordRecomputeDuration(trigger, time.Since(start).Seconds())
}

func (c *Controller) recordAssessmentError(trigger string) {
	if c.metrics != nil {
		c.metrics.Engine.RecordAssessmentError(trigger)
	}
}

// pathID parses the :id path parameter.
func pathID(ctx echo.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// queryInt parses an optional integer query parameter.
func queryInt(ctx echo.Context, name string, fallback int) int {
	value := ctx.QueryParam(name)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
