// signals.go: signal CRUD endpoints
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/riskradar/riskradar-go/internal/risk"
)

// initSignalRoutes registers all signal-related API endpoints
func (c *Controller) initSignalRoutes() {
	c.Group.POST("/signals", c.CreateSignal)
	c.Group.GET("/signals/:id", c.GetSignal)
	c.Group.PUT("/signals/:id", c.UpdateSignal)
	c.Group.DELETE("/signals/:id", c.DeleteSignal)
}

// UpdateSignalRequest is a partial update; absent fields keep their value.
type UpdateSignalRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Direction   *risk.SignalDirection `json:"direction"`
	Strength    *risk.SignalStrength  `json:"strength"`
}

// CreateSignal handles POST /api/v2/signals. The owning risk must exist.
func (c *Controller) CreateSignal(ctx echo.Context) error {
	var s risk.Signal
	if err := ctx.Bind(&s); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := s.Validate(); err != nil {
		return c.HandleError(ctx, err, "Validation failed", http.StatusBadRequest)
	}

	owner, err := c.DS.GetRisk(s.RiskID)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get risk", http.StatusInternalServerError)
	}
	if owner == nil {
		return c.HandleError(ctx, nil, "Risk not found", http.StatusNotFound)
	}

	created, err := c.DS.CreateSignal(&s)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to create signal", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusCreated, created)
}

// GetSignal handles GET /api/v2/signals/:id
func (c *Controller) GetSignal(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid signal ID", http.StatusBadRequest)
	}

	s, err := c.DS.GetSignal(id)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get signal", http.StatusInternalServerError)
	}
	if s == nil {
		return c.HandleError(ctx, nil, "Signal not found", http.StatusNotFound)
	}

	return ctx.JSON(http.StatusOK, s)
}

// UpdateSignal handles PUT /api/v2/signals/:id
func (c *Controller) UpdateSignal(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid signal ID", http.StatusBadRequest)
	}

	var req UpdateSignalRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}

	existing, err := c.DS.GetSignal(id)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get signal", http.StatusInternalServerError)
	}
	if existing == nil {
		return c.HandleError(ctx, nil, "Signal not found", http.StatusNotFound)
	}

	updates := signalUpdates(existing, &req)
	if len(updates) == 0 {
		return c.HandleError(ctx, nil, "No fields to update", http.StatusBadRequest)
	}
	if err := existing.Validate(); err != nil {
		return c.HandleError(ctx, err, "Validation failed", http.StatusBadRequest)
	}

	updated, err := c.DS.UpdateSignal(id, updates)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to update signal", http.StatusInternalServerError)
	}
	if updated == nil {
		return c.HandleError(ctx, nil, "Signal not found", http.StatusNotFound)
	}

	return ctx.JSON(http.StatusOK, updated)
}

func signalUpdates(existing *risk.Signal, req *UpdateSignalRequest) map[string]any {
	updates := make(map[string]any)
	if req.Name != nil {
		existing.Name = *req.Name
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
		updates["description"] = *req.Description
	}
	if req.Direction != nil {
		existing.Direction = *req.Direction
		updates["direction"] = req.Direction.String()
	}
	if req.Strength != nil {
		existing.Strength = *req.Strength
		updates["strength"] = req.Strength.String()
	}
	return updates
}

// DeleteSignal handles DELETE /api/v2/signals/:id. The owning risk keeps its
// existing assessments; callers recompute when they want the score to reflect
// the removal.
func (c *Controller) DeleteSignal(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid signal ID", http.StatusBadRequest)
	}

	deleted, err := c.DS.DeleteSignal(id)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to delete signal", http.StatusInternalServerError)
	}
	if !deleted {
		return c.HandleError(ctx, nil, "Signal not found", http.StatusNotFound)
	}

	return ctx.NoContent(http.StatusNoContent)
}
