// import.go: bulk upload and form-based create endpoints
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/riskradar/riskradar-go/internal/importer"
	"github.com/riskradar/riskradar-go/internal/risk"
)

const defaultMaxReportedErrors = 10

// initImportRoutes registers bulk import and form input API endpoints
func (c *Controller) initImportRoutes() {
	c.Group.POST("/import/risks", c.ImportRisks)
	c.Group.POST("/import/signals", c.ImportSignals)
	c.Group.POST("/import/form/risk", c.CreateRiskFromForm)
	c.Group.POST("/import/form/signal", c.CreateSignalFromForm)
}

// DataUploadResponse reports the outcome of a bulk upload. Errors lists at
// most the configured number of row failures; the rest are only counted.
type DataUploadResponse struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message"`
	RecordsProcessed int      `json:"records_processed"`
	RecordsCreated   int      `json:"records_created"`
	Errors           []string `json:"errors"`
}

// FormDataResponse reports the outcome of a form-based create.
type FormDataResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	CreatedID uint   `json:"created_id,omitempty"`
}

// ImportRisks handles POST /api/v2/import/risks with a multipart file field
// named "file" containing CSV or Excel data.
func (c *Controller) ImportRisks(ctx echo.Context) error {
	rows, ok, err := c.readUploadRows(ctx)
	if !ok {
		return err
	}

	summary := c.importer.ImportRisks(rows)
	c.dashboardCache.Flush()
	return ctx.JSON(http.StatusOK, c.uploadResponse(summary, "risks"))
}

// ImportSignals handles POST /api/v2/import/signals.
func (c *Controller) ImportSignals(ctx echo.Context) error {
	rows, ok, err := c.readUploadRows(ctx)
	if !ok {
		return err
	}

	summary := c.importer.ImportSignals(rows)
	return ctx.JSON(http.StatusOK, c.uploadResponse(summary, "signals"))
}

// readUploadRows extracts and parses the uploaded file. On failure it writes
// the error response itself and returns ok=false.
func (c *Controller) readUploadRows(ctx echo.Context) (rows []importer.Row, ok bool, err error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, false, c.HandleError(ctx, err, "Missing file upload", http.StatusBadRequest)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, false, c.HandleError(ctx, err, "Failed to open uploaded file", http.StatusBadRequest)
	}
	defer file.Close()

	rows, err = importer.ReadRows(fileHeader.Filename, file)
	if err != nil {
		return nil, false, c.HandleError(ctx, err, "Failed to parse uploaded file", statusForError(err))
	}
	return rows, true, nil
}

func (c *Controller) uploadResponse(summary *importer.Summary, entity string) *DataUploadResponse {
	maxErrors := c.Settings.Import.MaxReportedErrors
	if maxErrors <= 0 {
		maxErrors = defaultMaxReportedErrors
	}
	reported := summary.Errors
	if len(reported) > maxErrors {
		reported = reported[:maxErrors]
	}
	if reported == nil {
		reported = []string{}
	}

	return &DataUploadResponse{
		Success:          summary.Created > 0,
		Message:          uploadMessage(summary, entity),
		RecordsProcessed: summary.Processed,
		RecordsCreated:   summary.Created,
		Errors:           reported,
	}
}

func uploadMessage(summary *importer.Summary, entity string) string {
	return "Processed " + strconv.Itoa(summary.Processed) + " rows, created " +
		strconv.Itoa(summary.Created) + " " + entity
}

// CreateRiskFromForm handles POST /api/v2/import/form/risk with URL-encoded
// or multipart form fields.
func (c *Controller) CreateRiskFromForm(ctx echo.Context) error {
	category, err := risk.ParseCategory(ctx.FormValue("category"))
	if err != nil {
		return c.HandleError(ctx, err, "Validation failed", http.StatusBadRequest)
	}
	horizon, err := risk.ParseTimeHorizon(ctx.FormValue("time_horizon"))
	if err != nil {
		return c.HandleError(ctx, err, "Validation failed", http.StatusBadRequest)
	}
	likelihood, err := strconv.ParseFloat(ctx.FormValue("base_likelihood"), 64)
	if err != nil {
		return c.HandleError(ctx, err, "base_likelihood must be a number", http.StatusBadRequest)
	}
	impact, err := strconv.Atoi(ctx.FormValue("impact"))
	if err != nil {
		return c.HandleError(ctx, err, "impact must be an integer", http.StatusBadRequest)
	}
	confidence, err := strconv.ParseFloat(ctx.FormValue("confidence"), 64)
	if err != nil {
		return c.HandleError(ctx, err, "confidence must be a number", http.StatusBadRequest)
	}

	r := &risk.Risk{
		Category:       category,
		Name:           ctx.FormValue("name"),
		Description:    ctx.FormValue("description"),
		BaseLikelihood: likelihood,
		Impact:         impact,
		Confidence:     confidence,
		TimeHorizon:    horizon,
	}
	if err := r.Validate(); err != nil {
		return c.HandleError(ctx, err, "Validation failed", http.StatusBadRequest)
	}

	created, err := c.DS.CreateRisk(r)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to create risk", http.StatusInternalServerError)
	}

	c.dashboardCache.Flush()
	return ctx.JSON(http.StatusCreated, &FormDataResponse{
		Success:   true,
		Message:   "Risk created successfully",
		CreatedID: created.ID,
	})
}

// CreateSignalFromForm handles POST /api/v2/import/form/signal.
func (c *Controller) CreateSignalFromForm(ctx echo.Context) error {
	riskID, err := strconv.ParseUint(ctx.FormValue("risk_id"), 10, 32)
	if err != nil {
		return c.HandleError(ctx, err, "risk_id must be an integer", http.StatusBadRequest)
	}
	direction, err := risk.ParseSignalDirection(ctx.FormValue("direction"))
	if err != nil {
		return c.HandleError(ctx, err, "Validation failed", http.StatusBadRequest)
	}
	strength, err := risk.ParseSignalStrength(ctx.FormValue("strength"))
	if err != nil {
		return c.HandleError(ctx, err, "Validation failed", http.StatusBadRequest)
	}

	s := &risk.Signal{
		RiskID:      uint(riskID),
		Name:        ctx.FormValue("name"),
		Description: ctx.FormValue("description"),
		Direction:   direction,
		Strength:    strength,
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

	created, err := c.DS.CreateSignal(s)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to create signal", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusCreated, &FormDataResponse{
		Success:   true,
		Message:   "Signal created successfully",
		CreatedID: created.ID,
	})
}
