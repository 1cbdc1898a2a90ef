// Package importer ingests risks and signals from tabular files. Column
// names are resolved through ordered synonym lists so exports from other
// tools map onto the domain model without manual renaming.
package importer

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/riskradar/riskradar-go/internal/datastore"
	"github.com/riskradar/riskradar-go/internal/logging"
	"github.com/riskradar/riskradar-go/internal/observability/metrics"
	"github.com/riskradar/riskradar-go/internal/risk"
)

// Accepted column-name synonyms per target field, tried in priority order.
var (
	riskNameColumns       = []string{"name", "risk_name", "title", "risk"}
	riskCategoryColumns   = []string{"category", "risk_category", "type"}
	riskLikelihoodColumns = []string{"base_likelihood", "likelihood", "probability"}
	riskImpactColumns     = []string{"impact", "severity"}
	riskConfidenceColumns = []string{"confidence", "certainty"}
	riskHorizonColumns    = []string{"time_horizon", "horizon", "timeframe"}

	signalNameColumns      = []string{"name", "signal_name", "title", "signal"}
	signalRiskIDColumns    = []string{"risk_id", "riskid", "risk"}
	signalDirectionColumns = []string{"direction", "effect", "impact_direction"}
	signalStrengthColumns  = []string{"strength", "intensity", "magnitude"}
)

// Summary reports the outcome of one import batch. Processed counts every
// data row including rejected ones; Created counts only persisted records.
// Errors holds one message per failed row, keyed by 1-based row index;
// callers decide how many of them to surface.
type Summary struct {
	Processed int
	Created   int
	Errors    []string
}

// Importer turns cleaned rows into persisted risks and signals. Row
// failures are collected, never fatal to the batch.
type Importer struct {
	ds      datastore.Interface
	metrics *metrics.ImportMetrics
	log     *slog.Logger
}

// New creates an importer backed by the given datastore. Metrics may be nil.
func New(ds datastore.Interface, importMetrics *metrics.ImportMetrics) *Importer {
	log := logging.ForService("importer")
	if log == nil {
		log = slog.Default()
	}
	return &Importer{
		ds:      ds,
		metrics: importMetrics,
		log:     log,
	}
}

// ImportRisks creates one risk per accepted row.
func (im *Importer) ImportRisks(rows []Row) *Summary {
	batchID := uuid.NewString()
	start := time.Now()
	summary := &Summary{}

	for idx, row := range rows {
		summary.Processed++

		r, err := cleanRisk(row)
		if err != nil {
			summary.Errors = append(summary.Errors, rowError(idx, err))
			im.recordRow("risk", "rejected")
			continue
		}

		if _, err := im.ds.CreateRisk(r); err != nil {
			summary.Errors = append(summary.Errors, rowError(idx, err))
			im.recordRow("risk", "rejected")
			continue
		}
		summary.Created++
		im.recordRow("risk", "created")
	}

	im.finishBatch("risk", batchID, summary, start)
	return summary
}

// ImportSignals creates one signal per accepted row. Rows referencing a
// nonexistent risk are rejected.
func (im *Importer) ImportSignals(rows []Row) *Summary {
	batchID := uuid.NewString()
	start := time.Now()
	summary := &Summary{}

	for idx, row := range rows {
		summary.Processed++

		s, err := cleanSignal(row)
		if err != nil {
			summary.Errors = append(summary.Errors, rowError(idx, err))
			im.recordRow("signal", "rejected")
			continue
		}

		owner, err := im.ds.GetRisk(s.RiskID)
		if err != nil {
			summary.Errors = append(summary.Errors, rowError(idx, err))
			im.recordRow("signal", "rejected")
			continue
		}
		if owner == nil {
			summary.Errors = append(summary.Errors, rowError(idx, fmt.Errorf("risk %d does not exist", s.RiskID)))
			im.recordRow("signal", "rejected")
			continue
		}

		if _, err := im.ds.CreateSignal(s); err != nil {
			summary.Errors = append(summary.Errors, rowError(idx, err))
			im.recordRow("signal", "rejected")
			continue
		}
		summary.Created++
		im.recordRow("signal", "created")
	}

	im.finishBatch("signal", batchID, summary, start)
	return summary
}

// cleanRisk resolves the row's columns against the risk synonym lists and
// validates the result through the domain model.
func cleanRisk(row Row) (*risk.Risk, error) {
	name, ok := lookup(row, riskNameColumns)
	if !ok {
		return nil, missingField("name")
	}
	categoryValue, ok := lookup(row, riskCategoryColumns)
	if !ok {
		return nil, missingField("category")
	}
	likelihoodValue, ok := lookup(row, riskLikelihoodColumns)
	if !ok {
		return nil, missingField("base_likelihood")
	}
	impactValue, ok := lookup(row, riskImpactColumns)
	if !ok {
		return nil, missingField("impact")
	}
	confidenceValue, ok := lookup(row, riskConfidenceColumns)
	if !ok {
		return nil, missingField("confidence")
	}
	horizonValue, ok := lookup(row, riskHorizonColumns)
	if !ok {
		return nil, missingField("time_horizon")
	}

	category, err := risk.ParseCategory(categoryValue)
	if err != nil {
		return nil, err
	}
	horizon, err := risk.ParseTimeHorizon(horizonValue)
	if err != nil {
		return nil, err
	}
	likelihood, err := parseFloat("base_likelihood", likelihoodValue)
	if err != nil {
		return nil, err
	}
	impact, err := parseInt("impact", impactValue)
	if err != nil {
		return nil, err
	}
	confidence, err := parseFloat("confidence", confidenceValue)
	if err != nil {
		return nil, err
	}

	r := &risk.Risk{
		Category:       category,
		Name:           name,
		Description:    row["description"],
		BaseLikelihood: likelihood,
		Impact:         impact,
		Confidence:     confidence,
		TimeHorizon:    horizon,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// cleanSignal resolves the row's columns against the signal synonym lists
// and validates the result through the domain model.
func cleanSignal(row Row) (*risk.Signal, error) {
	name, ok := lookup(row, signalNameColumns)
	if !ok {
		return nil, missingField("name")
	}
	riskIDValue, ok := lookup(row, signalRiskIDColumns)
	if !ok {
		return nil, missingField("risk_id")
	}
	directionValue, ok := lookup(row, signalDirectionColumns)
	if !ok {
		return nil, missingField("direction")
	}
	strengthValue, ok := lookup(row, signalStrengthColumns)
	if !ok {
		return nil, missingField("strength")
	}

	riskID, err := parseInt("risk_id", riskIDValue)
	if err != nil {
		return nil, err
	}
	if riskID <= 0 {
		return nil, fmt.Errorf("risk_id must be positive, got %d", riskID)
	}
	direction, err := risk.ParseSignalDirection(directionValue)
	if err != nil {
		return nil, err
	}
	strength, err := risk.ParseSignalStrength(strengthValue)
	if err != nil {
		return nil, err
	}

	s := &risk.Signal{
		RiskID:      uint(riskID),
		Name:        name,
		Description: row["description"],
		Direction:   direction,
		Strength:    strength,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// lookup returns the first non-empty value among the candidate columns.
func lookup(row Row, candidates []string) (string, bool) {
	for _, name := range candidates {
		if value, ok := row[name]; ok && value != "" {
			return value, true
		}
	}
	return "", false
}

func parseFloat(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", field, value)
	}
	return f, nil
}

// parseInt tolerates whole-number float formatting ("3.0") since spreadsheet
// exports often render integer cells that way.
func parseInt(field, value string) (int, error) {
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%s: %q is not an integer", field, value)
	}
	return int(f), nil
}

func missingField(field string) error {
	return fmt.Errorf("missing required field %q", field)
}

// rowError formats a per-row failure with the row's 1-based data index.
func rowError(idx int, err error) string {
	return fmt.Sprintf("row %d: %v", idx+1, err)
}

func (im *Importer) recordRow(entity, outcome string) {
	if im.metrics != nil {
		im.metrics.RecordRow(entity, outcome)
	}
}

func (im *Importer) finishBatch(entity, batchID string, summary *Summary, start time.Time) {
	if im.metrics != nil {
		im.metrics.RecordBatch(entity, time.Since(start).Seconds())
	}
	im.log.Info("import batch finished",
		"batch_id", batchID,
		"entity", entity,
		"processed", summary.Processed,
		"created", summary.Created,
		"failed", len(summary.Errors),
		"duration_ms", time.Since(start).Milliseconds())
}
