// import_test.go: tests for bulk upload and form input endpoints
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskradar/riskradar-go/internal/risk"
)

// uploadRequest builds a multipart request carrying the given file content
// under the "file" field.
func uploadRequest(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportRisksUpload(t *testing.T) {
	e, mockDS, controller := setupTestEnvironment(t)

	mockDS.On("CreateRisk", mock.MatchedBy(func(r *risk.Risk) bool {
		return r.Name == "Job loss" && r.Category == risk.CategoryCareer
	})).Return(persistedRisk(), nil)

	csv := "name,category,base_likelihood,impact,confidence,time_horizon\n" +
		"Job loss,career,0.5,3,0.8,months\n" +
		"Broken,career,0.5,,0.8,months\n"

	req := uploadRequest(t, "/api/v2/import/risks", "risks.csv", csv)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, controller.ImportRisks(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response DataUploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, 2, response.RecordsProcessed)
	assert.Equal(t, 1, response.RecordsCreated)
	require.Len(t, response.Errors, 1)
	assert.Contains(t, response.Errors[0], "row 2")

	mockDS.AssertExpectations(t)
}

func TestImportRisksErrorCap(t *testing.T) {
	e, _, controller := setupTestEnvironment(t)

	// 12 rows all missing impact; only the first 10 errors are reported
	var sb strings.Builder
	sb.WriteString("name,category,base_likelihood,confidence,time_horizon\n")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&sb, "Risk %d,career,0.5,0.8,months\n", i)
	}

	req := uploadRequest(t, "/api/v2/import/risks", "risks.csv", sb.String())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, controller.ImportRisks(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response DataUploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, 12, response.RecordsProcessed)
	assert.Equal(t, 0, response.RecordsCreated)
	assert.Len(t, response.Errors, 10)
}

func TestImportRisksUnsupportedFile(t *testing.T) {
	e, _, controller := setupTestEnvironment(t)

	req := uploadRequest(t, "/api/v2/import/risks", "risks.txt", "not tabular")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, controller.ImportRisks(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportRisksMissingFile(t *testing.T) {
	e, _, controller := setupTestEnvironment(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v2/import/risks", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, controller.ImportRisks(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportSignalsUpload(t *testing.T) {
	e, mockDS, controller := setupTestEnvironment(t)

	mockDS.On("GetRisk", uint(1)).Return(persistedRisk(), nil)
	mockDS.On("CreateSignal", mock.AnythingOfType("*risk.Signal")).Return(persistedSignal(), nil)

	csv := "name,risk_id,direction,strength\n" +
		"Hiring freeze,1,increase,strong\n"

	req := uploadRequest(t, "/api/v2/import/signals", "signals.csv", csv)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, controller.ImportSignals(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response DataUploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, 1, response.RecordsCreated)

	mockDS.AssertExpectations(t)
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCreateRiskFromForm(t *testing.T) {
	e, mockDS, controller := setupTestEnvironment(t)

	mockDS.On("CreateRisk", mock.MatchedBy(func(r *risk.Risk) bool {
		return r.Name == "Job loss" && r.Impact == 3 && r.TimeHorizon == risk.HorizonMonths
	})).Return(persistedRisk(), nil)

	req := formRequest("/api/v2/import/form/risk", url.Values{
		"name":            {"Job loss"},
		"category":        {"career"},
		"base_likelihood": {"0.5"},
		"impact":          {"3"},
		"confidence":      {"0.8"},
		"time_horizon":    {"months"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, controller.CreateRiskFromForm(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response FormDataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, uint(1), response.CreatedID)

	mockDS.AssertExpectations(t)
}

func TestCreateRiskFromFormValidation(t *testing.T) {
	e, mockDS, controller := setupTestEnvironment(t)

	req := formRequest("/api/v2/import/form/risk", url.Values{
		"name":            {"Job loss"},
		"category":        {"career"},
		"base_likelihood": {"1.5"}, // out of range
		"impact":          {"3"},
		"confidence":      {"0.8"},
		"time_horizon":    {"months"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, controller.CreateRiskFromForm(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	mockDS.AssertNotCalled(t, "CreateRisk", mock.Anything)
}

func TestCreateSignalFromForm(t *testing.T) {
	e, mockDS, controller := setupTestEnvironment(t)

	mockDS.On("GetRisk", uint(1)).Return(persistedRisk(), nil)
	mockDS.On("CreateSignal", mock.MatchedBy(func(s *risk.Signal) bool {
		return s.RiskID == 1 && s.Direction == risk.DirectionDecrease
	})).Return(persistedSignal(), nil)

	req := formRequest("/api/v2/import/form/signal", url.Values{
		"name":      {"New contract"},
		"risk_id":   {"1"},
		"direction": {"decrease"},
		"strength":  {"medium"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, controller.CreateSignalFromForm(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	mockDS.AssertExpectations(t)
}
