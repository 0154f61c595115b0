package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeops/lifeops-api/internal/generation"
	"github.com/lifeops/lifeops-api/internal/store"
)

// stubGenerator answers every request with a fixed respond function.
type stubGenerator struct {
	respond func(generation.Request) (string, error)
}

func (s *stubGenerator) Generate(_ context.Context, req generation.Request) (string, error) {
	return s.respond(req)
}

func workingGenerator() *stubGenerator {
	return &stubGenerator{respond: func(req generation.Request) (string, error) {
		return "Generated analysis for " + req.Persona.Role, nil
	}}
}

func failingGenerator() *stubGenerator {
	return &stubGenerator{respond: func(generation.Request) (string, error) {
		return "", generation.ErrGenerationFailed
	}}
}

func postAnalysis(t *testing.T, handler *AnalysisHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Analyze(rec, req)
	return rec
}

const validBody = `{
	"stress_level": 8,
	"sleep_hours": 5,
	"exam_date": "2027-06-20",
	"monthly_budget": 1200,
	"current_expenses": 1100,
	"problem": "exam panic on a tight budget"
}`

func TestAnalyzeReturnsCompleteReport(t *testing.T) {
	t.Parallel()

	handler := NewAnalysisHandler(workingGenerator(), store.NewMemoryReportStore(), nil)
	rec := postAnalysis(t, handler, validBody)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.False(t, resp.Fallback)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.Health)
	assert.NotEmpty(t, resp.Finance)
	assert.NotEmpty(t, resp.Study)
	assert.NotEmpty(t, resp.Coordination)
	assert.NotEmpty(t, resp.CrossDomainInsight)
}

func TestAnalyzeStoresReport(t *testing.T) {
	t.Parallel()

	reports := store.NewMemoryReportStore()
	handler := NewAnalysisHandler(workingGenerator(), reports, nil)
	rec := postAnalysis(t, handler, validBody)

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	stored, err := reports.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, resp.Health, stored.Health)
}

func TestAnalyzeFallsBackOnBackendFailure(t *testing.T) {
	t.Parallel()

	handler := NewAnalysisHandler(failingGenerator(), store.NewMemoryReportStore(), nil)
	rec := postAnalysis(t, handler, validBody)

	require.Equal(t, http.StatusOK, rec.Code,
		"a degraded backend must still produce a report")

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Fallback)
	assert.Contains(t, resp.Finance, "$240")
	assert.Contains(t, resp.CrossDomainInsight, "stress is high (8/10)")
}

func TestAnalyzeInvalidJSON(t *testing.T) {
	t.Parallel()

	handler := NewAnalysisHandler(workingGenerator(), store.NewMemoryReportStore(), nil)
	rec := postAnalysis(t, handler, `{"stress_level": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request format")
}

func TestAnalyzeInvalidExamDate(t *testing.T) {
	t.Parallel()

	handler := NewAnalysisHandler(workingGenerator(), store.NewMemoryReportStore(), nil)
	rec := postAnalysis(t, handler, `{"exam_date": "20th of June"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ExamDate")
}

func TestAnalyzeEmptyBodyFieldsAreOptional(t *testing.T) {
	t.Parallel()

	handler := NewAnalysisHandler(workingGenerator(), store.NewMemoryReportStore(), nil)
	rec := postAnalysis(t, handler, `{}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalyzeClampsOutOfRangeInput(t *testing.T) {
	t.Parallel()

	handler := NewAnalysisHandler(workingGenerator(), store.NewMemoryReportStore(), nil)
	rec := postAnalysis(t, handler, `{"stress_level": 99, "monthly_budget": -50}`)

	require.Equal(t, http.StatusOK, rec.Code,
		"out-of-range values are clamped, not rejected")
}
