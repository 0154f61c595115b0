package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lifeops/lifeops-api/internal/advisor"
	"github.com/lifeops/lifeops-api/internal/api/shared"
	"github.com/lifeops/lifeops-api/internal/generation"
	"github.com/lifeops/lifeops-api/internal/store"
)

// AnalysisHandler runs advisor sessions over HTTP.
type AnalysisHandler struct {
	generator  generation.Generator
	reports    store.ReportStore
	logger     *slog.Logger
	concurrent bool
}

// AnalysisHandlerOption configures an AnalysisHandler.
type AnalysisHandlerOption func(*AnalysisHandler)

// WithConcurrentAnalysis makes each run fan the three domain analyses
// out concurrently instead of sequentially.
func WithConcurrentAnalysis() AnalysisHandlerOption {
	return func(h *AnalysisHandler) {
		h.concurrent = true
	}
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(
	generator generation.Generator,
	reports store.ReportStore,
	log *slog.Logger,
	opts ...AnalysisHandlerOption,
) *AnalysisHandler {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if reports == nil {
		panic("report store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	h := &AnalysisHandler{
		generator: generator,
		reports:   reports,
		logger:    log.With(slog.String("component", "analysis_handler")),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Analyze handles POST /api/analysis. Each request gets its own
// single-use orchestrator, so concurrent sessions never share state.
// A degraded backend still yields a 200 with the synthesized report;
// the fallback flag in the response tells the caller which path ran.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	userCtx := req.toUserContext(time.Now())

	var opts []advisor.Option
	if h.concurrent {
		opts = append(opts, advisor.WithConcurrentAnalyzers())
	}
	orch := advisor.NewOrchestrator(h.generator, userCtx, h.logger, opts...)

	report, err := orch.Run(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.reports.Save(r.Context(), report); err != nil {
		// The report is already in hand; a storage failure costs later
		// retrieval, not this response.
		h.logger.Warn("failed to store report",
			slog.String("report_id", report.ID.String()),
			slog.String("error", err.Error()))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reportToResponse(report))
}
