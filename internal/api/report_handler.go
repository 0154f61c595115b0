package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lifeops/lifeops-api/internal/api/shared"
	"github.com/lifeops/lifeops-api/internal/domain"
	"github.com/lifeops/lifeops-api/internal/store"
)

// Export truncation limits, in runes.
const (
	exportSectionLimit      = 500
	exportCoordinationLimit = 1000
)

// ExportResponse is the condensed report produced by the export
// endpoint: domain sections cut to 500 characters and coordination to
// 1000, sized for pasting into notes or chat.
type ExportResponse struct {
	ID                 string `json:"id"`
	Health             string `json:"health"`
	Finance            string `json:"finance"`
	Study              string `json:"study"`
	Coordination       string `json:"coordination"`
	CrossDomainInsight string `json:"cross_domain_insight"`
	Fallback           bool   `json:"fallback"`
}

// ReportHandler serves stored analysis reports.
type ReportHandler struct {
	reports store.ReportStore
	logger  *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reports store.ReportStore, log *slog.Logger) *ReportHandler {
	if reports == nil {
		panic("report store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ReportHandler{
		reports: reports,
		logger:  log.With(slog.String("component", "report_handler")),
	}
}

// GetReport handles GET /api/reports/{id}.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.lookup(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, reportToResponse(report))
}

// ExportReport handles GET /api/reports/{id}/export.
func (h *ReportHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.lookup(w, r)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ExportResponse{
		ID:                 report.ID.String(),
		Health:             truncate(report.Health, exportSectionLimit),
		Finance:            truncate(report.Finance, exportSectionLimit),
		Study:              truncate(report.Study, exportSectionLimit),
		Coordination:       truncate(report.Coordination, exportCoordinationLimit),
		CrossDomainInsight: report.CrossDomainInsight,
		Fallback:           report.Fallback,
	})
}

// lookup resolves the {id} URL parameter to a stored report, writing
// the error response itself when resolution fails.
func (h *ReportHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.AnalysisReport, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid report ID")
		return nil, false
	}

	found, err := h.reports.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return nil, false
	}
	return found, true
}

// truncate cuts s to at most limit runes, marking the cut with an
// ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
