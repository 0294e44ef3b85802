package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/insight-deck/pkg/adapters"
	"github.com/de-tools/insight-deck/pkg/ingest"
	"github.com/de-tools/insight-deck/pkg/models/api"
	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/de-tools/insight-deck/pkg/services/pipeline"
	"github.com/de-tools/insight-deck/pkg/store/duckdb/runs"
	"github.com/de-tools/insight-deck/pkg/telemetry"
)

const (
	AppName   = "InsightDeck"
	FormField = "file"

	DefaultMaxUploadBytes = 10 * 1024 * 1024

	// room for multipart boundaries and part headers on top of the file itself
	multipartOverhead = 64 * 1024

	KindBadRequest  = "BadRequest"
	KindNotFound    = "NotFound"
	KindUnavailable = "Unavailable"

	internalErrorMessage = "failed to generate report"
)

// Generator runs the report pipeline for one uploaded table.
type Generator interface {
	Generate(ctx context.Context, raw ingest.RawTable, w io.Writer) (pipeline.Result, error)
}

type Handler struct {
	generator      Generator
	runs           runs.Store
	maxUploadBytes int64
	newID          func() string
	now            func() time.Time
}

// NewHandler builds the report handlers. runStore may be nil, in which case generated
// reports are not recorded and the history endpoint reports itself unavailable.
func NewHandler(generator Generator, runStore runs.Store, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		generator:      generator,
		runs:           runStore,
		maxUploadBytes: maxUploadBytes,
		newID:          uuid.NewString,
		now:            time.Now,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, api.HealthResponse{Status: "ok", App: AppName})
}

// GenerateDeck accepts a multipart upload and responds with the PDF report.
func (h *Handler) GenerateDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	file, header, err := r.FormFile(FormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || r.ContentLength > h.maxUploadBytes+multipartOverhead {
			h.fail(ctx, w, start, &domain.SizeLimitError{Limit: h.maxUploadBytes, Size: r.ContentLength})
			return
		}
		logger.Warn().Err(err).Msg("upload rejected")
		telemetry.ObserveReport(telemetry.StatusInputError, time.Since(start))
		writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("missing %q file field", FormField), KindBadRequest)
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		h.fail(ctx, w, start, &domain.SizeLimitError{Limit: h.maxUploadBytes, Size: header.Size})
		return
	}
	filename := filepath.Base(header.Filename)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
	default:
		telemetry.ObserveReport(telemetry.StatusInputError, time.Since(start))
		writeError(ctx, w, http.StatusBadRequest, "Invalid input. Please upload a .csv or .xlsx file.", KindBadRequest)
		return
	}

	raw, err := ingest.Read(filename, file)
	if err != nil {
		h.fail(ctx, w, start, err)
		return
	}

	id := h.newID()
	jobLogger := logger.With().Str("job", id).Str("source", filename).Logger()
	ctx = jobLogger.WithContext(ctx)

	var doc bytes.Buffer
	res, err := h.generator.Generate(ctx, raw, &doc)
	if err != nil {
		h.fail(ctx, w, start, err)
		return
	}
	telemetry.ObserveReport(telemetry.StatusSuccess, time.Since(start))
	jobLogger.Info().Int("rows", res.Rows).Int("bytes", doc.Len()).Dur("took", time.Since(start)).Msg("report generated")

	h.record(ctx, domain.ReportRun{
		ID:            id,
		CreatedAt:     h.now().UTC(),
		Source:        filename,
		Period:        res.Period,
		Rows:          res.Rows,
		Days:          len(res.Daily),
		Services:      len(res.Services),
		KPIs:          res.KPIs,
		DocumentBytes: int64(doc.Len()),
	})

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", DocumentName(id)))
	w.Header().Set("Content-Length", strconv.Itoa(doc.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Bytes()); err != nil {
		jobLogger.Error().Err(err).Msg("failed to write report response")
	}
}

// ListReports returns the most recent report runs, newest first.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if h.runs == nil {
		writeError(ctx, w, http.StatusServiceUnavailable, "report history is disabled", KindUnavailable)
		return
	}

	limit := runs.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(ctx, w, http.StatusBadRequest, "invalid 'limit': expected a positive integer", KindBadRequest)
			return
		}
		limit = n
	}

	records, err := h.runs.List(ctx, limit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list report runs")
		writeError(ctx, w, http.StatusInternalServerError, "failed to list report runs", domain.KindInternalError)
		return
	}

	history := make([]domain.ReportRun, 0, len(records))
	for _, rec := range records {
		history = append(history, adapters.MapStoreReportRunToDomain(rec))
	}
	writeJSON(ctx, w, http.StatusOK, adapters.MapDomainReportRunsToAPI(history))
}

// GetReport returns one recorded run by id.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if h.runs == nil {
		writeError(ctx, w, http.StatusServiceUnavailable, "report history is disabled", KindUnavailable)
		return
	}

	rec, err := h.runs.Get(ctx, id)
	if errors.Is(err, runs.ErrNotFound) {
		writeError(ctx, w, http.StatusNotFound, fmt.Sprintf("report run %q not found", id), KindNotFound)
		return
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("run", id).Msg("failed to get report run")
		writeError(ctx, w, http.StatusInternalServerError, "failed to get report run", domain.KindInternalError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, adapters.MapDomainReportRunToAPI(adapters.MapStoreReportRunToDomain(*rec)))
}

// DocumentName is the download name of a generated report.
func DocumentName(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("InsightDeck_%s.pdf", id)
}

func (h *Handler) record(ctx context.Context, run domain.ReportRun) {
	if h.runs == nil {
		return
	}
	if err := h.runs.Add(ctx, adapters.MapDomainReportRunToStore(run)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("run", run.ID).Msg("failed to record report run")
	}
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, start time.Time, err error) {
	logger := zerolog.Ctx(ctx)
	kind := domain.KindOf(err)

	if domain.IsInputError(err) {
		logger.Warn().Err(err).Str("kind", kind).Msg("report input rejected")
		telemetry.ObserveReport(telemetry.StatusInputError, time.Since(start))
		writeError(ctx, w, http.StatusBadRequest, err.Error(), kind)
		return
	}

	logger.Error().Err(err).Str("kind", kind).Msg("report generation failed")
	telemetry.ObserveReport(telemetry.StatusInternalError, time.Since(start))
	writeError(ctx, w, http.StatusInternalServerError, internalErrorMessage, kind)
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message, kind string) {
	writeJSON(ctx, w, status, api.ErrorResponse{Error: message, Type: kind})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
