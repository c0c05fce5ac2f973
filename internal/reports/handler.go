package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/personalplanner/planner/internal/evolution"
	"github.com/personalplanner/planner/internal/middleware"
	"github.com/personalplanner/planner/internal/report"
	"github.com/personalplanner/planner/internal/source"
	"github.com/personalplanner/planner/internal/students"
	"github.com/personalplanner/planner/internal/telemetry/metrics"
	"github.com/personalplanner/planner/internal/telemetry/tracing"
	"github.com/personalplanner/planner/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	FormatPDF     = "pdf"
	FormatXLSX    = "xlsx"
	FormatPreview = "preview"

	// MissingCollectionsHeader lists the collections left out of a report because they could not be fetched.
	MissingCollectionsHeader = "X-Report-Missing"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=reports_test

type studentSource interface {
	Student(ctx context.Context, studentID string) (*students.Student, error)
	Workouts(ctx context.Context, studentID string) ([]students.WorkoutSummary, error)
	Cardio(ctx context.Context, studentID string) ([]students.CardioSession, error)
	Evolutions(ctx context.Context, studentID string) ([]students.EvolutionRecord, error)
}

type EvolutionResponse struct {
	View     evolution.View     `json:"view"`
	GoalType evolution.GoalType `json:"goal_type"`
	Verdict  evolution.Verdict  `json:"verdict"`
}

type Handler struct {
	source         studentSource
	composer       *report.Composer
	metricsManager *metrics.Manager
	clock          func() time.Time
}

type HandlerParams struct {
	Source         studentSource
	Composer       *report.Composer
	MetricsManager *metrics.Manager
	// Clock defaults to time.Now; only used for export file names.
	Clock func() time.Time
}

func NewHandler(params HandlerParams) *Handler {
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Handler{
		source:         params.Source,
		composer:       params.Composer,
		metricsManager: params.MetricsManager,
		clock:          clock,
	}
}

// SetupRoutes registers the report routes. Rendering routes share one per-trainer rate limit.
func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
) {
	limit := middleware.RateLimit(rateLimiter, handler.metricsManager, "reports", allowedPerMin)

	router.HandleFunc("/students/{id}/evolution", handler.handleEvolution).
		Methods("GET", "OPTIONS").Name("student-evolution")
	router.Handle("/students/{id}/evolution/export", limit(http.HandlerFunc(handler.handleEvolutionExport))).
		Methods("GET", "OPTIONS").Name("student-evolution-export")
	router.Handle("/students/{id}/report", limit(http.HandlerFunc(handler.handleReport))).
		Methods("GET", "OPTIONS").Name("student-report")
	router.Handle("/reports/preview", limit(http.HandlerFunc(handler.handlePreview))).
		Methods("POST", "OPTIONS").Name("report-preview")
}

func (handler *Handler) handleEvolution(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "reportsHandler.evolution")
	defer span.End()

	studentID := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("student_id", studentID))

	student, records, err := handler.studentEvolutions(ctx, studentID)
	if err != nil {
		handler.writeSourceError(w, span, studentID, err)
		return
	}

	view := evolution.BuildView(records, student.Goal)
	span.SetAttributes(
		attribute.String("goal_type", view.GoalType.String()),
		attribute.Int("points", len(view.Points)),
	)
	span.SetStatus(codes.Ok, "ok")

	pkg.WriteJSON(w, EvolutionResponse{
		View:     view,
		GoalType: view.GoalType,
		Verdict:  view.Verdict,
	}, http.StatusOK)
}

func (handler *Handler) handleEvolutionExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "reportsHandler.evolutionExport")
	defer span.End()

	studentID := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("student_id", studentID))

	student, records, err := handler.studentEvolutions(ctx, studentID)
	if err != nil {
		handler.writeSourceError(w, span, studentID, err)
		return
	}

	begin := time.Now()
	var buf bytes.Buffer
	if err := report.RenderWorkbook(evolution.BuildView(records, student.Goal), &buf); err != nil {
		log.Errorf("render evolution workbook for student [%s]: %s", studentID, err)
		span.SetStatus(codes.Error, "render-workbook")
		span.RecordError(err)
		http.Error(w, "failed to render workbook", http.StatusInternalServerError)
		return
	}
	handler.observeRender(FormatXLSX, begin)

	span.SetStatus(codes.Ok, "ok")
	pkg.WriteAttachment(w, pkg.ContentType.XLSX, report.WorkbookFileName(student.Name, handler.clock()), buf.Bytes())
}

func (handler *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "reportsHandler.report")
	defer span.End()

	studentID := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("student_id", studentID))

	bundle, err := source.FetchBundle(ctx, handler.source, studentID)
	if err != nil {
		handler.writeSourceError(w, span, studentID, err)
		return
	}

	for _, missing := range bundle.Missing {
		if handler.metricsManager != nil {
			handler.metricsManager.CounterSourceFailures.WithLabelValues(string(missing)).Inc()
		}
	}

	handler.writePDF(w, span, FormatPDF, bundle)
}

func (handler *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "reportsHandler.preview")
	defer span.End()

	bundle, err := source.DecodeBundle(r.Body)
	if err != nil {
		log.Tracef("report preview, decode bundle: %s", err)
		span.SetStatus(codes.Error, "decode-bundle")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("bundle larger than %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		if errors.Is(err, source.ErrInvalidBundle) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "invalid bundle json", http.StatusBadRequest)
		return
	}

	handler.writePDF(w, span, FormatPreview, bundle)
}

func (handler *Handler) writePDF(w http.ResponseWriter, span trace.Span, format string, bundle *source.Bundle) {
	begin := time.Now()
	doc := handler.composer.Compose(bundle.ReportInput())

	var buf bytes.Buffer
	if err := report.RenderPDF(doc, &buf); err != nil {
		log.Errorf("render report pdf [%s]: %s", doc.FileName, err)
		span.SetStatus(codes.Error, "render-pdf")
		span.RecordError(err)
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	handler.observeRender(format, begin)

	if len(bundle.Missing) > 0 {
		missing := make([]string, 0, len(bundle.Missing))
		for _, c := range bundle.Missing {
			missing = append(missing, string(c))
		}
		w.Header().Set(MissingCollectionsHeader, strings.Join(missing, ","))
	}

	span.SetAttributes(attribute.String("file_name", doc.FileName))
	span.SetStatus(codes.Ok, "ok")
	pkg.WriteAttachment(w, pkg.ContentType.PDF, doc.FileName, buf.Bytes())
}

func (handler *Handler) studentEvolutions(ctx context.Context, studentID string) (*students.Student, []students.EvolutionRecord, error) {
	student, err := handler.source.Student(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	if student == nil {
		return nil, nil, source.ErrStudentNotFound
	}

	records, err := handler.source.Evolutions(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}

	return student, records, nil
}

func (handler *Handler) observeRender(format string, begin time.Time) {
	if handler.metricsManager == nil {
		return
	}
	handler.metricsManager.HistogramRenderDuration.WithLabelValues(format).Observe(time.Since(begin).Seconds())
	handler.metricsManager.CounterReports.WithLabelValues(format).Inc()
}

func (handler *Handler) writeSourceError(w http.ResponseWriter, span trace.Span, studentID string, err error) {
	span.RecordError(err)
	switch {
	case errors.Is(err, source.ErrStudentNotFound):
		span.SetStatus(codes.Error, "student-not-found")
		http.Error(w, "student not found", http.StatusNotFound)
	case errors.Is(err, source.ErrUnauthorized), errors.Is(err, source.ErrNoPrincipal):
		span.SetStatus(codes.Error, "unauthorized")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		log.Errorf("fetch student [%s] data: %s", studentID, err)
		span.SetStatus(codes.Error, "source-error")
		http.Error(w, "student data unavailable", http.StatusBadGateway)
	}
}
