// Package server exposes the calculator, the scenario store and report
// rendering over an HTTP JSON API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/invoice-roi/internal/calculator"
	"github.com/iwvelando/invoice-roi/internal/report"
	"github.com/iwvelando/invoice-roi/internal/scenario"
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"github.com/iwvelando/invoice-roi/pkg/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ScenarioStore is the persistence the handler needs. *scenario.Store
// satisfies it.
type ScenarioStore interface {
	Create(ctx context.Context, in calculator.ScenarioInput) (int64, error)
	List(ctx context.Context) ([]scenario.Summary, error)
	Fetch(ctx context.Context, id int64) (scenario.Record, error)
}

// Options configures NewHandler.
type Options struct {
	Logger      *zap.Logger
	Store       ScenarioStore
	Registry    *prometheus.Registry
	MaxBodySize int64
	Version     string
}

type handler struct {
	logger      *zap.Logger
	store       ScenarioStore
	metrics     *metrics
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculation,
// scenario, report and metrics endpoints.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	h := &handler{
		logger:      logger,
		store:       opts.Store,
		metrics:     newMetrics(registry),
		maxBodySize: maxBodySize,
		version:     version,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.instrument)

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", h.handleCalculate)
		r.Post("/report", h.handleReport)
		r.Get("/version", h.handleVersion)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.handleListScenarios)
			r.Post("/", h.handleCreateScenario)
			r.Get("/{id}", h.handleFetchScenario)
		})
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}

// instrument logs each request and counts it by route pattern.
func (h *handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		h.metrics.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		h.logger.Debug("HTTP request",
			zap.String("op", "server.instrument"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type calculationResponse struct {
	Input            *calculator.ScenarioInput    `json:"input,omitempty"`
	Result           calculator.Result            `json:"result"`
	PaybackAvailable bool                         `json:"paybackAvailable"`
	ROIAvailable     bool                         `json:"roiAvailable"`
	Fallback         bool                         `json:"fallback"`
	Error            string                       `json:"error,omitempty"`
	Report           []report.Entry               `json:"report,omitempty"`
	Projection       []calculator.ProjectionPoint `json:"projection,omitempty"`
	Warnings         []string                     `json:"warnings,omitempty"`
	Duration         string                       `json:"duration"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	fields, ok := h.decodeFields(w, r, op)
	if !ok {
		return
	}

	var response calculationResponse
	in, err := calculator.ParseInput(fields)
	if err != nil {
		// Invalid input is answered with the fallback result, not an HTTP error.
		h.metrics.calculations.WithLabelValues("fallback").Inc()
		h.logger.Info("calculation fell back",
			zap.String("op", op),
			zap.Error(err),
		)
		response = calculationResponse{
			Result:   calculator.Fallback(),
			Fallback: true,
			Error:    err.Error(),
		}
	} else {
		h.metrics.calculations.WithLabelValues("computed").Inc()
		result := calculator.Compute(in)
		response = calculationResponse{
			Input:      &in,
			Result:     result,
			Report:     report.Format(in, result),
			Projection: calculator.Projection(in, result),
			Warnings:   in.BoundWarnings(),
		}
	}

	response.PaybackAvailable = response.Result.PaybackAvailable()
	response.ROIAvailable = response.Result.ROIAvailable()
	response.Duration = time.Since(start).String()

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListScenarios"
	if !h.requireStore(w, op) {
		return
	}

	summaries, err := h.store.List(r.Context())
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, summaries)
}

func (h *handler) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCreateScenario"
	if !h.requireStore(w, op) {
		return
	}

	fields, ok := h.decodeFields(w, r, op)
	if !ok {
		return
	}

	in, err := calculator.ParseInput(fields)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err := validation.ValidateScenarioName(in.ScenarioName); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	id, err := h.store.Create(r.Context(), in)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.metrics.scenariosSaved.Inc()

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":      id,
		"message": fmt.Sprintf("Scenario '%s' saved!", in.ScenarioName),
	})
}

func (h *handler) handleFetchScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleFetchScenario"
	if !h.requireStore(w, op) {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid scenario id %q", chi.URLParam(r, "id")), op)
		return
	}

	record, err := h.store.Fetch(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, record)
}

type reportRequest struct {
	Email string                 `json:"email"`
	Input map[string]interface{} `json:"input"`
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"

	var req reportRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "enter your email address to enable the report download", op)
		return
	}

	in, err := calculator.ParseInput(req.Input)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	doc, err := report.RenderPDF(report.Format(in, calculator.Compute(in)))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.metrics.reports.Inc()

	h.logger.Info("lead captured",
		zap.String("op", op),
		zap.String("email", email),
		zap.String("scenario", report.ScenarioName(in)),
	)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": report.FileName(in),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.logger.Warn("failed to write report",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeFields reads a JSON object body, keeping numbers as json.Number so
// integer fields are not silently truncated.
func (h *handler) decodeFields(w http.ResponseWriter, r *http.Request, op string) (map[string]interface{}, bool) {
	var fields map[string]interface{}
	if !h.decodeBody(w, r, &fields, op) {
		return nil, false
	}
	if fields == nil {
		fields = make(map[string]interface{})
	}
	return fields, true
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r.Body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return false
	}

	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) requireStore(w http.ResponseWriter, op string) bool {
	if h.store == nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, "scenario store is not configured", op)
		return false
	}
	return true
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, scenario.ErrNotFound):
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
	case errors.Is(err, scenario.ErrEmptyName):
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
	default:
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
