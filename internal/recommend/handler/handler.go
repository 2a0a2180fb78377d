// Package handler maps the recommendation service onto HTTP. It stays
// thin: decode, delegate, encode, and translate error codes to status.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dayzero/internal/platform/metrics"
	"dayzero/internal/platform/middleware"
	"dayzero/internal/recommend/models"
	dErrors "dayzero/pkg/domainerrors"
)

// Service defines the recommendation operations the handler exposes.
type Service interface {
	FindMissingItems(ctx context.Context, req models.MissingItemsRequest) (*models.MissingItemsResponse, error)
	ReorderPriority(ctx context.Context, req models.PriorityReorderRequest) (*models.PriorityReorderResponse, error)
	CacheStatus(ctx context.Context) (*models.CacheStatusResponse, error)
	ClearCache(ctx context.Context) (*models.CacheClearResponse, error)
}

// HealthChecker reports the availability of one backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type namedCheck struct {
	name  string
	check HealthChecker
}

// Handler handles recommendation endpoints.
type Handler struct {
	logger  *slog.Logger
	svc     Service
	metrics *metrics.Metrics
	checks  []namedCheck
}

// Option configures a Handler.
type Option func(*Handler)

// WithHealthCheck adds a named dependency to the /health report.
func WithHealthCheck(name string, check HealthChecker) Option {
	return func(h *Handler) {
		if check != nil {
			h.checks = append(h.checks, namedCheck{name: name, check: check})
		}
	}
}

// New creates a recommendation Handler.
func New(svc Service, logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Handler {
	h := &Handler{logger: logger, svc: svc, metrics: m}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Register registers the recommendation routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(h.metrics))
	router.Post("/ai/recommendations/missing-items", h.handleMissingItems)
	router.Post("/ai/recommendations/priority-reorder", h.handlePriorityReorder)
	router.Get("/cache/status", h.handleCacheStatus)
	router.Delete("/cache/clear", h.handleCacheClear)
	router.Get("/health", h.handleHealth)

	r.Mount("/", router)
}

func (h *Handler) handleMissingItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.MissingItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(ctx, w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	resp, err := h.svc.FindMissingItems(ctx, req)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, resp)
}

func (h *Handler) handlePriorityReorder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.PriorityReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(ctx, w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	resp, err := h.svc.ReorderPriority(ctx, req)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, resp)
}

func (h *Handler) handleCacheStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := h.svc.CacheStatus(ctx)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, resp)
}

func (h *Handler) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := h.svc.ClearCache(ctx)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, resp)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for _, c := range h.checks {
		if err := c.check.Health(ctx); err != nil {
			deps[c.name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[c.name] = "ok"
	}
	body := map[string]any{"status": "healthy", "dependencies": deps}
	if status != http.StatusOK {
		body["status"] = "unhealthy"
	}
	h.writeJSON(ctx, w, status, body)
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.ErrorContext(ctx, "write response failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
}

// writeError maps domain error codes to HTTP status codes.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case dErrors.CodeBadRequest:
		status = http.StatusBadRequest
	case dErrors.CodeNotFound:
		status = http.StatusNotFound
	case dErrors.CodeUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed",
			"request_id", middleware.GetRequestID(ctx),
			"code", string(code),
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, "request rejected",
			"request_id", middleware.GetRequestID(ctx),
			"code", string(code),
			"error", err.Error(),
		)
	}

	h.writeJSON(ctx, w, status, map[string]string{
		"error": string(code),
		// Coded messages are caller-safe; internals stay in the logs.
		"detail": userMessage(err, code),
	})
}

func userMessage(err error, code dErrors.Code) string {
	if code == dErrors.CodeInternal {
		return "internal error"
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "request failed"
}
