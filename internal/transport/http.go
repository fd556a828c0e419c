package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/staffplan/internal/domain/staffing"
	"github.com/rpggio/staffplan/internal/export"
	"github.com/rpggio/staffplan/internal/planning"
)

// MethodHandler dispatches one JSON-RPC method for a tenant.
type MethodHandler interface {
	Handle(ctx context.Context, tenantID, method string, params json.RawMessage) (any, error)
}

// WorkloadSource builds workload heatmaps for export.
type WorkloadSource interface {
	Workload(ctx context.Context, tenantID string, q staffing.WorkloadQuery) (*staffing.Heatmap, error)
}

// Options configures the HTTP router.
type Options struct {
	Handler MethodHandler
	// Auth resolves the tenant for /rpc and /export. Nil leaves requests
	// without a tenant, which are rejected.
	Auth func(http.Handler) http.Handler
	// MCP, when set, is mounted at /mcp. It authenticates on its own.
	MCP      http.Handler
	Workload WorkloadSource
	Logger   *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	handler  MethodHandler
	workload WorkloadSource
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{handler: opts.Handler, workload: opts.Workload, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}
		r.Post("/rpc", srv.handleRPC)
		if opts.Workload != nil {
			r.Get("/export/workload.xlsx", srv.handleWorkloadExport)
		}
	})

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok || tenantID == "" {
		http.Error(w, "missing tenant", http.StatusUnauthorized)
		return
	}

	req, err := ParseRequest(r.Body)
	if err != nil {
		code := ErrInvalidReq
		if errors.Is(err, errParse) {
			code = ErrParseCode
		}
		WriteError(w, nil, code, err.Error(), nil)
		return
	}

	result, err := s.handler.Handle(r.Context(), tenantID, req.Method, req.Params)
	if err != nil {
		var coded CodedError
		if !errors.As(err, &coded) {
			s.logger.Error("rpc failed", "method", req.Method, "tenant_id", tenantID, "error", err)
		}
		WriteHandlerError(w, req.ID, err)
		return
	}

	WriteResult(w, req.ID, result)
}

// handleWorkloadExport serves the workload heatmap as an XLSX workbook.
// Query: start, end (YYYY-MM-DD), granularity (day|week), employee_id
// (repeatable).
func (s *Server) handleWorkloadExport(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok || tenantID == "" {
		http.Error(w, "missing tenant", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	start, err := planning.ParseDate(q.Get("start"))
	if err != nil {
		http.Error(w, "start: "+err.Error(), http.StatusBadRequest)
		return
	}
	end, err := planning.ParseDate(q.Get("end"))
	if err != nil {
		http.Error(w, "end: "+err.Error(), http.StatusBadRequest)
		return
	}

	hm, err := s.workload.Workload(r.Context(), tenantID, staffing.WorkloadQuery{
		Range:       planning.Range{Start: start, End: end},
		Granularity: q.Get("granularity"),
		EmployeeIDs: q["employee_id"],
	})
	if err != nil {
		if errors.Is(err, planning.ErrInvalidInterval) ||
			errors.Is(err, planning.ErrInvalidGranularity) ||
			errors.Is(err, staffing.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error("workload export failed", "tenant_id", tenantID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("workload_%s_%s.xlsx", start, end)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteHeatmap(w, *hm); err != nil {
		s.logger.Error("writing workbook", "error", err)
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
