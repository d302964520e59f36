package httphandler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ericfisherdev/tprmkit/internal/diagram"
)

// ViewerWriter renders the HTML diagram viewer.
type ViewerWriter interface {
	WriteViewer(ctx context.Context, w io.Writer) error
}

// Handler is the HTTP driving adapter that serves the diagram viewer, the
// Mermaid sources, and a small JSON API.
type Handler struct {
	viewer ViewerWriter
	logger *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(viewer ViewerWriter, logger *slog.Logger) *Handler {
	return &Handler{
		viewer: viewer,
		logger: logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Viewer)
	mux.HandleFunc("GET /mermaid/{file}", h.MermaidSource)
	mux.HandleFunc("GET /api/v1/diagrams", h.ListDiagrams)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = requestIDMiddleware(wrapped)

	return wrapped
}

// Viewer renders the HTML viewer with every diagram.
func (h *Handler) Viewer(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.viewer.WriteViewer(r.Context(), &buf); err != nil {
		h.logger.Error("failed to render viewer", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// MermaidSource returns the .mmd document for one diagram.
func (h *Handler) MermaidSource(w http.ResponseWriter, r *http.Request) {
	slug, ok := strings.CutSuffix(r.PathValue("file"), ".mmd")
	if !ok {
		writeError(w, http.StatusNotFound, "diagram not found")
		return
	}

	d, ok := diagram.Lookup(slug)
	if !ok {
		writeError(w, http.StatusNotFound, "diagram not found")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, diagram.MermaidFile(d))
}

// ListDiagrams returns the catalog metadata.
func (h *Handler) ListDiagrams(w http.ResponseWriter, _ *http.Request) {
	diagrams := diagram.Catalog()

	resp := make([]DiagramResponse, 0, len(diagrams))
	for _, d := range diagrams {
		resp = append(resp, DiagramResponse{
			Slug:        d.Slug,
			Title:       d.Title,
			Description: d.Description,
			Notes:       diagram.ExpandRefs(d.Notes, func(slug string) string { return "/#" + slug }),
			SourceURL:   "/mermaid/" + d.Slug + ".mmd",
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
