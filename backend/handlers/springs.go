// ABOUTME: HTTP handlers for spring search, batch search, and reports
// ABOUTME: Validates assemblies, caches results, and streams XLSX/PDF/TSV documents

package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/Kevin-Gith/spring-design-calculator/backend/cache"
	"github.com/Kevin-Gith/spring-design-calculator/backend/middleware"
	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"github.com/Kevin-Gith/spring-design-calculator/backend/services"
)

// reportFormat describes one downloadable document type
type reportFormat struct {
	contentType string
	extension   string
	write       func(w *bytes.Buffer, result models.SearchResult) error
}

var reportFormats = map[string]reportFormat{
	"xlsx": {
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		extension:   "xlsx",
		write:       func(w *bytes.Buffer, res models.SearchResult) error { return services.WriteXLSX(w, res) },
	},
	"pdf": {
		contentType: "application/pdf",
		extension:   "pdf",
		write:       func(w *bytes.Buffer, res models.SearchResult) error { return services.WritePDF(w, res) },
	},
	"tsv": {
		contentType: "text/tab-separated-values; charset=utf-8",
		extension:   "tsv",
		write:       func(w *bytes.Buffer, res models.SearchResult) error { return services.WriteTSV(w, res) },
	},
}

// SearchSprings runs the design sweep for one assembly.
func (h *Handler) SearchSprings(w http.ResponseWriter, r *http.Request) {
	var in models.AssemblyInput
	if !h.decodeJSON(w, r, &in) {
		return
	}

	result, err := h.search(r.Context(), in)
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	slog.Debug("Spring search served",
		"request_id", middleware.RequestID(r.Context()),
		"session", middleware.SessionID(r),
		"returned", result.Returned,
		"cached", result.Cached,
	)
	h.writeJSON(w, http.StatusOK, result)
}

// BatchSearch runs independent sweeps for several assemblies.
func (h *Handler) BatchSearch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if len(req.Assemblies) == 0 {
		h.writeError(w, "assemblies must not be empty", http.StatusBadRequest)
		return
	}
	if len(req.Assemblies) > h.cfg.MaxBatchSize {
		h.writeError(w, fmt.Sprintf("at most %d assemblies per batch", h.cfg.MaxBatchSize), http.StatusBadRequest)
		return
	}

	inputs := make([]models.AssemblyInput, len(req.Assemblies))
	for i, in := range req.Assemblies {
		in = h.withConfigDefaults(in)
		if err := in.Validate(); err != nil {
			h.writeErrorDetails(w, "Invalid assembly input", fmt.Sprintf("assembly %d: %v", i, err), http.StatusBadRequest)
			return
		}
		inputs[i] = in
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.SearchTimeout)
	defer cancel()

	results, err := h.searcher.SearchBatch(ctx, inputs, runtime.GOMAXPROCS(0))
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, models.BatchResponse{Results: results})
}

// SpringReport runs a search and returns it as a downloadable document.
// The format query parameter selects xlsx (default), pdf, or tsv.
func (h *Handler) SpringReport(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = "xlsx"
	}
	format, ok := reportFormats[name]
	if !ok {
		h.writeError(w, fmt.Sprintf("unsupported report format %q (use xlsx, pdf, or tsv)", name), http.StatusBadRequest)
		return
	}

	var in models.AssemblyInput
	if !h.decodeJSON(w, r, &in) {
		return
	}

	result, err := h.search(r.Context(), in)
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	// Render fully before writing so a failure can still produce a JSON error
	var buf bytes.Buffer
	if err := format.write(&buf, result); err != nil {
		slog.Error("Report rendering failed", "format", name, "error", err)
		h.writeError(w, "Failed to render report", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("springs-%s.%s", time.Now().UTC().Format("20060102-150405"), format.extension)
	w.Header().Set("Content-Type", format.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("Report write interrupted", "error", err)
	}
}

// withConfigDefaults applies the configured shear modulus to inputs that
// leave it unset.
func (h *Handler) withConfigDefaults(in models.AssemblyInput) models.AssemblyInput {
	if in.ShearModulus == 0 {
		in.ShearModulus = h.cfg.ShearModulus
	}
	return in.WithDefaults()
}

// search validates, consults the cache, and collapses concurrent identical
// searches into one sweep.
func (h *Handler) search(ctx context.Context, in models.AssemblyInput) (models.SearchResult, error) {
	in = h.withConfigDefaults(in)
	if err := in.Validate(); err != nil {
		return models.SearchResult{}, err
	}

	key, err := cache.Key(in, h.searcher.Sweep())
	if err != nil {
		return models.SearchResult{}, err
	}

	if h.cache != nil {
		if cached, ok := h.cache.Get(key); ok {
			cached.Cached = true
			return cached, nil
		}
	}

	ch := h.inflight.DoChan(key, func() (_ interface{}, err error) {
		// DoChan re-panics on its own goroutine, out of reach of any
		// handler-level recover, so a sweep panic becomes a 500 here
		defer func() {
			if p := recover(); p != nil {
				slog.Error("Spring search panicked", "panic", p, "stack", string(debug.Stack()))
				err = fmt.Errorf("spring search panicked: %v", p)
			}
		}()

		// Detached from the first caller so its disconnect does not fail
		// the callers sharing this sweep
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.cfg.SearchTimeout)
		defer cancel()

		result, err := h.searcher.Search(sctx, in)
		if err != nil {
			return nil, err
		}
		if h.cache != nil {
			h.cache.Set(key, result)
		}
		return result, nil
	})

	select {
	case <-ctx.Done():
		return models.SearchResult{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.SearchResult{}, res.Err
		}
		return res.Val.(models.SearchResult), nil
	}
}

func (h *Handler) writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		h.writeErrorDetails(w, "Invalid assembly input", err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.DeadlineExceeded):
		slog.Warn("Spring search timed out", "timeout", h.cfg.SearchTimeout)
		h.writeError(w, "Spring search timed out", http.StatusGatewayTimeout)
	case errors.Is(err, context.Canceled):
		h.writeError(w, "Spring search canceled", http.StatusServiceUnavailable)
	default:
		slog.Error("Spring search failed", "error", err)
		h.writeError(w, "Spring search failed", http.StatusInternalServerError)
	}
}
