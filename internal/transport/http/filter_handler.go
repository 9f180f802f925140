package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "chngfilter/internal/errors"
	"chngfilter/internal/middleware"
	"chngfilter/internal/services"
)

// xlsxContentType is the MIME type of an Office Open XML workbook.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FilterHandler runs the filter modes and serves their workbooks.
type FilterHandler struct {
	service      FilterService
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewFilterHandler creates a new filter handler
func NewFilterHandler(service FilterService, validator *middleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *FilterHandler {
	return &FilterHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "filter_handler")),
		errorHandler: errorHandler,
	}
}

// FilterRoutes returns the routes mounted at /api/filter
func (h *FilterHandler) FilterRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/split", h.Split)
	r.Post("/highlight", h.Highlight)
	return r
}

// ExportRoutes returns the routes mounted at /api/export
func (h *FilterHandler) ExportRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/split", h.ExportSplit)
	r.Post("/highlight", h.ExportHighlight)
	return r
}

// Split handles POST /api/filter/split
func (h *FilterHandler) Split(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	res, err := h.service.Split(r.Context(), req.ToOptions())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, newSplitResponse(res, req.Preview()))
}

// Highlight handles POST /api/filter/highlight
func (h *FilterHandler) Highlight(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	res, err := h.service.Highlight(r.Context(), req.ToOptions())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	render.JSON(w, r, newHighlightResponse(res, req.Preview()))
}

// ExportSplit handles POST /api/export/split
func (h *FilterHandler) ExportSplit(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	export, err := h.service.ExportSplit(r.Context(), req.ToOptions())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	h.sendWorkbook(w, r, export)
}

// ExportHighlight handles POST /api/export/highlight
func (h *FilterHandler) ExportHighlight(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	export, err := h.service.ExportHighlight(r.Context(), req.ToOptions())
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	h.sendWorkbook(w, r, export)
}

// decode reads an optional FilterRequest body. An empty body means defaults.
func (h *FilterHandler) decode(w http.ResponseWriter, r *http.Request) (*FilterRequest, bool) {
	req := &FilterRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := render.DecodeJSON(r.Body, req); err != nil && !errors.Is(err, io.EOF) {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.errorHandler.HandleError(w, r, err)
				return nil, false
			}
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return nil, false
		}
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return nil, false
	}
	return req, true
}

func (h *FilterHandler) sendWorkbook(w http.ResponseWriter, r *http.Request, export *services.Export) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Data)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(export.Data); err != nil {
		h.logger.WarnContext(r.Context(), "failed to send workbook",
			slog.String("file", export.FileName),
			slog.String("error", err.Error()))
		return
	}
	h.logger.InfoContext(r.Context(), "workbook sent",
		slog.String("file", export.FileName),
		slog.Int("bytes", len(export.Data)))
}
