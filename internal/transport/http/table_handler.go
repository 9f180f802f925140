package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "chngfilter/internal/errors"
	"chngfilter/internal/middleware"
	"chngfilter/internal/services"
)

// multipartMemory is the part of an upload kept in memory before spilling
// to temporary files.
const multipartMemory = 8 << 20

// TableHandler handles table uploads with RFC 7807 compliance
type TableHandler struct {
	service      TableService
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewTableHandler creates a new table handler
func NewTableHandler(service TableService, validator *middleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *TableHandler {
	return &TableHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "table_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the table routes
func (h *TableHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListTables)
	r.Route("/{slot}", func(r chi.Router) {
		r.Use(h.SlotCtx)
		r.Post("/", h.UploadTable)
		r.Delete("/", h.RemoveTable)
	})

	return r
}

// SlotCtx middleware validates the slot parameter
func (h *TableHandler) SlotCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slot := chi.URLParam(r, "slot")
		if err := h.validator.ValidateVar("slot", slot, "required,oneof=first second"); err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UploadTable handles POST /api/tables/{slot}
func (h *TableHandler) UploadTable(w http.ResponseWriter, r *http.Request) {
	slot := services.Slot(chi.URLParam(r, "slot"))

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "file is required"))
		return
	}
	defer file.Close()

	info, err := h.service.LoadTable(r.Context(), slot, header.Filename, file)
	if err != nil {
		mapped := mapServiceError(err)
		var apiErr *apierrors.APIError
		if !errors.As(mapped, &apiErr) && r.Context().Err() == nil {
			// The file was read but could not be parsed.
			mapped = apierrors.InvalidRequestWithError(err)
		}
		h.errorHandler.HandleError(w, r, mapped)
		return
	}

	h.logger.InfoContext(r.Context(), "table uploaded",
		slog.String("slot", string(slot)),
		slog.String("file", header.Filename),
		slog.Int64("size", header.Size),
		slog.Int("rows", info.Rows))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, info)
}

// ListTables handles GET /api/tables
func (h *TableHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables := h.service.Tables(r.Context())
	render.JSON(w, r, TablesResponse{Tables: tables, Count: len(tables)})
}

// RemoveTable handles DELETE /api/tables/{slot}
func (h *TableHandler) RemoveTable(w http.ResponseWriter, r *http.Request) {
	slot := services.Slot(chi.URLParam(r, "slot"))

	if err := h.service.RemoveTable(r.Context(), slot); err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
