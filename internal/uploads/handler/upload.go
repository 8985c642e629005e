package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/uploads/service"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	httputil "github.com/Dotlabs-uz/pilavtour-admin/pkg/http"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/middleware"
)

// multipartMemory is how much of a form is buffered before spilling to disk.
const multipartMemory = 8 << 20

type UploadHandler struct {
	service service.UploadService
	log     *logger.Logger
}

func NewUploadHandler(svc service.UploadService, log *logger.Logger) *UploadHandler {
	return &UploadHandler{
		service: svc,
		log:     log,
	}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	admin, ok := middleware.AdminFrom(r.Context())
	if !ok {
		h.writeError(w, "Upload", apperrors.Unauthorized("Authentication required"))
		return
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, "Upload", apperrors.TooLarge(maxErr.Limit))
			return
		}
		h.writeError(w, "Upload", apperrors.InvalidInput("request must be multipart/form-data"))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.log.Warn("failed to remove multipart temp files", "error", err)
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, "Upload", apperrors.InvalidInput("file is required"))
		return
	}
	defer file.Close()

	result, err := h.service.Upload(r.Context(), service.UploadRequest{
		AdminID:  admin.ID,
		Entity:   ps.ByName("entity"),
		EntityID: r.FormValue("entity_id"),
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		h.writeError(w, "Upload", err)
		return
	}

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write created response", "handler", "Upload", "operation", "WriteCreated", "error", err)
	}
}

func (h *UploadHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *UploadHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/uploads/:entity", h.Upload)
}
