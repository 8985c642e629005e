package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/translation/service"
	httputil "github.com/Dotlabs-uz/pilavtour-admin/pkg/http"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
)

type TranslationHandler struct {
	service service.TranslationService
	log     *logger.Logger
}

func NewTranslationHandler(service service.TranslationService, log *logger.Logger) *TranslationHandler {
	return &TranslationHandler{
		service: service,
		log:     log,
	}
}

func (h *TranslationHandler) Translate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.ProxyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Translate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	translations, err := h.service.Proxy(r.Context(), req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Translate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, translations); err != nil {
		h.log.Error("failed to write success response", "handler", "Translate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *TranslationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/translate", h.Translate)
}
