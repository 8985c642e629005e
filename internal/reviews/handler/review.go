package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/reviews/service"
	httputil "github.com/Dotlabs-uz/pilavtour-admin/pkg/http"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
)

type ReviewHandler struct {
	service     service.ReviewService
	log         *logger.Logger
	listOptions httputil.ListOptions
}

func NewReviewHandler(svc service.ReviewService, log *logger.Logger, pageSize int) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		log:     log,
		listOptions: httputil.ListOptions{
			DefaultPageSize: pageSize,
			SortFields:      service.SortFields,
			EqualityFields:  []string{"tour_id", "article_id"},
		},
	}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	params, err := httputil.ExtractListParams(r, h.listOptions)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	page, token, err := h.service.List(r.Context(), params.Spec, params.Token, params.Nav)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePage(w, page, token); err != nil {
		h.log.Error("failed to write page response", "handler", "List", "operation", "WritePage", "error", err)
	}
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReviewHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ReviewHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/reviews", h.List)
	router.DELETE("/api/v1/reviews/id/:id", h.Delete)
}
