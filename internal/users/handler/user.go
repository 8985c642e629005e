package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/users/service"
	httputil "github.com/Dotlabs-uz/pilavtour-admin/pkg/http"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
)

type UserHandler struct {
	service     service.UserService
	log         *logger.Logger
	listOptions httputil.ListOptions
}

func NewUserHandler(svc service.UserService, log *logger.Logger, pageSize int) *UserHandler {
	return &UserHandler{
		service: svc,
		log:     log,
		listOptions: httputil.ListOptions{
			DefaultPageSize: pageSize,
			SortFields:      service.SortFields,
			EqualityFields:  []string{"role"},
		},
	}
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *UserHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/users", h.List)
	router.GET("/api/v1/users/id/:id", h.GetByID)
	router.DELETE("/api/v1/users/id/:id", h.Delete)
}
