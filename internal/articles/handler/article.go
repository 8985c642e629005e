package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/articles/service"
	httputil "github.com/Dotlabs-uz/pilavtour-admin/pkg/http"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
)

type ArticleHandler struct {
	service     service.ArticleService
	log         *logger.Logger
	listOptions httputil.ListOptions
}

func NewArticleHandler(svc service.ArticleService, log *logger.Logger, pageSize int) *ArticleHandler {
	return &ArticleHandler{
		service: svc,
		log:     log,
		listOptions: httputil.ListOptions{
			DefaultPageSize: pageSize,
			SortFields:      service.SortFields,
			EqualityFields:  []string{"author_id"},
		},
	}
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in model.ArticleInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	article, err := h.service.Create(r.Context(), &in)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, article); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ArticleHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	article, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, article); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in model.ArticleInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	article, err := h.service.Update(r.Context(), ps.ByName("id"), &in)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, article); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ArticleHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ArticleHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/articles", h.Create)
	router.GET("/api/v1/articles", h.List)
	router.GET("/api/v1/articles/id/:id", h.GetByID)
	router.PUT("/api/v1/articles/id/:id", h.Update)
	router.DELETE("/api/v1/articles/id/:id", h.Delete)
}
