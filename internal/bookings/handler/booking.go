package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/bookings/service"
	httputil "github.com/Dotlabs-uz/pilavtour-admin/pkg/http"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
)

type BookingHandler struct {
	service     service.BookingService
	log         *logger.Logger
	listOptions httputil.ListOptions
}

func NewBookingHandler(svc service.BookingService, log *logger.Logger, pageSize int) *BookingHandler {
	return &BookingHandler{
		service: svc,
		log:     log,
		listOptions: httputil.ListOptions{
			DefaultPageSize: pageSize,
			SortFields:      service.SortFields,
			EqualityFields:  []string{"status", "user_id", "tour_id"},
		},
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.BookingUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	booking, err := h.service.Update(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) Generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.Seed(r.Context())
	if err != nil {
		h.writeError(w, "Generate", err)
		return
	}

	if err := httputil.WriteCreated(w, bookings); err != nil {
		h.log.Error("failed to write created response", "handler", "Generate", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/bookings", h.List)
	router.POST("/api/v1/bookings/generate", h.Generate)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/id/:id", h.Update)
	router.DELETE("/api/v1/bookings/id/:id", h.Delete)
}
