package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/auth/service"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	httputil "github.com/Dotlabs-uz/pilavtour-admin/pkg/http"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/middleware"
)

const SignInPath = "/api/v1/auth/sign-in"

type AuthHandler struct {
	service service.AuthService
	log     *logger.Logger
}

func NewAuthHandler(svc service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: svc,
		log:     log,
	}
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req service.SignInRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "SignIn", err)
		return
	}

	resp, err := h.service.SignIn(r.Context(), &req)
	if err != nil {
		h.writeError(w, "SignIn", err)
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "SignIn", "operation", "WriteSuccess", "error", err)
	}
}

// Me returns the admin RequireAdmin resolved for this request.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	admin, ok := middleware.AdminFrom(r.Context())
	if !ok {
		h.writeError(w, "Me", apperrors.Unauthorized("Authentication required"))
		return
	}

	if err := httputil.WriteSuccess(w, admin); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(SignInPath, h.SignIn)
	router.GET("/api/v1/auth/me", h.Me)
}
