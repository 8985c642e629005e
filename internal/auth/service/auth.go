package service

import (
	"context"
	"errors"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/identity"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/sanitizer"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/session"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignInResponse struct {
	Session session.Token `json:"session"`
	Admin   *model.Admin  `json:"admin"`
}

type AdminResolver interface {
	ResolveAdmin(ctx context.Context, uid string) (*model.Admin, error)
}

type AuthService interface {
	SignIn(ctx context.Context, req *SignInRequest) (*SignInResponse, error)
}

type authService struct {
	identity identity.Provider
	sessions *session.Manager
	admins   AdminResolver
	validate *validator.Validate
	log      *logger.Logger
}

func NewAuthService(admins AdminResolver, cfg *config.Config) AuthService {
	return &authService{
		identity: cfg.Client.Identity,
		sessions: cfg.Client.Sessions,
		admins:   admins,
		validate: validation.New(cfg.Log),
		log:      cfg.Log,
	}
}

// SignIn authenticates with the identity provider and issues a session for
// allow-listed admins. Anyone else is signed out of the provider again and
// refused.
func (s *authService) SignIn(ctx context.Context, req *SignInRequest) (*SignInResponse, error) {
	if s.identity == nil {
		return nil, apperrors.Unavailable("identity provider")
	}
	if s.sessions == nil {
		return nil, apperrors.Unavailable("session signing")
	}

	req.Email = sanitizer.SanitizeEmail(req.Email)
	if err := validation.Struct(s.validate, req); err != nil {
		return nil, validation.AsAppError(err, "Invalid sign-in request")
	}

	id, err := s.identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.mapIdentityError(err, req.Email)
	}

	admin, err := s.admins.ResolveAdmin(ctx, id.UID)
	if err != nil {
		s.log.Error("Failed to resolve admin", "uid", id.UID, "error", err)
		return nil, apperrors.Internal("Failed to check admin access", err)
	}
	if admin == nil {
		if err := s.identity.RevokeSessions(ctx, id.UID); err != nil {
			s.log.Warn("Failed to sign out non-admin user", "uid", id.UID, "error", err)
		}
		s.log.Warn("Sign-in refused for non-admin user", "uid", id.UID, "email", id.Email)
		return nil, apperrors.Forbidden("Access denied: admin privileges required")
	}

	token, err := s.sessions.Issue(admin.ID, id.Email)
	if err != nil {
		s.log.Error("Failed to issue session", "uid", admin.ID, "error", err)
		return nil, apperrors.Internal("Failed to issue session", err)
	}

	s.log.Info("Admin signed in", "uid", admin.ID, "email", id.Email)
	return &SignInResponse{Session: token, Admin: admin}, nil
}

func (s *authService) mapIdentityError(err error, email string) error {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials), errors.Is(err, identity.ErrInvalidToken):
		s.log.Info("Sign-in rejected", "email", email, "error", err)
		return apperrors.Unauthorized("Invalid email or password")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout("identity provider timed out")
	case errors.Is(err, identity.ErrUnavailable), errors.Is(err, identity.ErrNotConfigured):
		s.log.Error("Identity provider unavailable", "error", err)
		return apperrors.Unavailable("identity provider")
	}
	s.log.Error("Sign-in failed", "email", email, "error", err)
	return apperrors.Internal("Sign-in failed", err)
}
