package service

import (
	"context"
	"errors"

	"github.com/Dotlabs-uz/pilavtour-admin/internal/changes"
	usererrors "github.com/Dotlabs-uz/pilavtour-admin/internal/users/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/users/repository"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"
)

var SortFields = []string{"created_at"}

type UserService interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, spec pagination.Spec, token string, nav pagination.Nav) (pagination.Page[*model.User], string, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo     repository.UserRepository
	sealer   pagination.Sealer
	notifier *changes.Notifier
	cfg      *config.Config
}

func NewUserService(repo repository.UserRepository, notifier *changes.Notifier, cfg *config.Config) UserService {
	return &userService{
		repo:     repo,
		sealer:   cfg.Client.Sealer,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve user")
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, spec pagination.Spec, token string, nav pagination.Nav) (pagination.Page[*model.User], string, error) {
	if role, ok := spec.Equality["role"]; ok && role != string(model.RoleAdmin) && role != string(model.RoleUser) {
		return pagination.Page[*model.User]{}, "", apperrors.InvalidInput("Invalid role: " + role)
	}

	pager := pagination.New[*model.User](s.repo, userKey, (*model.User).SearchText, spec)
	page, next, err := pagination.Navigate(ctx, pager, s.sealer, token, nav)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "nav", nav, "mode", pager.Mode(), "error", err)
		return pagination.Page[*model.User]{}, "", pagination.ToAppError(err)
	}
	return page, next, nil
}

// Delete removes the user document only. Bookings and reviews that point at
// the user keep their user id and render without a user afterwards.
func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete user")
	}

	s.cfg.Log.Info("User deleted successfully", "id", id)
	s.notifier.Notify(ctx, changes.EntityUser, id, kafka.ActionDeleted)
	return nil
}

func (s *userService) mapRepoError(err error, id, message string) error {
	if errors.Is(err, usererrors.ErrNotFound) {
		return apperrors.NotFoundWithID("User", id)
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func userKey(u *model.User) pagination.Cursor {
	return pagination.TimeCursor(u.CreatedAt, u.ID)
}
