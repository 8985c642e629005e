package service

import (
	"context"
	"errors"
	"strings"
	"time"

	articleerrors "github.com/Dotlabs-uz/pilavtour-admin/internal/articles/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/articles/repository"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/articles/validator"
	"github.com/Dotlabs-uz/pilavtour-admin/internal/changes"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	mongodb "github.com/Dotlabs-uz/pilavtour-admin/pkg/db/mongo"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/translate"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/validation"
)

var SortFields = []string{"created_at", "updated_at"}

type ArticleService interface {
	Create(ctx context.Context, in *model.ArticleInput) (*model.Article, error)
	GetByID(ctx context.Context, id string) (*model.Article, error)
	List(ctx context.Context, spec pagination.Spec, token string, nav pagination.Nav) (pagination.Page[*model.Article], string, error)
	Update(ctx context.Context, id string, in *model.ArticleInput) (*model.Article, error)
	Delete(ctx context.Context, id string) error
}

type Translator interface {
	Shape(ctx context.Context, root translate.Node) (translate.Result, error)
}

type articleService struct {
	repo       repository.ArticleRepository
	validator  *validator.ArticleValidator
	translator Translator
	sealer     pagination.Sealer
	notifier   *changes.Notifier
	cfg        *config.Config
	now        func() time.Time
}

func NewArticleService(
	repo repository.ArticleRepository,
	validator *validator.ArticleValidator,
	translator Translator,
	notifier *changes.Notifier,
	cfg *config.Config,
) ArticleService {
	return &articleService{
		repo:       repo,
		validator:  validator,
		translator: translator,
		sealer:     cfg.Client.Sealer,
		notifier:   notifier,
		cfg:        cfg,
		now:        mongodb.Now,
	}
}

func (s *articleService) Create(ctx context.Context, in *model.ArticleInput) (*model.Article, error) {
	article, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	article.CreatedAt = now
	article.UpdatedAt = now

	if err := s.repo.Create(ctx, article); err != nil {
		s.cfg.Log.Error("Failed to create article", "error", err)
		return nil, apperrors.Internal("Failed to create article", err)
	}

	s.cfg.Log.Info("Article created successfully", "id", article.ID)
	s.notifier.Notify(ctx, changes.EntityArticle, article.ID, kafka.ActionCreated)
	return article, nil
}

func (s *articleService) GetByID(ctx context.Context, id string) (*model.Article, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Article ID cannot be empty")
	}

	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve article")
	}
	return article, nil
}

func (s *articleService) List(ctx context.Context, spec pagination.Spec, token string, nav pagination.Nav) (pagination.Page[*model.Article], string, error) {
	pager := pagination.New[*model.Article](s.repo, articleKey(spec.SortField), (*model.Article).SearchText, spec)

	page, next, err := pagination.Navigate(ctx, pager, s.sealer, token, nav)
	if err != nil {
		s.cfg.Log.Error("Failed to list articles", "nav", nav, "mode", pager.Mode(), "error", err)
		return pagination.Page[*model.Article]{}, "", pagination.ToAppError(err)
	}
	return page, next, nil
}

func (s *articleService) Update(ctx context.Context, id string, in *model.ArticleInput) (*model.Article, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Article ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to check article existence")
	}

	article, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}

	article.ID = existing.ID
	article.CreatedAt = existing.CreatedAt
	article.UpdatedAt = s.now()
	if !article.UpdatedAt.After(existing.UpdatedAt) {
		article.UpdatedAt = existing.UpdatedAt.Add(time.Millisecond)
	}

	if err := s.repo.Replace(ctx, id, article); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update article")
	}

	s.cfg.Log.Info("Article updated successfully", "id", id)
	s.notifier.Notify(ctx, changes.EntityArticle, id, kafka.ActionUpdated)
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Article ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete article")
	}

	s.cfg.Log.Info("Article deleted successfully", "id", id)
	s.notifier.Notify(ctx, changes.EntityArticle, id, kafka.ActionDeleted)
	return nil
}

func (s *articleService) build(ctx context.Context, in *model.ArticleInput) (*model.Article, error) {
	if in == nil {
		return nil, apperrors.InvalidInput("Article payload is required")
	}
	in.CoverImage = strings.TrimSpace(in.CoverImage)
	in.AuthorID = strings.TrimSpace(in.AuthorID)

	if err := s.validator.ValidateInput(in); err != nil {
		s.cfg.Log.Warn("Article validation failed", "error", err)
		return nil, validation.AsAppError(err, "Article validation failed")
	}

	res, err := s.translator.Shape(ctx, translate.Record(map[string]translate.Node{
		"title":       translate.Leaf(in.Title),
		"description": translate.Leaf(in.Description),
	}))
	if err != nil {
		return nil, err
	}

	article := &model.Article{
		Title:       res.Field("title").Text,
		Description: res.Field("description").Text,
		CoverImage:  in.CoverImage,
		Likes:       in.Likes,
		Views:       in.Views,
		AuthorID:    in.AuthorID,
	}
	if err := s.validator.Validate(article); err != nil {
		s.cfg.Log.Warn("Translated article failed validation", "error", err)
		return nil, validation.AsAppError(err, "Article validation failed")
	}
	return article, nil
}

func (s *articleService) mapRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, articleerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Article", id)
	case errors.Is(err, articleerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid article ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func articleKey(field string) pagination.KeyFunc[*model.Article] {
	return func(a *model.Article) pagination.Cursor {
		if field == "updated_at" {
			return pagination.TimeCursor(a.UpdatedAt, a.ID)
		}
		return pagination.TimeCursor(a.CreatedAt, a.ID)
	}
}
