package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/storage"
)

// Entities that accept image uploads.
var Entities = []string{"tours", "articles"}

var imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

const sniffLen = 512

type AdminResolver interface {
	ResolveAdmin(ctx context.Context, uid string) (*model.Admin, error)
}

type UploadRequest struct {
	AdminID  string
	Entity   string
	EntityID string
	Filename string
	Size     int64
	Body     io.Reader
}

type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type UploadService interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
}

type uploadService struct {
	storage      storage.Storage
	admins       AdminResolver
	stateTimeout time.Duration
	log          *logger.Logger
	now          func() time.Time
}

func NewUploadService(admins AdminResolver, cfg *config.Config) UploadService {
	return &uploadService{
		storage:      cfg.Client.Storage,
		admins:       admins,
		stateTimeout: cfg.AuthStateTimeout,
		log:          cfg.Log,
		now:          time.Now,
	}
}

// Upload stores an image under entity/id/millis-name. The caller's admin
// status is resolved again first and the upload is refused if that does not
// finish within the auth state timeout.
func (s *uploadService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if s.storage == nil {
		return nil, apperrors.Unavailable("object storage")
	}
	if !slices.Contains(Entities, req.Entity) {
		return nil, apperrors.InvalidInput("uploads are accepted for tours and articles only")
	}
	if req.Body == nil {
		return nil, apperrors.InvalidInput("file is required")
	}

	if err := s.checkAdmin(ctx, req.AdminID); err != nil {
		return nil, err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(req.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apperrors.InvalidInput("failed to read uploaded file")
	}
	if n == 0 {
		return nil, apperrors.InvalidInput("uploaded file is empty")
	}
	head = head[:n]

	contentType, _, _ := strings.Cut(http.DetectContentType(head), ";")
	if !slices.Contains(imageTypes, contentType) {
		return nil, apperrors.UnsupportedMediaType("only JPEG, PNG, WebP and GIF images are accepted")
	}

	key := storage.ObjectKey(req.Entity, strings.TrimSpace(req.EntityID), req.Filename, s.now())
	url, err := s.storage.Put(ctx, key, io.MultiReader(bytes.NewReader(head), req.Body), req.Size, contentType)
	if err != nil {
		s.log.Error("Failed to upload image", "key", key, "error", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Timeout("image upload timed out")
		}
		return nil, apperrors.Unavailable("object storage")
	}

	s.log.Info("Image uploaded", "key", key, "size", req.Size, "content_type", contentType)
	return &UploadResult{URL: url, Key: key}, nil
}

func (s *uploadService) checkAdmin(ctx context.Context, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, s.stateTimeout)
	defer cancel()

	type result struct {
		admin *model.Admin
		err   error
	}
	done := make(chan result, 1)
	go func() {
		admin, err := s.admins.ResolveAdmin(ctx, uid)
		done <- result{admin, err}
	}()

	select {
	case <-ctx.Done():
		return s.abandoned(ctx, uid)
	case res := <-done:
		switch {
		case res.err != nil && ctx.Err() != nil:
			return s.abandoned(ctx, uid)
		case res.err != nil:
			s.log.Error("Failed to resolve admin state", "uid", uid, "error", res.err)
			return apperrors.Internal("Failed to resolve admin state", res.err)
		case res.admin == nil:
			return apperrors.Forbidden("Access denied: admin privileges required")
		}
		return nil
	}
}

// abandoned reports why ctx ended before the admin state was known: the
// wait timed out, or the caller went away.
func (s *uploadService) abandoned(ctx context.Context, uid string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		s.log.Warn("Admin state resolution timed out", "uid", uid, "timeout", s.stateTimeout)
		return apperrors.Timeout("timed out resolving admin state")
	}
	s.log.Info("Upload canceled while resolving admin state", "uid", uid)
	return apperrors.Canceled(ctx.Err())
}
