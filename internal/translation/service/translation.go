package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/config"
	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/locale"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/translate"
)

// ProxyRequest is the body of the translation proxy endpoint.
type ProxyRequest struct {
	Text            string   `json:"text"`
	TargetLanguages []string `json:"targetLanguages"`
	DetectLanguage  bool     `json:"detectLanguage,omitempty"`
}

type TranslationService interface {
	// Shape translates every leaf of a form payload into all languages.
	Shape(ctx context.Context, root translate.Node) (translate.Result, error)
	// Proxy translates one string into the requested languages.
	Proxy(ctx context.Context, req ProxyRequest) (map[locale.Language]string, error)
}

type translationService struct {
	forms       *translate.Pipeline
	plain       *translate.Pipeline
	detecting   *translate.Pipeline
	concurrency int
	log         *logger.Logger
}

func NewTranslationService(cfg *config.Config) TranslationService {
	return newTranslationService(cfg.Client.Translator, cache(cfg), cfg.Log, cfg.TranslateDetectSource, cfg.TranslateConcurrency)
}

func cache(cfg *config.Config) translate.Cache {
	if cfg.Client.Redis == nil {
		return nil
	}
	return translate.NewRedisCache(cfg.Client.Redis, cfg.TranslateCacheTTL)
}

func newTranslationService(tr translate.Translator, c translate.Cache, log *logger.Logger, detect bool, concurrency int) *translationService {
	s := &translationService{concurrency: concurrency, log: log}
	if tr == nil {
		return s
	}
	s.plain = translate.NewPipeline(tr, c, log, translate.Options{Concurrency: concurrency})
	s.detecting = translate.NewPipeline(tr, c, log, translate.Options{DetectSource: true, Concurrency: concurrency})
	s.forms = s.plain
	if detect {
		s.forms = s.detecting
	}
	return s
}

func (s *translationService) Shape(ctx context.Context, root translate.Node) (translate.Result, error) {
	var (
		res translate.Result
		err error
	)
	if s.forms != nil {
		res, err = s.forms.Shape(ctx, root)
	} else {
		res, err = translate.Walk(ctx, root, offlineLeaf, s.concurrency)
	}
	if err != nil {
		s.log.Error("Form translation failed", "error", err)
		return translate.Result{}, toAppError(err)
	}
	return res, nil
}

// offlineLeaf keeps blank and localized input working without a provider.
func offlineLeaf(ctx context.Context, in model.TextInput) (model.MultiLangText, error) {
	if !in.NeedsTranslation() {
		return *in.Values, nil
	}
	if strings.TrimSpace(in.Source) == "" {
		return model.MultiLangText{}, nil
	}
	return model.MultiLangText{}, translate.ErrNotConfigured
}

func (s *translationService) Proxy(ctx context.Context, req ProxyRequest) (map[locale.Language]string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.InvalidInput("text is required")
	}
	if len(req.TargetLanguages) == 0 {
		return nil, apperrors.InvalidInput("targetLanguages is required")
	}
	targets, err := locale.ParseAll(req.TargetLanguages)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	p := s.plain
	if req.DetectLanguage {
		p = s.detecting
	}
	if p == nil {
		return nil, toAppError(translate.ErrNotConfigured)
	}

	out, err := p.Translate(ctx, req.Text, targets)
	if err != nil {
		s.log.Error("Proxy translation failed",
			"targets", len(targets),
			"error", err,
		)
		return nil, toAppError(err)
	}
	return out, nil
}

func toAppError(err error) error {
	switch {
	case errors.Is(err, translate.ErrNotConfigured), errors.Is(err, translate.ErrUnreachable):
		return apperrors.Unavailable("translation service")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout("translation timed out")
	case apperrors.IsAppError(err):
		return err
	default:
		return apperrors.Internal("Failed to translate text", err)
	}
}
