package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/locale"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gtranslate "google.golang.org/api/translate/v2"
)

// GoogleTranslator calls the Cloud Translation v2 API.
type GoogleTranslator struct {
	svc *gtranslate.Service
}

func NewGoogleTranslator(ctx context.Context, apiKey string, opts ...option.ClientOption) (*GoogleTranslator, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := gtranslate.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation client: %w", err)
	}
	return &GoogleTranslator{svc: svc}, nil
}

func (g *GoogleTranslator) Detect(ctx context.Context, text string) (string, error) {
	resp, err := g.svc.Detections.Detect(&gtranslate.DetectLanguageRequest{
		Q: []string{text},
	}).Context(ctx).Do()
	if err != nil {
		return "", classify(ctx, err)
	}
	if len(resp.Detections) == 0 || len(resp.Detections[0]) == 0 || resp.Detections[0][0] == nil {
		return "", ErrNoResult
	}
	return resp.Detections[0][0].Language, nil
}

func (g *GoogleTranslator) Translate(ctx context.Context, text string, target locale.Language, source string) (string, error) {
	resp, err := g.svc.Translations.Translate(&gtranslate.TranslateTextRequest{
		Q:      []string{text},
		Target: target.ProviderCode(),
		Source: source,
	}).Context(ctx).Do()
	if err != nil {
		return "", classify(ctx, err)
	}
	if len(resp.Translations) == 0 || resp.Translations[0] == nil {
		return "", ErrNoResult
	}
	return resp.Translations[0].TranslatedText, nil
}

// classify separates provider answers (HTTP errors) from calls that never
// reached the provider.
func classify(ctx context.Context, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("translation provider returned %d: %w", apiErr.Code, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
