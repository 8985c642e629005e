package translate

import (
	"context"
	"errors"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/locale"
)

var (
	// ErrUnreachable marks a provider call that never got a response.
	ErrUnreachable = errors.New("translation provider unreachable")

	ErrNotConfigured = errors.New("translation provider is not configured")
	ErrNoResult      = errors.New("translation provider returned no result")
)

// Translator is the external machine-translation provider.
type Translator interface {
	// Detect returns the provider code of the text's language.
	Detect(ctx context.Context, text string) (string, error)
	// Translate translates text into target. An empty source lets the
	// provider detect the language itself.
	Translate(ctx context.Context, text string, target locale.Language, source string) (string, error)
}
