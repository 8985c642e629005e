package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/locale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestTranslator(t *testing.T, h http.HandlerFunc) *GoogleTranslator {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	g, err := NewGoogleTranslator(context.Background(), "test-key",
		option.WithEndpoint(srv.URL+"/language/translate/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return g
}

func TestGoogleTranslator_Translate(t *testing.T) {
	var gotTarget string
	g := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Data struct {
				Q      []string `json:"q"`
				Target string   `json:"target"`
			} `json:"data"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotTarget = body.Data.Target
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"Hallo"}]}}`))
	})

	got, err := g.Translate(context.Background(), "Hello", locale.German, "en")
	require.NoError(t, err)
	assert.Equal(t, "Hallo", got)
	assert.Equal(t, "de", gotTarget)
}

func TestGoogleTranslator_Detect(t *testing.T) {
	g := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/detect"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"detections":[[{"language":"ru","confidence":1}]]}}`))
	})

	got, err := g.Detect(context.Background(), "Привет")
	require.NoError(t, err)
	assert.Equal(t, "ru", got)
}

func TestGoogleTranslator_StatusErrorIsNotUnreachable(t *testing.T) {
	g := newTestTranslator(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quota"}}`))
	})

	_, err := g.Translate(context.Background(), "Hello", locale.Italian, "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnreachable))
}

func TestGoogleTranslator_TransportErrorIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g, err := NewGoogleTranslator(context.Background(), "test-key",
		option.WithEndpoint(url+"/language/translate/"),
		option.WithHTTPClient(http.DefaultClient),
	)
	require.NoError(t, err)

	_, err = g.Translate(context.Background(), "Hello", locale.Italian, "")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestNewGoogleTranslator_RequiresKey(t *testing.T) {
	_, err := NewGoogleTranslator(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
