package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/httpclient"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

const DefaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("identity token rejected")
	ErrUnavailable        = errors.New("identity provider unavailable")
	ErrNotConfigured      = errors.New("identity provider is not configured")
)

type Identity struct {
	UID   string
	Email string
}

// Provider authenticates admins against the external identity service.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
	RevokeSessions(ctx context.Context, uid string) error
}

type Config struct {
	ProjectID       string
	CredentialsFile string
	CredentialsJSON string
	APIKey          string
	ToolkitURL      string
	Timeout         time.Duration
}

// tokenAuthority is the part of *auth.Client this package needs.
type tokenAuthority interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

type Firebase struct {
	authority tokenAuthority
	rest      *httpclient.HttpClient
	apiKey    string
}

func NewFirebase(ctx context.Context, cfg Config) (*Firebase, error) {
	if cfg.APIKey == "" || cfg.ProjectID == "" {
		return nil, ErrNotConfigured
	}

	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}

	return newFirebase(authClient, cfg), nil
}

func newFirebase(authority tokenAuthority, cfg Config) *Firebase {
	base := cfg.ToolkitURL
	if base == "" {
		base = DefaultIdentityToolkitURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Firebase{
		authority: authority,
		rest:      httpclient.New(strings.TrimSuffix(base, "/"), timeout),
		apiKey:    cfg.APIKey,
	}
}

type passwordSignInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type passwordSignInResponse struct {
	IDToken string `json:"idToken"`
	LocalID string `json:"localId"`
	Email   string `json:"email"`
}

type toolkitError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn exchanges email and password for an ID token and verifies it.
func (f *Firebase) SignIn(ctx context.Context, email, password string) (Identity, error) {
	path := "/v1/accounts:signInWithPassword?key=" + url.QueryEscape(f.apiKey)
	resp, err := f.rest.POST(ctx, path, passwordSignInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Identity{}, ctxErr
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if !resp.OK() {
		var te toolkitError
		_ = resp.DecodeJSON(&te)
		if resp.StatusCode == http.StatusBadRequest && isCredentialError(te.Error.Message) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("%w: status %d %s", ErrUnavailable, resp.StatusCode, te.Error.Message)
	}

	var out passwordSignInResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return Identity{}, fmt.Errorf("%w: malformed sign-in response: %v", ErrUnavailable, err)
	}

	token, err := f.authority.VerifyIDToken(ctx, out.IDToken)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := Identity{UID: token.UID, Email: out.Email}
	if claim, ok := token.Claims["email"].(string); ok && claim != "" {
		id.Email = claim
	}
	return id, nil
}

func (f *Firebase) RevokeSessions(ctx context.Context, uid string) error {
	if err := f.authority.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("failed to revoke sessions for %s: %w", uid, err)
	}
	return nil
}

func isCredentialError(msg string) bool {
	// Messages may carry a suffix such as "TOO_MANY_ATTEMPTS_TRY_LATER : ...".
	code, _, _ := strings.Cut(msg, " ")
	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL", "USER_DISABLED", "MISSING_PASSWORD":
		return true
	}
	return false
}
