package pagination

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
)

// Nav is one step of stateless navigation over HTTP.
type Nav string

const (
	NavFirst  Nav = ""
	NavNext   Nav = "next"
	NavPrev   Nav = "prev"
	NavReload Nav = "reload"
)

func ParseNav(s string) (Nav, bool) {
	switch n := Nav(strings.ToLower(strings.TrimSpace(s))); n {
	case NavFirst, NavNext, NavPrev, NavReload:
		return n, true
	case "first":
		return NavFirst, true
	}
	return "", false
}

// Navigate resumes p from token and applies nav, returning the new page and
// the token for it. A token taken under other filters is ignored and the
// first page is loaded instead.
func Navigate[T any](ctx context.Context, p *Pager[T], s Sealer, token string, nav Nav) (Page[T], string, error) {
	if token == "" {
		nav = NavFirst
	}
	if nav != NavFirst {
		st, err := DecodeState(s, token)
		if err != nil {
			return Page[T]{}, "", err
		}
		if err := p.Restore(st); err != nil {
			if !errors.Is(err, ErrStateMismatch) {
				return Page[T]{}, "", err
			}
			nav = NavFirst
		}
	}

	var (
		page Page[T]
		err  error
	)
	switch nav {
	case NavNext:
		page, err = p.Next(ctx)
	case NavPrev:
		page, err = p.Prev(ctx)
	case NavReload:
		page, err = p.Reload(ctx)
	default:
		page, err = p.First(ctx)
	}
	if err != nil {
		return page, "", err
	}

	next, err := EncodeState(s, p.State())
	if err != nil {
		return page, "", err
	}
	return page, next, nil
}

// ToAppError maps navigation failures to API errors. Source errors pass
// through wrapped as internal errors.
func ToAppError(err error) error {
	var appErr *apperrors.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, ErrNoNextPage):
		return apperrors.InvalidInput("already on the last page")
	case errors.Is(err, ErrNoPreviousPage):
		return apperrors.InvalidInput("already on the first page")
	case errors.Is(err, ErrInvalidState):
		return apperrors.InvalidInput("invalid page token")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout("list query timed out")
	}
	return apperrors.Internal("failed to load page", err)
}
