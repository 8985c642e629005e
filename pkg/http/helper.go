package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"
)

// ListOptions describes what a list endpoint accepts.
type ListOptions struct {
	DefaultPageSize int
	SortFields      []string
	EqualityFields  []string
}

type ListParams struct {
	Token string
	Nav   pagination.Nav
	Spec  pagination.Spec
}

// ExtractListParams reads token, nav, sort, direction, q, page_size and the
// allowed equality filters from the query string.
func ExtractListParams(r *http.Request, opts ListOptions) (ListParams, error) {
	query := r.URL.Query()

	nav, ok := pagination.ParseNav(query.Get("nav"))
	if !ok {
		return ListParams{}, apperrors.InvalidInput("invalid nav parameter: " + query.Get("nav"))
	}

	direction, ok := pagination.ParseDirection(query.Get("direction"))
	if !ok {
		return ListParams{}, apperrors.InvalidInput("invalid direction parameter: " + query.Get("direction"))
	}

	sortField := strings.TrimSpace(query.Get("sort"))
	if sortField == "" {
		sortField = pagination.DefaultSortField
	}
	if len(opts.SortFields) > 0 && !slices.Contains(opts.SortFields, sortField) {
		return ListParams{}, apperrors.InvalidInput("invalid sort parameter: " + sortField)
	}

	pageSize := opts.DefaultPageSize
	if s := query.Get("page_size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return ListParams{}, apperrors.InvalidInput("invalid page_size parameter: " + s)
		}
		pageSize = min(v, pagination.MaxPageSize)
	}

	var equality map[string]string
	for _, field := range opts.EqualityFields {
		if v := strings.TrimSpace(query.Get(field)); v != "" {
			if equality == nil {
				equality = make(map[string]string)
			}
			equality[field] = v
		}
	}

	return ListParams{
		Token: query.Get("token"),
		Nav:   nav,
		Spec: pagination.Spec{
			SortField:  sortField,
			Direction:  direction,
			PageSize:   pageSize,
			TextFilter: query.Get("q"),
			Equality:   equality,
		},
	}, nil
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields
// and trailing data.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperrors.TooLarge(maxErr.Limit)
		case errors.Is(err, io.EOF):
			return apperrors.InvalidInput("request body is empty")
		}
		return apperrors.InvalidInput(fmt.Sprintf("invalid request body: %v", err))
	}
	if dec.More() {
		return apperrors.InvalidInput("request body must contain a single JSON object")
	}
	return nil
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
