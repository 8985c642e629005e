package http

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/pagination"
)

type SuccessResponse struct {
	Data any `json:"data"`
}

// PageResponse carries one list page and the token for navigating on.
type PageResponse[T any] struct {
	Data        []T             `json:"data"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
	HasNext     bool            `json:"has_next_page"`
	HasPrevious bool            `json:"has_previous_page"`
	Mode        pagination.Mode `json:"mode"`
	Token       string          `json:"token"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), appErr.Response())
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func WritePage[T any](w http.ResponseWriter, page pagination.Page[T], token string) error {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return WriteJSON(w, http.StatusOK, PageResponse[T]{
		Data:        items,
		Page:        page.Number,
		PageSize:    page.Size,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
		Mode:        page.Mode,
		Token:       token,
	})
}
