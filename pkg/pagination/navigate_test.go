package pagination

import (
	"context"
	"errors"
	"net/http"
	"testing"

	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/sealer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSealer(t *testing.T) *sealer.Sealer {
	t.Helper()
	key, err := sealer.GenerateKey()
	require.NoError(t, err)
	s, err := sealer.New(key)
	require.NoError(t, err)
	return s
}

func TestNavigate_StatelessWalk(t *testing.T) {
	ctx := context.Background()
	store := &memStore{records: makeRecords(25)}
	s := testSealer(t)
	spec := Spec{PageSize: 10}

	request := func(token string, nav Nav) (Page[record], string) {
		t.Helper()
		p := New[record](store, recordKey, recordText, spec)
		page, next, err := Navigate(ctx, p, s, token, nav)
		require.NoError(t, err)
		return page, next
	}

	page1, tok1 := request("", NavFirst)
	page2, tok2 := request(tok1, NavNext)
	page3, tok3 := request(tok2, NavNext)
	assert.Equal(t, 3, page3.Number)
	assert.False(t, page3.HasNext)
	assert.Len(t, page3.Items, 5)

	back, _ := request(tok3, NavPrev)
	assert.Equal(t, ids(page2.Items), ids(back.Items))

	first, _ := request(tok2, NavPrev)
	assert.Equal(t, ids(page1.Items), ids(first.Items))

	reloaded, _ := request(tok3, NavReload)
	assert.Equal(t, 1, reloaded.Number)
}

func TestNavigate_TokenFromOtherFiltersStartsOver(t *testing.T) {
	ctx := context.Background()
	store := &memStore{records: makeRecords(25)}
	s := testSealer(t)

	p := New[record](store, recordKey, recordText, Spec{PageSize: 10})
	_, tok, err := Navigate(ctx, p, s, "", NavFirst)
	require.NoError(t, err)
	p = New[record](store, recordKey, recordText, Spec{PageSize: 10})
	_, tok, err = Navigate(ctx, p, s, tok, NavNext)
	require.NoError(t, err)

	filtered := New[record](store, recordKey, recordText, Spec{PageSize: 10, TextFilter: "record 1"})
	page, _, err := Navigate(ctx, filtered, s, tok, NavNext)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, ClientScan, page.Mode)
}

func TestNavigate_NoTokenIgnoresNav(t *testing.T) {
	p := New[record](&memStore{records: makeRecords(3)}, recordKey, recordText, Spec{})
	page, tok, err := Navigate(context.Background(), p, testSealer(t), "", NavNext)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.NotEmpty(t, tok)
}

func TestNavigate_GarbageToken(t *testing.T) {
	p := New[record](&memStore{records: makeRecords(3)}, recordKey, recordText, Spec{})
	_, _, err := Navigate(context.Background(), p, testSealer(t), "garbage", NavNext)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestParseNav(t *testing.T) {
	for in, want := range map[string]Nav{"": NavFirst, "first": NavFirst, "NEXT": NavNext, " prev ": NavPrev, "reload": NavReload} {
		got, ok := ParseNav(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseNav("sideways")
	assert.False(t, ok)
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{ErrNoNextPage, http.StatusBadRequest},
		{ErrNoPreviousPage, http.StatusBadRequest},
		{ErrInvalidState, http.StatusBadRequest},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("connection reset"), http.StatusInternalServerError},
		{apperrors.Forbidden("no"), http.StatusForbidden},
	}

	for _, tt := range tests {
		var appErr *apperrors.AppError
		require.ErrorAs(t, ToAppError(tt.err), &appErr)
		assert.Equal(t, tt.status, appErr.StatusCode(), tt.err.Error())
	}
	assert.NoError(t, ToAppError(nil))
}
