package pagination

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"testing"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/sealer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID        string
	CreatedAt time.Time
	Price     float64
	Name      string
	Group     string
}

func recordKey(r record) Cursor {
	return TimeCursor(r.CreatedAt, r.ID)
}

func priceKey(r record) Cursor {
	return NumberCursor(r.Price, r.ID)
}

func recordText(r record) []string {
	return []string{r.Name}
}

func less(a, b Cursor) bool {
	if a.Kind == NumberKind {
		if a.Number != b.Number {
			return a.Number < b.Number
		}
	} else if !a.Time.Equal(b.Time) {
		return a.Time.Before(b.Time)
	}
	return a.ID < b.ID
}

// comesAfter reports whether a sorts after b in direction d.
func comesAfter(a, b Cursor, d Direction) bool {
	if d == Asc {
		return less(b, a)
	}
	return less(a, b)
}

// memStore answers queries the way the Mongo source does.
type memStore struct {
	records []record
	queries []Query
	failOn  func(call int) error
	key     KeyFunc[record]
}

func (m *memStore) keyOf(r record) Cursor {
	if m.key != nil {
		return m.key(r)
	}
	return recordKey(r)
}

func (m *memStore) Find(_ context.Context, q Query) ([]record, error) {
	m.queries = append(m.queries, q)
	if m.failOn != nil {
		if err := m.failOn(len(m.queries)); err != nil {
			return nil, err
		}
	}

	order := q.Direction
	if q.Before != nil {
		order = order.Reverse()
	}

	matched := make([]record, 0, len(m.records))
	for _, r := range m.records {
		if g, ok := q.Equality["group"]; ok && r.Group != g {
			continue
		}
		matched = append(matched, r)
	}
	sort.Slice(matched, func(i, j int) bool {
		return comesAfter(m.keyOf(matched[j]), m.keyOf(matched[i]), order)
	})

	out := []record{}
	for _, r := range matched {
		c := m.keyOf(r)
		if q.After != nil && !comesAfter(c, *q.After, q.Direction) {
			continue
		}
		if q.Before != nil && !comesAfter(*q.Before, c, q.Direction) {
			continue
		}
		out = append(out, r)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) delete(id string) {
	m.records = slices.DeleteFunc(m.records, func(r record) bool { return r.ID == id })
}

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func makeRecords(n int) []record {
	out := make([]record, n)
	for i := range out {
		out[i] = record{
			ID:        fmt.Sprintf("r%03d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Name:      fmt.Sprintf("Record %d", i),
			Group:     []string{"a", "b"}[i%2],
		}
	}
	return out
}

func ids(items []record) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.ID
	}
	return out
}

// newestFirst is the default list order.
func newestFirst(records []record) []string {
	sorted := slices.Clone(records)
	sort.Slice(sorted, func(i, j int) bool { return less(recordKey(sorted[j]), recordKey(sorted[i])) })
	return ids(sorted)
}

func walkForward(t *testing.T, p *Pager[record]) ([][]string, []string) {
	t.Helper()
	ctx := context.Background()

	page, err := p.First(ctx)
	require.NoError(t, err)

	var pages [][]string
	var all []string
	for {
		pages = append(pages, ids(page.Items))
		all = append(all, ids(page.Items)...)
		if !page.HasNext {
			return pages, all
		}
		page, err = p.Next(ctx)
		require.NoError(t, err)
	}
}

func TestPager_ForwardVisitsEveryRecordOnce(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25, 37} {
		for _, size := range []int{1, 3, 10} {
			t.Run(fmt.Sprintf("n=%d/size=%d", n, size), func(t *testing.T) {
				store := &memStore{records: makeRecords(n)}
				p := New[record](store, recordKey, recordText, Spec{PageSize: size})

				pages, all := walkForward(t, p)

				wantPages := max((n+size-1)/size, 1)
				assert.Len(t, pages, wantPages)
				if n == 0 {
					assert.Empty(t, all)
					return
				}
				assert.Equal(t, newestFirst(store.records), all)
			})
		}
	}
}

func TestPager_ClientScanVisitsEveryMatchOnce(t *testing.T) {
	records := makeRecords(40)
	for i := range records {
		if i%3 == 0 {
			records[i].Name = "Samarkand day " + records[i].ID
		}
	}
	store := &memStore{records: records}
	p := New[record](store, recordKey, recordText, Spec{PageSize: 4, TextFilter: "SAMARKAND"})

	pages, all := walkForward(t, p)

	var want []record
	for _, r := range records {
		if r.Name[:3] == "Sam" {
			want = append(want, r)
		}
	}
	assert.Len(t, pages, (len(want)+3)/4)
	assert.Equal(t, newestFirst(want), all)
	assert.Len(t, store.queries, 1, "scan mode should fetch the collection once")
	assert.Zero(t, store.queries[0].Limit)
}

func TestPager_TwentyFiveRecordsPageSizeTen(t *testing.T) {
	ctx := context.Background()
	store := &memStore{records: makeRecords(25)}
	p := New[record](store, recordKey, recordText, Spec{PageSize: 10})

	page1, err := p.First(ctx)
	require.NoError(t, err)
	assert.Len(t, page1.Items, 10)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrevious)

	page2, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, page2.Number)

	page3, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)
	assert.False(t, page3.HasNext)
	assert.True(t, page3.HasPrevious)

	back, err := p.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids(page2.Items), ids(back.Items))
	assert.Equal(t, 2, back.Number)
	assert.True(t, back.HasNext)

	_, err = p.Next(ctx)
	require.NoError(t, err)
	_, err = p.Next(ctx)
	assert.ErrorIs(t, err, ErrNoNextPage)
}

func TestPager_PrevAfterNextRestoresPage(t *testing.T) {
	ctx := context.Background()
	for _, dir := range []Direction{Asc, Desc} {
		t.Run(string(dir), func(t *testing.T) {
			store := &memStore{records: makeRecords(31)}
			p := New[record](store, recordKey, recordText, Spec{PageSize: 7, Direction: dir})

			_, err := p.First(ctx)
			require.NoError(t, err)
			for step := 0; step < 3; step++ {
				before := p.Current()
				_, err = p.Next(ctx)
				require.NoError(t, err)
				_, err = p.Next(ctx)
				require.NoError(t, err)
				_, err = p.Prev(ctx)
				require.NoError(t, err)
				after, err := p.Prev(ctx)
				require.NoError(t, err)
				assert.Equal(t, ids(before.Items), ids(after.Items))
				assert.Equal(t, before.Number, after.Number)

				_, err = p.Next(ctx)
				require.NoError(t, err)
			}
		})
	}
}

func TestPager_BackToFirstPageUsesPlainQuery(t *testing.T) {
	ctx := context.Background()
	store := &memStore{records: makeRecords(15)}
	p := New[record](store, recordKey, recordText, Spec{PageSize: 5})

	first, err := p.First(ctx)
	require.NoError(t, err)
	_, err = p.Next(ctx)
	require.NoError(t, err)

	back, err := p.Prev(ctx)
	require.NoError(t, err)

	last := store.queries[len(store.queries)-1]
	assert.Nil(t, last.Before, "returning to page 1 must not use an end anchor")
	assert.Nil(t, last.After)
	assert.Equal(t, ids(first.Items), ids(back.Items))
	assert.Empty(t, p.State().History)
}

func TestPager_BackwardQueryIsReversed(t *testing.T) {
	ctx := context.Background()
	store := &memStore{records: makeRecords(30)}
	p := New[record](store, recordKey, recordText, Spec{PageSize: 5})

	_, err := p.First(ctx)
	require.NoError(t, err)
	page2, err := p.Next(ctx)
	require.NoError(t, err)
	_, err = p.Next(ctx)
	require.NoError(t, err)

	back, err := p.Prev(ctx)
	require.NoError(t, err)

	last := store.queries[len(store.queries)-1]
	require.NotNil(t, last.Before)
	assert.Equal(t, 6, last.Limit)
	assert.Equal(t, ids(page2.Items), ids(back.Items))
}

// byPrice orders records by price, highest first unless asc, the way a
// numeric sort field is listed.
func byPrice(records []record, dir Direction) []string {
	sorted := slices.Clone(records)
	sort.Slice(sorted, func(i, j int) bool {
		return comesAfter(priceKey(sorted[j]), priceKey(sorted[i]), dir)
	})
	return ids(sorted)
}

func TestPager_NumericSortVisitsEveryRecordOnce(t *testing.T) {
	records := makeRecords(23)
	for i := range records {
		// Repeating prices force the id tiebreak.
		records[i].Price = float64((i*7)%10) * 12.5
	}

	for _, dir := range []Direction{Asc, Desc} {
		for _, size := range []int{1, 4, 10} {
			t.Run(fmt.Sprintf("%s/size=%d", dir, size), func(t *testing.T) {
				store := &memStore{records: records, key: priceKey}
				p := New[record](store, priceKey, recordText, Spec{SortField: "price", Direction: dir, PageSize: size})

				pages, all := walkForward(t, p)

				assert.Len(t, pages, (len(records)+size-1)/size)
				assert.Equal(t, byPrice(records, dir), all)
				for _, q := range store.queries[1:] {
					require.NotNil(t, q.After)
					assert.Equal(t, NumberKind, q.After.Kind)
				}
			})
		}
	}
}

func TestPager_NumericSortPrevRestoresPage(t *testing.T) {
	ctx := context.Background()
	records := makeRecords(17)
	for i := range records {
		records[i].Price = float64(i % 4)
	}
	store := &memStore{records: records, key: priceKey}
	p := New[record](store, priceKey, recordText, Spec{SortField: "price", PageSize: 5})

	_, err := p.First(ctx)
	require.NoError(t, err)
	page2, err := p.Next(ctx)
	require.NoError(t, err)
	_, err = p.Next(ctx)
	require.NoError(t, err)

	back, err := p.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids(page2.Items), ids(back.Items))
}

func TestPager_EqualSortValuesAreNotSkipped(t *testing.T) {
	records := makeRecords(12)
	for i := range records {
		records[i].CreatedAt = base
	}
	store := &memStore{records: records}
	p := New[record](store, recordKey, recordText, Spec{PageSize: 5})

	_, all := walkForward(t, p)
	assert.Equal(t, newestFirst(records), all)
}

func TestPager_EqualityFilterInCursorMode(t *testing.T) {
	store := &memStore{records: makeRecords(20)}
	p := New[record](store, recordKey, recordText, Spec{PageSize: 3, Equality: map[string]string{"group": "b"}})

	_, all := walkForward(t, p)

	var want []record
	for _, r := range store.records {
		if r.Group == "b" {
			want = append(want, r)
		}
	}
	assert.Equal(t, newestFirst(want), all)
}

func TestPager_SwitchingToTextFilterResetsToFirstPage(t *testing.T) {
	ctx := context.Background()
	store := &memStore{records: makeRecords(40)}
	p := New[record](store, recordKey, recordText, Spec{PageSize: 5})

	_, err := p.First(ctx)
	require.NoError(t, err)
	_, err = p.Next(ctx)
	require.NoError(t, err)
	_, err = p.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, p.Current().Number)

	page, err := p.SetSpec(ctx, Spec{PageSize: 5, TextFilter: "record 1"})
	require.NoError(t, err)

	assert.Equal(t, ClientScan, page.Mode)
	assert.Equal(t, 1, page.Number)
	assert.False(t, page.HasPrevious)
	assert.Empty(t, p.State().History)
	assert.Nil(t, p.State().First)

	page, err = p.SetSpec(ctx, Spec{PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, ServerCursor, page.Mode)
	assert.Equal(t, 1, page.Number)
}

func TestPager_FailedQueryKeepsPreviousPage(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	store := &memStore{records: makeRecords(20)}
	p := New[record](store, recordKey, recordText, Spec{PageSize: 5})

	page1, err := p.First(ctx)
	require.NoError(t, err)

	store.failOn = func(int) error { return boom }
	current, err := p.Next(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, ids(page1.Items), ids(current.Items))
	assert.Equal(t, 1, p.Current().Number)
	assert.Len(t, store.queries, 2, "failed loads are not retried")

	store.failOn = nil
	page2, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, page2.Number)
}

func TestPager_ReloadAfterDeletingOnlyRecordOnPage(t *testing.T) {
	ctx := context.Background()
	store := &memStore{records: makeRecords(11)}
	p := New[record](store, recordKey, recordText, Spec{PageSize: 10})

	_, err := p.First(ctx)
	require.NoError(t, err)
	page2, err := p.Next(ctx)
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)

	store.delete(page2.Items[0].ID)
	page, err := p.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Len(t, page.Items, 10)
	assert.False(t, page.HasNext)

	store.records = nil
	page, err = p.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestPager_ReloadDropsCachedScan(t *testing.T) {
	ctx := context.Background()
	store := &memStore{records: makeRecords(6)}
	p := New[record](store, recordKey, recordText, Spec{PageSize: 5, TextFilter: "record"})

	page, err := p.First(ctx)
	require.NoError(t, err)
	require.True(t, page.HasNext)

	store.delete("r000")
	page, err = p.Reload(ctx)
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.False(t, page.HasNext)
	assert.Len(t, store.queries, 2)
}

func TestPager_RestoreContinuesFromSavedState(t *testing.T) {
	ctx := context.Background()
	store := &memStore{records: makeRecords(25)}
	spec := Spec{PageSize: 10}

	p := New[record](store, recordKey, recordText, spec)
	_, err := p.First(ctx)
	require.NoError(t, err)
	page2, err := p.Next(ctx)
	require.NoError(t, err)
	page3, err := p.Next(ctx)
	require.NoError(t, err)

	key, err := sealer.GenerateKey()
	require.NoError(t, err)
	s, err := sealer.New(key)
	require.NoError(t, err)

	token, err := EncodeState(s, p.State())
	require.NoError(t, err)

	st, err := DecodeState(s, token)
	require.NoError(t, err)

	resumed := New[record](store, recordKey, recordText, spec)
	require.NoError(t, resumed.Restore(st))
	back, err := resumed.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids(page2.Items), ids(back.Items))

	forward := New[record](store, recordKey, recordText, spec)
	require.NoError(t, forward.Restore(st))
	_, err = forward.Next(ctx)
	assert.ErrorIs(t, err, ErrNoNextPage, "page 3 of 25 at size 10 is the last page")
	assert.Len(t, page3.Items, 5)

	other := New[record](store, recordKey, recordText, Spec{PageSize: 10, Direction: Asc})
	assert.ErrorIs(t, other.Restore(st), ErrStateMismatch)

	bad := st
	bad.First = &Cursor{Kind: "x", ID: "r001"}
	assert.ErrorIs(t, New[record](store, recordKey, recordText, spec).Restore(bad), ErrInvalidState)

	_, err = DecodeState(s, token+"x")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPager_RestoreScanStateRefetches(t *testing.T) {
	ctx := context.Background()
	store := &memStore{records: makeRecords(12)}
	spec := Spec{PageSize: 5, TextFilter: "record"}

	p := New[record](store, recordKey, recordText, spec)
	_, err := p.First(ctx)
	require.NoError(t, err)
	page2, err := p.Next(ctx)
	require.NoError(t, err)

	resumed := New[record](store, recordKey, recordText, spec)
	require.NoError(t, resumed.Restore(p.State()))
	page3, err := resumed.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, page3.Number)
	assert.Len(t, page3.Items, 2)

	back, err := resumed.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids(page2.Items), ids(back.Items))
}

func TestPager_PrevOnFirstPage(t *testing.T) {
	p := New[record](&memStore{records: makeRecords(3)}, recordKey, recordText, Spec{})
	_, err := p.First(context.Background())
	require.NoError(t, err)
	_, err = p.Prev(context.Background())
	assert.ErrorIs(t, err, ErrNoPreviousPage)
}

func TestSpec_Normalization(t *testing.T) {
	s := Spec{PageSize: 1000, Direction: "sideways", TextFilter: "  x  ", Equality: map[string]string{"style": ""}}.normalized()
	assert.Equal(t, MaxPageSize, s.PageSize)
	assert.Equal(t, Desc, s.Direction)
	assert.Equal(t, DefaultSortField, s.SortField)
	assert.Equal(t, "x", s.TextFilter)
	assert.Empty(t, s.Equality)

	assert.Equal(t, Spec{}.Fingerprint(), Spec{PageSize: DefaultPageSize, Direction: Desc}.Fingerprint())
	assert.NotEqual(t, Spec{}.Fingerprint(), Spec{TextFilter: "a"}.Fingerprint())
}
