package pagination

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

var (
	ErrNoNextPage     = errors.New("no next page")
	ErrNoPreviousPage = errors.New("no previous page")
	ErrStateMismatch  = errors.New("page state does not match the current filters")
	ErrInvalidState   = errors.New("invalid page state")
)

// KeyFunc returns the cursor of a record.
type KeyFunc[T any] func(T) Cursor

// TextFunc returns the display fields the text filter is matched against.
type TextFunc[T any] func(T) []string

// State is everything needed to continue paging from the current page.
type State struct {
	Fingerprint string   `json:"f"`
	Page        int      `json:"p"`
	History     []Cursor `json:"h,omitempty"`
	First       *Cursor  `json:"a,omitempty"`
	Last        *Cursor  `json:"z,omitempty"`
	HasNext     bool     `json:"n,omitempty"`
}

// Pager walks a Source page by page.
//
// Without a text filter it issues cursor range queries and keeps a stack
// of the first cursor of every page it has left behind. With a text filter
// it loads the whole ordered set once, filters it in memory and slices it.
// A Pager is not safe for concurrent use.
type Pager[T any] struct {
	source Source[T]
	key    KeyFunc[T]
	text   TextFunc[T]

	spec  Spec
	state State
	items []T

	scan    []T
	scanned bool
}

func New[T any](source Source[T], key KeyFunc[T], text TextFunc[T], spec Spec) *Pager[T] {
	spec = spec.normalized()
	return &Pager[T]{
		source: source,
		key:    key,
		text:   text,
		spec:   spec,
		state:  State{Fingerprint: spec.Fingerprint()},
	}
}

func (p *Pager[T]) Spec() Spec {
	return p.spec
}

func (p *Pager[T]) Mode() Mode {
	return p.spec.Mode()
}

func (p *Pager[T]) State() State {
	st := p.state
	st.History = slices.Clone(p.state.History)
	return st
}

// Current returns the page that is loaded right now.
func (p *Pager[T]) Current() Page[T] {
	number := max(p.state.Page, 1)
	return Page[T]{
		Items:       slices.Clone(p.items),
		Number:      number,
		Size:        p.spec.PageSize,
		HasNext:     p.state.HasNext,
		HasPrevious: number > 1,
		Mode:        p.spec.Mode(),
	}
}

// Restore continues from a previously saved state. The state must have been
// taken under the same filters; otherwise ErrStateMismatch is returned and
// the pager stays on its initial state.
func (p *Pager[T]) Restore(st State) error {
	if st.Fingerprint != p.spec.Fingerprint() {
		return ErrStateMismatch
	}
	if st.Page < 1 {
		return fmt.Errorf("%w: page %d", ErrInvalidState, st.Page)
	}
	if p.spec.Mode() == ServerCursor {
		if len(st.History) != st.Page-1 {
			return fmt.Errorf("%w: page %d with %d history entries", ErrInvalidState, st.Page, len(st.History))
		}
	} else if len(st.History) != 0 {
		return fmt.Errorf("%w: scan state carries cursor history", ErrInvalidState)
	}
	for _, c := range append(slices.Clone(st.History), cursorsOf(st)...) {
		if !c.valid() {
			return fmt.Errorf("%w: unknown cursor kind %q", ErrInvalidState, c.Kind)
		}
	}

	p.state = st
	p.state.History = slices.Clone(st.History)
	p.items = nil
	p.scan, p.scanned = nil, false
	return nil
}

func cursorsOf(st State) []Cursor {
	var out []Cursor
	if st.First != nil {
		out = append(out, *st.First)
	}
	if st.Last != nil {
		out = append(out, *st.Last)
	}
	return out
}

// SetSpec switches filters or sort order. It always lands on page 1 with an
// empty history and no cached scan.
func (p *Pager[T]) SetSpec(ctx context.Context, spec Spec) (Page[T], error) {
	p.spec = spec.normalized()
	p.state = State{Fingerprint: p.spec.Fingerprint()}
	p.items = nil
	p.scan, p.scanned = nil, false
	return p.First(ctx)
}

// Reload re-runs a fresh first-page query, e.g. after a record was deleted.
func (p *Pager[T]) Reload(ctx context.Context) (Page[T], error) {
	p.scan, p.scanned = nil, false
	return p.First(ctx)
}

func (p *Pager[T]) First(ctx context.Context) (Page[T], error) {
	if p.spec.Mode() == ClientScan {
		scan, err := p.fetchScan(ctx)
		if err != nil {
			return p.Current(), err
		}
		p.scan, p.scanned = scan, true
		return p.commitScan(1), nil
	}

	items, hasNext, err := p.firstPage(ctx)
	if err != nil {
		return p.Current(), err
	}
	return p.commit(items, 1, nil, hasNext), nil
}

func (p *Pager[T]) Next(ctx context.Context) (Page[T], error) {
	if !p.state.HasNext {
		return p.Current(), ErrNoNextPage
	}

	if p.spec.Mode() == ClientScan {
		if err := p.ensureScan(ctx); err != nil {
			return p.Current(), err
		}
		return p.commitScan(p.state.Page + 1), nil
	}

	if p.state.Last == nil || p.state.First == nil {
		return p.Current(), ErrNoNextPage
	}

	q := p.spec.query()
	q.After = p.state.Last
	q.Limit = p.spec.PageSize + 1
	res, err := p.source.Find(ctx, q)
	if err != nil {
		return p.Current(), err
	}
	if len(res) == 0 {
		p.state.HasNext = false
		return p.Current(), ErrNoNextPage
	}

	items, hasNext := p.trim(res)
	history := append(slices.Clone(p.state.History), *p.state.First)
	return p.commit(items, p.state.Page+1, history, hasNext), nil
}

func (p *Pager[T]) Prev(ctx context.Context) (Page[T], error) {
	if p.state.Page <= 1 {
		return p.Current(), ErrNoPreviousPage
	}

	if p.spec.Mode() == ClientScan {
		if err := p.ensureScan(ctx); err != nil {
			return p.Current(), err
		}
		return p.commitScan(p.state.Page - 1), nil
	}

	history := slices.Clone(p.state.History[:len(p.state.History)-1])
	if len(history) == 0 || p.state.First == nil {
		// Back on page 1: a plain limited query, already in order.
		items, hasNext, err := p.firstPage(ctx)
		if err != nil {
			return p.Current(), err
		}
		return p.commit(items, 1, nil, hasNext), nil
	}

	q := p.spec.query()
	q.Before = p.state.First
	q.Limit = p.spec.PageSize + 1
	res, err := p.source.Find(ctx, q)
	if err != nil {
		return p.Current(), err
	}
	items, _ := p.trim(res)
	slices.Reverse(items)
	return p.commit(items, p.state.Page-1, history, true), nil
}

func (p *Pager[T]) firstPage(ctx context.Context) ([]T, bool, error) {
	q := p.spec.query()
	q.Limit = p.spec.PageSize + 1
	res, err := p.source.Find(ctx, q)
	if err != nil {
		return nil, false, err
	}
	items, hasNext := p.trim(res)
	return items, hasNext, nil
}

func (p *Pager[T]) trim(res []T) ([]T, bool) {
	if len(res) > p.spec.PageSize {
		return res[:p.spec.PageSize], true
	}
	return res, false
}

func (p *Pager[T]) commit(items []T, page int, history []Cursor, hasNext bool) Page[T] {
	st := State{
		Fingerprint: p.spec.Fingerprint(),
		Page:        page,
		History:     history,
		HasNext:     hasNext,
	}
	if len(items) > 0 {
		first, last := p.key(items[0]), p.key(items[len(items)-1])
		st.First, st.Last = &first, &last
	}
	p.state = st
	p.items = items
	return p.Current()
}

func (p *Pager[T]) ensureScan(ctx context.Context) error {
	if p.scanned {
		return nil
	}
	scan, err := p.fetchScan(ctx)
	if err != nil {
		return err
	}
	p.scan, p.scanned = scan, true
	return nil
}

func (p *Pager[T]) fetchScan(ctx context.Context) ([]T, error) {
	all, err := p.source.Find(ctx, p.spec.query())
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(p.spec.TextFilter)
	out := make([]T, 0, len(all))
	for _, item := range all {
		for _, field := range p.text(item) {
			if strings.Contains(fold.String(field), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out, nil
}

// commitScan slices the cached scan. A page past the end, which happens
// when records were deleted since the state was saved, is clamped to the
// last page.
func (p *Pager[T]) commitScan(page int) Page[T] {
	size := p.spec.PageSize
	total := len(p.scan)
	lastPage := max((total+size-1)/size, 1)
	page = min(max(page, 1), lastPage)

	start := (page - 1) * size
	end := min(start+size, total)

	p.state = State{
		Fingerprint: p.spec.Fingerprint(),
		Page:        page,
		HasNext:     end < total,
	}
	p.items = p.scan[start:end]
	return p.Current()
}
