package pagination

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

const (
	DefaultSortField = "created_at"
	DefaultPageSize  = 10
	MaxPageSize      = 100
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Desc:
		return Desc, true
	case Asc:
		return Asc, true
	}
	return "", false
}

func (d Direction) Reverse() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

type Mode string

const (
	ServerCursor Mode = "cursor"
	ClientScan   Mode = "scan"
)

// CursorKind tags which of a cursor's values holds the sort key.
type CursorKind string

const (
	TimeKind   CursorKind = "t"
	NumberKind CursorKind = "n"
)

// Cursor identifies a record's position in the sort order. ID breaks ties
// between records that share a sort value. A cursor without a kind is a
// time cursor.
type Cursor struct {
	Kind   CursorKind `json:"k,omitempty"`
	Time   time.Time  `json:"t,omitzero"`
	Number float64    `json:"n,omitempty"`
	ID     string     `json:"i"`
}

func TimeCursor(t time.Time, id string) Cursor {
	return Cursor{Kind: TimeKind, Time: t, ID: id}
}

func NumberCursor(n float64, id string) Cursor {
	return Cursor{Kind: NumberKind, Number: n, ID: id}
}

// SortValue is the value a store compares against the sort field.
func (c Cursor) SortValue() any {
	if c.Kind == NumberKind {
		return c.Number
	}
	return c.Time
}

func (c Cursor) valid() bool {
	return c.Kind == "" || c.Kind == TimeKind || c.Kind == NumberKind
}

// Query is what a Source has to answer.
//
// With After set, records strictly after the cursor are returned in Direction
// order. With Before set, records strictly before the cursor are returned
// nearest-first, i.e. in the reverse of Direction. Limit 0 means no limit.
type Query struct {
	SortField string
	Direction Direction
	Equality  map[string]string
	After     *Cursor
	Before    *Cursor
	Limit     int
}

type Source[T any] interface {
	Find(ctx context.Context, q Query) ([]T, error)
}

type SourceFunc[T any] func(ctx context.Context, q Query) ([]T, error)

func (f SourceFunc[T]) Find(ctx context.Context, q Query) ([]T, error) {
	return f(ctx, q)
}

// Spec is the filter and sort state of one list.
type Spec struct {
	SortField  string            `json:"sort_field"`
	Direction  Direction         `json:"direction"`
	PageSize   int               `json:"page_size"`
	TextFilter string            `json:"text_filter,omitempty"`
	Equality   map[string]string `json:"equality,omitempty"`
}

func (s Spec) normalized() Spec {
	if s.SortField == "" {
		s.SortField = DefaultSortField
	}
	if s.Direction != Asc {
		s.Direction = Desc
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	} else if s.PageSize > MaxPageSize {
		s.PageSize = MaxPageSize
	}
	s.TextFilter = strings.TrimSpace(s.TextFilter)
	if len(s.Equality) > 0 {
		eq := make(map[string]string, len(s.Equality))
		for k, v := range s.Equality {
			if v != "" {
				eq[k] = v
			}
		}
		s.Equality = eq
	}
	return s
}

func (s Spec) Mode() Mode {
	if strings.TrimSpace(s.TextFilter) != "" {
		return ClientScan
	}
	return ServerCursor
}

// Fingerprint identifies the filter and sort state. Pager state saved under
// one fingerprint is not valid for another.
func (s Spec) Fingerprint() string {
	data, _ := json.Marshal(s.normalized())
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

func (s Spec) query() Query {
	return Query{
		SortField: s.SortField,
		Direction: s.Direction,
		Equality:  s.Equality,
	}
}

type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"page"`
	Size        int  `json:"page_size"`
	HasNext     bool `json:"has_next_page"`
	HasPrevious bool `json:"has_previous_page"`
	Mode        Mode `json:"mode"`
}
