package translate

import (
	"context"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"

	"golang.org/x/sync/errgroup"
)

// Node declares which parts of a nested value are translatable. A node is
// a leaf, a list or a record of named fields.
type Node struct {
	leaf   *model.TextInput
	items  []Node
	fields map[string]Node
}

func Leaf(in model.TextInput) Node {
	return Node{leaf: &in}
}

func Leaves(in []model.TextInput) Node {
	items := make([]Node, len(in))
	for i := range in {
		items[i] = Leaf(in[i])
	}
	return Node{items: items}
}

func List(items ...Node) Node {
	if items == nil {
		items = []Node{}
	}
	return Node{items: items}
}

func Record(fields map[string]Node) Node {
	return Node{fields: fields}
}

// Result mirrors the Node it was produced from.
type Result struct {
	Text   model.MultiLangText
	Items  []*Result
	Fields map[string]*Result
}

// Field returns the named child, or an empty result.
func (r *Result) Field(name string) *Result {
	if r == nil || r.Fields == nil {
		return &Result{}
	}
	if c, ok := r.Fields[name]; ok {
		return c
	}
	return &Result{}
}

// Texts collects the leaf values of a list.
func (r *Result) Texts() []model.MultiLangText {
	if r == nil {
		return nil
	}
	out := make([]model.MultiLangText, len(r.Items))
	for i, item := range r.Items {
		out[i] = item.Text
	}
	return out
}

type LeafFunc func(ctx context.Context, in model.TextInput) (model.MultiLangText, error)

// Walk applies leaf to every leaf of root, at most limit at a time, and
// returns a result with the same shape. Any leaf error aborts the walk.
func Walk(ctx context.Context, root Node, leaf LeafFunc, limit int) (Result, error) {
	var jobs []func(context.Context) error
	res := plan(root, leaf, &jobs)

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, job := range jobs {
		g.Go(func() error {
			return job(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return *res, nil
}

func plan(n Node, leaf LeafFunc, jobs *[]func(context.Context) error) *Result {
	r := &Result{}
	switch {
	case n.leaf != nil:
		in := *n.leaf
		*jobs = append(*jobs, func(ctx context.Context) error {
			text, err := leaf(ctx, in)
			if err != nil {
				return err
			}
			r.Text = text
			return nil
		})
	case n.fields != nil:
		r.Fields = make(map[string]*Result, len(n.fields))
		for name, child := range n.fields {
			r.Fields[name] = plan(child, leaf, jobs)
		}
	default:
		r.Items = make([]*Result, len(n.items))
		for i, child := range n.items {
			r.Items[i] = plan(child, leaf, jobs)
		}
	}
	return r
}
