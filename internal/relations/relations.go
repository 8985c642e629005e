// Package relations joins list rows to the records they reference by id.
package relations

import (
	"context"
	"sync"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
)

// FetchFunc loads one referenced record.
type FetchFunc[T any] func(ctx context.Context, id string) (*T, error)

// Resolve fetches every distinct non-empty id concurrently, at most limit
// at a time, and returns the records found. An id that fails to resolve is
// logged and left out, so the row it belongs to renders without it.
func Resolve[T any](ctx context.Context, ids []string, fetch FetchFunc[T], limit int, log *logger.Logger, kind string) map[string]*T {
	distinct := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	if limit <= 0 {
		limit = len(distinct)
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, max(limit, 1))
		out = make(map[string]*T, len(distinct))
	)

	for _, id := range distinct {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			rec, err := fetch(ctx, id)
			if err != nil {
				log.Warn("Failed to resolve related record",
					"kind", kind,
					"id", id,
					"error", err,
				)
				return
			}
			if rec == nil {
				return
			}

			mu.Lock()
			out[id] = rec
			mu.Unlock()
		}(id)
	}

	wg.Wait()
	return out
}
