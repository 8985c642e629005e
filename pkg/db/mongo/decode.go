package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// CheckFunc validates a decoded document before it leaves the repository.
type CheckFunc[T any] func(*T) error

// DecodeAll drains the cursor into typed documents, running check on each.
func DecodeAll[T any](ctx context.Context, cursor *mongo.Cursor, check CheckFunc[T]) ([]*T, error) {
	defer cursor.Close(ctx)

	out := make([]*T, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %v: %w", cursor.Current.Lookup("_id"), err)
		}
		if check != nil {
			if err := check(&doc); err != nil {
				return nil, fmt.Errorf("stored document %v failed validation: %w", cursor.Current.Lookup("_id"), err)
			}
		}
		out = append(out, &doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeOne decodes a single result and runs check on it.
func DecodeOne[T any](res *mongo.SingleResult, check CheckFunc[T]) (*T, error) {
	var doc T
	if err := res.Decode(&doc); err != nil {
		return nil, err
	}
	if check != nil {
		if err := check(&doc); err != nil {
			return nil, fmt.Errorf("stored document failed validation: %w", err)
		}
	}
	return &doc, nil
}

// WithTimeout bounds ctx by timeout unless it is a transaction's session
// context, which must be passed through unchanged.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

// Now is the timestamp stored on writes; Mongo keeps millisecond precision.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
