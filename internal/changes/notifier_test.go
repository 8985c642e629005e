package changes

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/middleware"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
)

type recordingPublisher struct {
	events []kafka.ChangeEvent
	err    error
}

func (p *recordingPublisher) PublishChange(ctx context.Context, ev kafka.ChangeEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Output: io.Discard, Service: "test"})
}

func TestNotify_FillsActorAndTime(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub, testLogger())
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return at }

	ctx := middleware.WithAdmin(context.Background(), &model.Admin{ID: "uid-7"})
	n.Notify(ctx, EntityTour, "t1", kafka.ActionUpdated)

	if len(pub.events) != 1 {
		t.Fatalf("events = %d, want 1", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Type() != "tour.updated" || ev.EntityID != "t1" || ev.Actor != "uid-7" || !ev.At.Equal(at) {
		t.Errorf("event = %+v", ev)
	}
}

func TestNotify_PublishFailureIsSwallowed(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	n := NewNotifier(pub, testLogger())

	n.Notify(context.Background(), EntityBooking, "b1", kafka.ActionDeleted)

	if len(pub.events) != 1 || pub.events[0].Actor != "" {
		t.Errorf("events = %+v", pub.events)
	}
}

func TestNotify_CancelledRequestStillPublishes(t *testing.T) {
	var sawErr error
	pub := &ctxPublisher{check: func(ctx context.Context) { sawErr = ctx.Err() }}
	n := NewNotifier(pub, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.Notify(ctx, EntityUser, "u1", kafka.ActionDeleted)

	if sawErr != nil {
		t.Errorf("publish context error = %v, want nil", sawErr)
	}
}

type ctxPublisher struct {
	check func(ctx context.Context)
}

func (p *ctxPublisher) PublishChange(ctx context.Context, ev kafka.ChangeEvent) error {
	p.check(ctx)
	return nil
}

func (p *ctxPublisher) Close() error { return nil }
