package changes

import (
	"context"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/middleware"
)

const (
	EntityTour    = "tour"
	EntityArticle = "article"
	EntityBooking = "booking"
	EntityReview  = "review"
	EntityUser    = "user"
)

// Notifier publishes change events for admin writes. Publishing never fails
// the write that triggered it.
type Notifier struct {
	publisher kafka.Publisher
	log       *logger.Logger
	now       func() time.Time
}

func NewNotifier(publisher kafka.Publisher, log *logger.Logger) *Notifier {
	if publisher == nil {
		publisher = kafka.NopPublisher{}
	}
	return &Notifier{
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (n *Notifier) Notify(ctx context.Context, entity, id string, action kafka.Action) {
	ev := kafka.ChangeEvent{
		Entity:    entity,
		EntityID:  id,
		Action:    action,
		Actor:     actor(ctx),
		RequestID: middleware.GetRequestID(ctx),
		At:        n.now(),
	}

	// The request context may already be done once the response is written.
	if err := n.publisher.PublishChange(context.WithoutCancel(ctx), ev); err != nil {
		n.log.Warn("Failed to publish change event",
			"event", ev.Type(),
			"entity_id", id,
			"request_id", ev.RequestID,
			"error", err,
		)
	}
}

func actor(ctx context.Context) string {
	admin, ok := middleware.AdminFrom(ctx)
	if !ok {
		return ""
	}
	return admin.ID
}
