package kafka

import (
	"context"
	"time"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionSeeded  Action = "seeded"
)

// ChangeEvent announces an admin write to a catalog entity.
type ChangeEvent struct {
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Action    Action    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	RequestID string    `json:"-"`
	At        time.Time `json:"at"`
}

func (e ChangeEvent) Type() string {
	return e.Entity + "." + string(e.Action)
}

// Publisher is what services depend on.
type Publisher interface {
	PublishChange(ctx context.Context, ev ChangeEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishChange(context.Context, ChangeEvent) error { return nil }
func (NopPublisher) Close() error                                   { return nil }
