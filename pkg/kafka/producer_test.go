package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	kafka_config "github.com/Dotlabs-uz/pilavtour-admin/pkg/kafka/config"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
)

func newTestProducer(t *testing.T) *Producer {
	t.Helper()
	cfg := &kafka_config.Config{
		Brokers:              []string{"localhost:9092"},
		Topic:                "changes",
		ProducerMaxAttempts:  1,
		ProducerBatchTimeout: time.Millisecond,
		ProducerRequireAcks:  -1,
		ProducerCompression:  "none",
	}
	log := logger.New(logger.Config{Level: "error", Output: io.Discard, Service: "test"})
	p, err := NewProducer(cfg, log, "admin")
	if err != nil {
		t.Fatalf("NewProducer() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestProducer_PublishChangeBuildsMessage(t *testing.T) {
	p := newTestProducer(t)

	var captured Message
	p.Use(func(_ context.Context, msg Message, _ func(context.Context, Message) error) error {
		captured = msg
		return nil
	})

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	err := p.PublishChange(context.Background(), ChangeEvent{
		Entity:    "tour",
		EntityID:  "abc",
		Action:    ActionUpdated,
		Actor:     "admin@example.com",
		RequestID: "req-1",
		At:        at,
	})
	if err != nil {
		t.Fatalf("PublishChange() error = %v", err)
	}

	if captured.Key != "tour:abc" {
		t.Errorf("key = %q, want tour:abc", captured.Key)
	}
	if captured.Topic != "changes" {
		t.Errorf("topic = %q", captured.Topic)
	}
	if got := captured.EventType(); got != "tour.updated" {
		t.Errorf("event type = %q", got)
	}
	if got := captured.CorrelationID(); got != "req-1" {
		t.Errorf("correlation id = %q", got)
	}
	if captured.EventID() == "" {
		t.Error("expected generated event id")
	}
	if captured.Headers[HeaderSource] != "admin" {
		t.Errorf("source = %q", captured.Headers[HeaderSource])
	}

	var body map[string]any
	if err := json.Unmarshal(captured.Value, &body); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if body["entity_id"] != "abc" || body["action"] != "updated" {
		t.Errorf("payload = %v", body)
	}
	if _, ok := body["RequestID"]; ok {
		t.Error("request id must not be part of the payload")
	}
}

func TestProducer_MiddlewareOrder(t *testing.T) {
	p := newTestProducer(t)

	var order []string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		order = append(order, "outer")
		return next(ctx, msg)
	})
	p.Use(func(_ context.Context, _ Message, _ func(context.Context, Message) error) error {
		order = append(order, "inner")
		return nil
	})

	if err := p.PublishChange(context.Background(), ChangeEvent{Entity: "article", EntityID: "1", Action: ActionCreated}); err != nil {
		t.Fatalf("PublishChange() error = %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v", order)
	}
}

func TestProducer_RejectsInvalidMessages(t *testing.T) {
	p := newTestProducer(t)

	if err := p.Publish(context.Background(), Message{Value: []byte("x")}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("empty key error = %v", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "k"}); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("empty value error = %v", err)
	}
}

func TestProducer_Closed(t *testing.T) {
	p := newTestProducer(t)
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	err := p.PublishChange(context.Background(), ChangeEvent{Entity: "tour", EntityID: "1", Action: ActionDeleted})
	if !errors.Is(err, ErrProducerClosed) {
		t.Errorf("error = %v, want ErrProducerClosed", err)
	}
}

func TestNewProducer_RequiresBrokersAndTopic(t *testing.T) {
	log := logger.New(logger.Config{Output: io.Discard})

	if _, err := NewProducer(&kafka_config.Config{Topic: "t"}, log, "admin"); !errors.Is(err, ErrNoBrokers) {
		t.Errorf("error = %v, want ErrNoBrokers", err)
	}
	if _, err := NewProducer(&kafka_config.Config{Brokers: []string{"b:9092"}}, log, "admin"); !errors.Is(err, ErrNoTopic) {
		t.Errorf("error = %v, want ErrNoTopic", err)
	}
}

func TestMessageBuilder_ValueError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if err == nil {
		t.Error("expected encoding error")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.PublishChange(context.Background(), ChangeEvent{}); err != nil {
		t.Errorf("PublishChange() error = %v", err)
	}
}
