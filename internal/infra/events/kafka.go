package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"stayledger/internal/pkg/clock"
	"stayledger/internal/pkg/config"
	"stayledger/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

var ErrPublisherClosed = errs.New("publisher is closed")

// BookingEvent is the payload written to the booking topic.
type BookingEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  string    `json:"event_type"`
	BookingID  uuid.UUID `json:"booking_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one message per event, keyed by booking id so that
// all events of a booking land on the same partition in order.
type KafkaPublisher struct {
	writer  messageWriter
	clock   clock.Clock
	timeout time.Duration
	closed  bool
	mu      sync.RWMutex
}

func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.BookingTopic,
		Balancer:     &kafka.Hash{}, // Hash by key for ordering
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}), // Silence default logger
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			slog.Error("kafka writer error", "message", fmt.Sprintf(msg, args...))
		}),
	}
}

func NewKafkaPublisher(writer messageWriter, clk clock.Clock, cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, clock: clk, timeout: cfg.WriteTimeout}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, bookingID uuid.UUID) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	evt := BookingEvent{
		EventID:    uuid.New(),
		EventType:  eventType,
		BookingID:  bookingID,
		OccurredAt: p.clock.Now().UTC(),
	}
	value, err := json.Marshal(evt)
	if err != nil {
		return errs.Wrap(err, "encode booking event")
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	msg := kafka.Message{
		Key:   []byte(bookingID.String()),
		Value: value,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrapf(err, "publish %s for booking %s", eventType, bookingID)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}

// LogPublisher is used when no brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, eventType string, bookingID uuid.UUID) error {
	p.logger.Info("booking event", "event_type", eventType, "booking_id", bookingID)
	return nil
}
