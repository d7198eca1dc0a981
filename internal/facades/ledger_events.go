package facades

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/sbilibin2017/gw-library-ledger/internal/logger"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"github.com/segmentio/kafka-go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// KafkaWriter is the part of *kafka.Writer the facade needs.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// LedgerEventsKafkaFacade publishes borrow and return events to Kafka.
type LedgerEventsKafkaFacade struct {
	writer KafkaWriter
}

// NewLedgerEventsKafkaFacade creates a facade. A nil writer disables publishing.
func NewLedgerEventsKafkaFacade(writer KafkaWriter) *LedgerEventsKafkaFacade {
	return &LedgerEventsKafkaFacade{writer: writer}
}

// Publish writes the event keyed by book id so events of one book stay ordered.
// Failures are logged and never returned.
func (f *LedgerEventsKafkaFacade) Publish(ctx context.Context, event models.LedgerEvent) {
	if f.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal ledger event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.BookID),
		Value: data,
	}

	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish ledger event", "event_id", event.EventID, "action", event.Action, "error", err)
		return
	}
	logger.Log.Infow("Ledger event published", "event_id", event.EventID, "action", event.Action, "book_id", event.BookID)
}
