package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"wheelhub-backend/internal/logger"
)

type Publisher interface {
	Publish(ctx context.Context, eventType, correlationID string, payload any) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher hands messages to a background writer loop so that publishing
// never blocks a booking. When the inbox is full the event is dropped and logged.
type KafkaPublisher struct {
	w       messageWriter
	inbox   chan kafka.Message
	closeCh chan struct{}
}

func NewKafkaPublisher(brokers []string, topic string, buf int) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}, buf)
}

func newKafkaPublisher(w messageWriter, buf int) *KafkaPublisher {
	if buf <= 0 {
		buf = 1
	}
	return &KafkaPublisher{
		w:       w,
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

// Start runs the writer loop until ctx is done or Close is called, then flushes
// what is left in the inbox.
func (p *KafkaPublisher) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				p.drain()
				return
			case m, ok := <-p.inbox:
				if !ok {
					p.closeWriter()
					return
				}
				p.write(m)
			}
		}
	}()
}

func (p *KafkaPublisher) Publish(_ context.Context, eventType, correlationID string, payload any) error {
	env, err := NewEnvelope(eventType, correlationID, payload)
	if err != nil {
		return err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(correlationID), // all events of one booking land on one partition
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	select {
	case p.inbox <- msg:
	default:
		logger.Warn("Kafka inbox full, dropping event", "event_type", eventType, "correlation_id", correlationID)
	}
	return nil
}

// Close stops accepting events. The writer loop flushes and exits.
func (p *KafkaPublisher) Close() { close(p.inbox) }

func (p *KafkaPublisher) WaitClosed() { <-p.closeCh }

func (p *KafkaPublisher) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		logger.ExternalServiceResult("kafka", "WriteMessages", err, "key", string(m.Key))
	}
}

func (p *KafkaPublisher) drain() {
	for {
		select {
		case m, ok := <-p.inbox:
			if !ok {
				p.closeWriter()
				return
			}
			p.write(m)
		default:
			p.closeWriter()
			return
		}
	}
}

func (p *KafkaPublisher) closeWriter() {
	if err := p.w.Close(); err != nil {
		logger.Warn("Failed to close Kafka writer", "error", err)
	}
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, eventType, correlationID string, _ any) error {
	logger.Debug("Event not published, no brokers configured", "event_type", eventType, "correlation_id", correlationID)
	return nil
}
