// Package kafka publishes underwriting domain events to Kafka, adapted
// from the teacher's pkg/kafka writer pool plus its
// infrastructure/kafka.KafkaEventPublisher into a single package.
package kafka

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/event"
)

// Config holds Kafka connection parameters.
type Config struct {
	Brokers       []string
	TLS           bool
	SASLEnabled   bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

// Producer wraps kafka-go writers, one per topic, created lazily.
type Producer struct {
	mu        sync.Mutex
	writers   map[string]*kafkago.Writer
	transport *kafkago.Transport
	brokers   []string
}

// NewProducer builds a Producer over cfg.
func NewProducer(cfg Config) *Producer {
	transport := &kafkago.Transport{}
	if cfg.TLS {
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if cfg.SASLEnabled {
		if mechanism := resolveSASLMechanism(cfg); mechanism != nil {
			transport.SASL = mechanism
		}
	}
	return &Producer{
		writers:   make(map[string]*kafkago.Writer),
		brokers:   cfg.Brokers,
		transport: transport,
	}
}

func resolveSASLMechanism(cfg Config) sasl.Mechanism {
	switch cfg.SASLMechanism {
	case "SCRAM-SHA-256":
		m, err := scram.Mechanism(scram.SHA256, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil
		}
		return m
	case "SCRAM-SHA-512":
		m, err := scram.Mechanism(scram.SHA512, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil
		}
		return m
	case "PLAIN", "":
		return &plain.Mechanism{Username: cfg.SASLUsername, Password: cfg.SASLPassword}
	default:
		return nil
	}
}

func (p *Producer) getOrCreateWriter(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()
	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(p.brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafkago.RequireAll,
		Transport:              p.transport,
		AllowAutoTopicCreation: true,
	}
	p.writers[topic] = w
	return w
}

// Close closes every writer opened so far.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing writer for topic %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]*kafkago.Writer)
	return firstErr
}

func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "[3]") ||
		strings.Contains(msg, "[5]") ||
		strings.Contains(msg, "[6]") ||
		strings.Contains(msg, "[9]") ||
		strings.Contains(msg, "Leader Not Available") ||
		strings.Contains(msg, "Not Leader") ||
		strings.Contains(msg, "Unknown Topic Or Partition")
}

// EventPublisher implements port.EventPublisher by writing domain events
// to a single Kafka topic, keyed by aggregate id.
type EventPublisher struct {
	producer *Producer
	topic    string
	logger   *slog.Logger
}

// NewEventPublisher builds an EventPublisher over producer, targeting topic.
func NewEventPublisher(producer *Producer, topic string, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish serializes and writes every event to Kafka with a bounded retry
// for transient leader-election errors.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafkago.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)
		messages = append(messages, kafkago.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: []kafkago.Header{
				{Key: "event_type", Value: []byte(evt.EventType())},
				{Key: "event_id", Value: []byte(evt.EventID())},
			},
		})
	}

	w := p.producer.getOrCreateWriter(p.topic)
	var lastErr error
	for attempt := 0; attempt < 5; attempt++ {
		if err := w.WriteMessages(ctx, messages...); err != nil {
			lastErr = err
			if isTransientError(err) {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(500 * time.Millisecond * time.Duration(attempt+1)):
					continue
				}
			}
			return fmt.Errorf("kafka publish to %s: %w", p.topic, err)
		}
		return nil
	}
	return fmt.Errorf("kafka publish to %s (after 5 attempts): %w", p.topic, lastErr)
}
