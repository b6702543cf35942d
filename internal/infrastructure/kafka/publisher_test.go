package kafka

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIsTransientError(t *testing.T) {
	assert.False(t, isTransientError(nil))
	assert.True(t, isTransientError(errors.New("kafka: Leader Not Available [5]")))
	assert.True(t, isTransientError(errors.New("Unknown Topic Or Partition")))
	assert.False(t, isTransientError(errors.New("invalid credentials")))
}

func TestResolveSASLMechanismPlain(t *testing.T) {
	mechanism := resolveSASLMechanism(Config{SASLMechanism: "PLAIN", SASLUsername: "u", SASLPassword: "p"})
	require.NotNil(t, mechanism)
	assert.Equal(t, "PLAIN", mechanism.Name())
}

func TestResolveSASLMechanismScram(t *testing.T) {
	mechanism := resolveSASLMechanism(Config{SASLMechanism: "SCRAM-SHA-256", SASLUsername: "u", SASLPassword: "p"})
	require.NotNil(t, mechanism)
}

func TestResolveSASLMechanismUnknown(t *testing.T) {
	mechanism := resolveSASLMechanism(Config{SASLMechanism: "nope"})
	assert.Nil(t, mechanism)
}

func TestNewProducerCreatesWriterLazily(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	assert.Empty(t, p.writers)

	w := p.getOrCreateWriter("underwriting.events")
	require.NotNil(t, w)
	assert.Len(t, p.writers, 1)

	same := p.getOrCreateWriter("underwriting.events")
	assert.Same(t, w, same)
}

func TestPublishNoEventsIsNoop(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	publisher := NewEventPublisher(p, "underwriting.events", noopLogger())
	err := publisher.Publish(nil)
	assert.NoError(t, err)
}
