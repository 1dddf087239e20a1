package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, 8)
	p.Start(context.Background())

	payload := BookingOutcomePayload{SessionKey: "rental:42", FinalState: "SUCCEEDED", RentalID: 5}
	require.NoError(t, p.Publish(context.Background(), EventBookingSucceeded, "abc-123", payload))
	p.Close()

	select {
	case <-p.closeCh:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher did not shut down")
	}

	require.Len(t, w.msgs, 1)
	assert.True(t, w.closed)
	assert.Equal(t, "abc-123", string(w.msgs[0].Key))

	var env Envelope
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &env))
	assert.Equal(t, EventBookingSucceeded, env.EventType)
	assert.Equal(t, "abc-123", env.CorrelationID)
	assert.NotEmpty(t, env.EventID)

	got, err := UnwrapPayload[BookingOutcomePayload](env.Payload)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestKafkaPublisher_FullInboxDrops(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, 1) // loop not started, nothing drains

	require.NoError(t, p.Publish(context.Background(), EventBookingFailed, "a", struct{}{}))
	require.NoError(t, p.Publish(context.Background(), EventBookingFailed, "b", struct{}{}))
	assert.Len(t, p.inbox, 1)
}

func TestKafkaPublisher_FlushOnCancel(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, 4)

	require.NoError(t, p.Publish(context.Background(), EventBookingFailed, "a", struct{}{}))
	require.NoError(t, p.Publish(context.Background(), EventBookingFailed, "b", struct{}{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Start(ctx)
	p.WaitClosed()

	assert.Len(t, w.msgs, 2)
	assert.True(t, w.closed)
}

func TestNewEnvelope_BadPayload(t *testing.T) {
	_, err := NewEnvelope(EventBookingFailed, "x", make(chan int))
	assert.Error(t, err)
}
