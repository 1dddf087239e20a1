// Package events publishes booking and rental lifecycle events to Kafka.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventBookingSucceeded    = "BookingSucceeded"
	EventBookingFailed       = "BookingFailed"
	EventRentalStatusChanged = "RentalStatusChanged"
)

const (
	envelopeVersion = 1
	producerName    = "wheelhub-api"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // payment correlation id, or rental id for status events
	Payload       json.RawMessage `json:"payload"`
}

// BookingOutcomePayload is emitted once per reconciliation that reached a terminal state.
type BookingOutcomePayload struct {
	SessionKey    string   `json:"session_key"`
	FinalState    string   `json:"final_state"`
	Trail         []string `json:"trail"`
	Reason        string   `json:"reason,omitempty"`
	VehicleID     int32    `json:"vehicle_id,omitempty"`
	RenterID      int32    `json:"renter_id,omitempty"`
	PaymentMethod string   `json:"payment_method,omitempty"`
	AmountPaisa   int64    `json:"amount_paisa,omitempty"`
	RentalID      int32    `json:"rental_id,omitempty"`
}

type RentalStatusPayload struct {
	RentalID  int32  `json:"rental_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedBy int32  `json:"changed_by,omitempty"` // zero for scheduled transitions
}

func NewEnvelope(eventType, correlationID string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  envelopeVersion,
		OccurredAt:    time.Now().UTC(),
		Producer:      producerName,
		CorrelationID: correlationID,
		Payload:       raw,
	}, nil
}

// UnwrapPayload decodes the event specific payload of an envelope.
func UnwrapPayload[T any](payload json.RawMessage) (T, error) {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
