// Package eventutil carries the small amount of glue shared by every
// message handler: JSON payload codecs and correlation-ID propagation.
package eventutil

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

// NewMessage wraps a payload in a watermill message with a fresh UUID and
// correlation ID.
func NewMessage(payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	msg := message.NewMessage(uuid.New().String(), body)
	middleware.SetCorrelationID(uuid.New().String(), msg)
	return msg, nil
}

// NewResultMessage wraps a payload in a message that inherits the parent's
// correlation ID, so a round's whole score->merge->announce chain shares one
// ID in the logs.
func NewResultMessage(parent *message.Message, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	msg := message.NewMessage(uuid.New().String(), body)
	if correlationID := middleware.MessageCorrelationID(parent); correlationID != "" {
		middleware.SetCorrelationID(correlationID, msg)
	}
	return msg, nil
}

// ParsePayload decodes a message body into a typed payload.
func ParsePayload[T any](msg *message.Message) (*T, error) {
	payload := new(T)
	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return nil, fmt.Errorf("unmarshal %T: %w", payload, err)
	}
	return payload, nil
}

// CorrelationID extracts the correlation ID for logging, empty if unset.
func CorrelationID(msg *message.Message) string {
	return middleware.MessageCorrelationID(msg)
}
