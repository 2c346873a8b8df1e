// Package chat implements the real-time message relay: the envelope wire
// format, the per-connection relay loops, the membership gate, and the
// process-local room registry.
package chat

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Tous-project/chat-server/internal/domain"
)

type EnvelopeType string

const (
	TypeSend         EnvelopeType = "send"
	TypeRead         EnvelopeType = "read"
	TypeNotification EnvelopeType = "notification"
	TypeSystem       EnvelopeType = "system"
)

type ReceiverType string

const (
	ReceiverUser   ReceiverType = "user"
	ReceiverSystem ReceiverType = "system"
)

// Envelope is one immutable chat event. Once published to the bus it is
// never edited: read acknowledgments are new envelopes of type "read"
// referencing the original via TargetMessageID, because the bus has no
// update primitive.
type Envelope struct {
	ID              string       `json:"id"`
	Type            EnvelopeType `json:"type"`
	Sender          domain.User  `json:"sender"`
	Receiver        ReceiverType `json:"receiver"`
	Text            string       `json:"text"`
	TargetMessageID string       `json:"target_message_id,omitempty"`
	Timestamp       float64      `json:"timestamp"`
	Reader          []int64      `json:"reader"`
}

// NewUserEnvelope builds an envelope originating from a connected user.
func NewUserEnvelope(sender domain.User, typ EnvelopeType, text, targetMessageID string) Envelope {
	return Envelope{
		ID:              uuid.NewString(),
		Type:            typ,
		Sender:          sender,
		Receiver:        ReceiverUser,
		Text:            text,
		TargetMessageID: targetMessageID,
		Timestamp:       now(),
		Reader:          []int64{},
	}
}

// NewSystemEnvelope builds a synthesized notification from the reserved
// system identity.
func NewSystemEnvelope(text string) Envelope {
	return Envelope{
		ID:        uuid.NewString(),
		Type:      TypeNotification,
		Sender:    domain.System,
		Receiver:  ReceiverUser,
		Text:      text,
		Timestamp: now(),
		Reader:    []int64{},
	}
}

func (e Envelope) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeEnvelope parses the wire form. The relay uses it to reject
// malformed bus payloads before forwarding.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if e.ID == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing id")
	}
	switch e.Type {
	case TypeSend, TypeRead, TypeNotification, TypeSystem:
	default:
		return Envelope{}, fmt.Errorf("decode envelope: unknown type %q", e.Type)
	}
	return e, nil
}

// ClientPayload is what a connected client writes on its socket. The type
// defaults to "send"; only user-originated kinds are accepted.
type ClientPayload struct {
	Type            EnvelopeType `json:"type"`
	Text            string       `json:"text"`
	TargetMessageID string       `json:"target_message_id,omitempty"`
}

func ParseClientPayload(text string) (ClientPayload, error) {
	var p ClientPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return ClientPayload{}, fmt.Errorf("parse client payload: %w", err)
	}
	if p.Type == "" {
		p.Type = TypeSend
	}
	if p.Type != TypeSend && p.Type != TypeRead {
		return ClientPayload{}, fmt.Errorf("parse client payload: type %q not allowed", p.Type)
	}
	return p, nil
}

func now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}
