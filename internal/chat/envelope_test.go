package chat

import (
	"encoding/json"
	"testing"

	"github.com/Tous-project/chat-server/internal/domain"
)

func TestUserEnvelopeRoundTrip(t *testing.T) {
	sender := domain.User{ID: 7, Name: "alice", Email: "alice@example.com"}
	env := NewUserEnvelope(sender, TypeSend, "hello", "")

	if env.ID == "" {
		t.Fatal("envelope id should be generated at construction")
	}
	if env.Receiver != ReceiverUser {
		t.Errorf("expected receiver %q, got %q", ReceiverUser, env.Receiver)
	}
	if env.Timestamp == 0 {
		t.Error("timestamp should be captured at construction")
	}

	data, err := env.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeEnvelope(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != env.ID || decoded.Type != env.Type || decoded.Sender != env.Sender || decoded.Text != env.Text {
		t.Errorf("round trip lost data: %+v vs %+v", decoded, env)
	}
}

func TestSystemEnvelopeUsesSentinelSender(t *testing.T) {
	env := NewSystemEnvelope(`"alice" joined the room`)

	if env.Type != TypeNotification {
		t.Errorf("expected type %q, got %q", TypeNotification, env.Type)
	}
	if env.Sender != domain.System {
		t.Errorf("expected system sender, got %+v", env.Sender)
	}
	if env.Sender.ID != 0 {
		t.Errorf("system sender id must be the reserved 0, got %d", env.Sender.ID)
	}
}

func TestEnvelopeIDsNeverReused(t *testing.T) {
	seen := make(map[string]bool)
	sender := domain.User{ID: 1, Name: "a", Email: "a@x"}
	for i := 0; i < 100; i++ {
		env := NewUserEnvelope(sender, TypeSend, "x", "")
		if seen[env.ID] {
			t.Fatalf("id %q reused", env.ID)
		}
		seen[env.ID] = true
	}
}

func TestReadAckIsANewEnvelope(t *testing.T) {
	sender := domain.User{ID: 1, Name: "a", Email: "a@x"}
	original := NewUserEnvelope(sender, TypeSend, "hello", "")

	reader := domain.User{ID: 2, Name: "b", Email: "b@x"}
	ack := NewUserEnvelope(reader, TypeRead, "", original.ID)

	if ack.ID == original.ID {
		t.Error("read ack must not reuse the original envelope id")
	}
	if ack.TargetMessageID != original.ID {
		t.Errorf("read ack should reference the original, got %q", ack.TargetMessageID)
	}
	if len(original.Reader) != 0 {
		t.Error("original envelope reader set must stay untouched")
	}
}

func TestDecodeEnvelopeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "not json at all"},
		{"missing id", `{"type":"send","text":"x"}`},
		{"unknown type", `{"id":"abc","type":"shout","text":"x"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeEnvelope([]byte(tc.data)); err == nil {
				t.Errorf("expected error for %q", tc.data)
			}
		})
	}
}

func TestEmptyTargetMessageIDOmitted(t *testing.T) {
	env := NewUserEnvelope(domain.User{ID: 1, Name: "a", Email: "a@x"}, TypeSend, "hi", "")
	data, err := env.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["target_message_id"]; ok {
		t.Error("empty target_message_id should be omitted from the wire form")
	}
	if _, ok := m["reader"]; !ok {
		t.Error("reader should always be present on the wire")
	}
}

func TestParseClientPayload(t *testing.T) {
	p, err := ParseClientPayload(`{"text":"hi"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Type != TypeSend {
		t.Errorf("type should default to %q, got %q", TypeSend, p.Type)
	}

	p, err = ParseClientPayload(`{"type":"read","target_message_id":"abc"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Type != TypeRead || p.TargetMessageID != "abc" {
		t.Errorf("unexpected payload: %+v", p)
	}

	if _, err := ParseClientPayload(`{"type":"system","text":"fake notice"}`); err == nil {
		t.Error("clients must not be able to forge system envelopes")
	}
	if _, err := ParseClientPayload("garbage"); err == nil {
		t.Error("expected error for non-JSON input")
	}
}
