package v1

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEnvelopeValidate(t *testing.T) {
	tests := []struct {
		name     string
		envelope Envelope
		wantErr  bool
	}{
		{name: "valid", envelope: Envelope{EventID: "evt-1", EventType: "campaign.created", SchemaVersion: 1}},
		{name: "missing id", envelope: Envelope{EventType: "campaign.created"}, wantErr: true},
		{name: "missing type", envelope: Envelope{EventID: "evt-1"}, wantErr: true},
		{name: "future schema", envelope: Envelope{EventID: "evt-1", EventType: "campaign.created", SchemaVersion: 2}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.envelope.Validate()
			if tc.wantErr && !errors.Is(err, ErrMalformedEnvelope) {
				t.Fatalf("expected malformed envelope error, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected valid envelope, got %v", err)
			}
		})
	}
}

func TestEnvelopeDecodeData(t *testing.T) {
	envelope := Envelope{Data: json.RawMessage(`{"campaign_id":3,"voter":"0xabc"}`)}
	var payload map[string]any
	if err := envelope.DecodeData(&payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if payload["voter"] != "0xabc" {
		t.Fatalf("unexpected payload %v", payload)
	}

	var empty map[string]any
	if err := (Envelope{}).DecodeData(&empty); err != nil || len(empty) != 0 {
		t.Fatalf("expected empty payload, got %v err=%v", empty, err)
	}
	if err := (Envelope{Data: json.RawMessage(`[`)}).DecodeData(&empty); !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("expected malformed payload error, got %v", err)
	}
}
