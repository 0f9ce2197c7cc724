package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CurrentSchemaVersion is stamped on every envelope the ledger emits.
const CurrentSchemaVersion = 1

var ErrMalformedEnvelope = errors.New("malformed event envelope")

// Envelope wraps one campaign ledger event on the bus. Fields are append-only;
// consumers must ignore unknown keys in Data.
type Envelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}

// Validate rejects envelopes a consumer cannot route or dedupe.
func (e Envelope) Validate() error {
	switch {
	case strings.TrimSpace(e.EventID) == "":
		return fmt.Errorf("%w: event_id is empty", ErrMalformedEnvelope)
	case strings.TrimSpace(e.EventType) == "":
		return fmt.Errorf("%w: event_type is empty", ErrMalformedEnvelope)
	case e.SchemaVersion > CurrentSchemaVersion:
		return fmt.Errorf("%w: schema_version %d is newer than %d", ErrMalformedEnvelope, e.SchemaVersion, CurrentSchemaVersion)
	}
	return nil
}

// DecodeData unmarshals the event payload into target. An absent payload
// decodes as an empty object.
func (e Envelope) DecodeData(target any) error {
	if len(e.Data) == 0 {
		return json.Unmarshal([]byte("{}"), target)
	}
	if err := json.Unmarshal(e.Data, target); err != nil {
		return fmt.Errorf("%w: data: %v", ErrMalformedEnvelope, err)
	}
	return nil
}
