// Package export round-trips snapshots through a versioned envelope
// suitable for file export and import.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sgreene/habitat/internal/models"
)

// EnvelopeVersion is the current export format version.
const EnvelopeVersion = 1

// Envelope wraps a snapshot for export.
type Envelope struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Data       models.Snapshot `json:"data"`
}

// FormatError reports a structurally invalid import payload. It is
// raised before any state is dispatched; the caller owns user-facing
// messaging.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid import payload: %s", e.Reason)
}

// Export wraps the snapshot in a versioned envelope. The caller
// supplies the export timestamp so the operation stays deterministic.
func Export(s models.Snapshot, exportedAt time.Time) Envelope {
	return Envelope{
		Version:    EnvelopeVersion,
		ExportedAt: exportedAt,
		Data:       s,
	}
}

// Marshal serializes the envelope as indented JSON.
func Marshal(env Envelope) ([]byte, error) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return data, nil
}

// Import parses an export payload and returns the normalized snapshot.
// Payloads missing version or data, or whose data lacks the habits or
// identities arrays, are rejected with a *FormatError.
func Import(payload []byte) (models.Snapshot, error) {
	var probe struct {
		Version *int            `json:"version"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return models.Snapshot{}, &FormatError{Reason: "not valid JSON"}
	}
	if probe.Version == nil {
		return models.Snapshot{}, &FormatError{Reason: "missing version"}
	}
	if len(probe.Data) == 0 || string(probe.Data) == "null" {
		return models.Snapshot{}, &FormatError{Reason: "missing data"}
	}

	var required struct {
		Habits     json.RawMessage `json:"habits"`
		Identities json.RawMessage `json:"identities"`
	}
	if err := json.Unmarshal(probe.Data, &required); err != nil {
		return models.Snapshot{}, &FormatError{Reason: "data is not an object"}
	}
	if !isJSONArray(required.Habits) {
		return models.Snapshot{}, &FormatError{Reason: "data.habits must be an array"}
	}
	if !isJSONArray(required.Identities) {
		return models.Snapshot{}, &FormatError{Reason: "data.identities must be an array"}
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(probe.Data, &snapshot); err != nil {
		return models.Snapshot{}, &FormatError{Reason: fmt.Sprintf("malformed data: %v", err)}
	}
	snapshot.Normalize()
	return snapshot, nil
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
