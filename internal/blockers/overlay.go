package blockers

import "encoding/json"

// Blocker status values.
const (
	StatusActive   = "active"
	StatusResolved = "resolved"
)

// Entry is one slot of the blocker_status overlay. Entry i describes
// blockers[i] of the same summary record.
type Entry struct {
	Status     string  `json:"status"`
	ResolvedAt *string `json:"resolved_at"`
	ResolvedBy *string `json:"resolved_by"`
}

// OverlayState classifies what was actually stored in the blocker_status
// column before coercion.
type OverlayState int

const (
	// OverlayValid means the column held a well-formed entry array.
	OverlayValid OverlayState = iota
	// OverlayAbsent means the column was empty or SQL/JSON null.
	OverlayAbsent
	// OverlayMalformed means the column held something that is not an
	// entry array. The overlay is coerced to empty rather than failing;
	// callers should log the recovery.
	OverlayMalformed
)

// DecodeOverlay decodes a stored blocker_status value. It never fails:
// absent and malformed values both come back as an empty overlay, with the
// state telling them apart. A JSON string wrapping an array (the overlay
// double-encoded by an older writer) is unwrapped and accepted.
func DecodeOverlay(raw json.RawMessage) ([]Entry, OverlayState) {
	if len(raw) == 0 || string(raw) == "null" {
		return []Entry{}, OverlayAbsent
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err == nil {
		if entries == nil {
			entries = []Entry{}
		}
		return entries, OverlayValid
	}

	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if err := json.Unmarshal([]byte(wrapped), &entries); err == nil && entries != nil {
			return entries, OverlayValid
		}
	}

	return []Entry{}, OverlayMalformed
}

// EncodeOverlay marshals an overlay for storage. An empty overlay encodes
// as [] rather than null so a written value is always a well-formed array.
func EncodeOverlay(entries []Entry) (json.RawMessage, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}
