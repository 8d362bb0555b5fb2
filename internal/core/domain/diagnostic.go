package domain

import "time"

// DiagnosticRecord is a best-effort event/error record persisted by the audit writer.
type DiagnosticRecord struct {
	Process     string    `json:"process"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"desc"`
	Item        any       `json:"item,omitempty"`
}

// Attributes flattens the record into a store item. The timestamp is stored
// as epoch milliseconds.
func (r DiagnosticRecord) Attributes() map[string]any {
	attrs := map[string]any{
		"process":   r.Process,
		"timestamp": r.Timestamp.UnixMilli(),
		"desc":      r.Description,
	}
	if r.Item != nil {
		attrs["item"] = r.Item
	}
	return attrs
}
