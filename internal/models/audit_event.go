package models

import "time"

// Audit event types.
const (
	EventRegister      = "REGISTER"
	EventLogin         = "LOGIN"
	EventLoginFailed   = "LOGIN_FAILED"
	EventContactCreate = "CONTACT_CREATE"
	EventContactUpdate = "CONTACT_UPDATE"
	EventContactDelete = "CONTACT_DELETE"
)

// AuditEvent is a single audit log entry.
type AuditEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // REGISTER | LOGIN | LOGIN_FAILED | CONTACT_*
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
