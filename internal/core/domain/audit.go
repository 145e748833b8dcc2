package domain

import (
	"encoding/json"
	"time"
)

// AuditAction is the kind of mutation an audit entry records.
type AuditAction string

const (
	ActionCreate   AuditAction = "create"
	ActionUpdate   AuditAction = "update"
	ActionDelete   AuditAction = "delete"
	ActionVoid     AuditAction = "void"
	ActionTransfer AuditAction = "transfer"
	ActionSettle   AuditAction = "settle"
	ActionReverse  AuditAction = "reverse"
)

// AuditLogEntry is an externally populated, read-only record of a ledger
// mutation. The core never writes these; the persistence layer journals them
// as a side effect of folio and transaction changes.
type AuditLogEntry struct {
	EntryID     string          `json:"entryID"`
	EntityType  string          `json:"entityType"` // folio, transaction, transfer, settlement
	EntityID    string          `json:"entityID"`
	Action      AuditAction     `json:"action"`
	ActorID     string          `json:"actorID"`
	ActorName   string          `json:"actorName,omitempty"`
	ActorEmail  string          `json:"actorEmail,omitempty"`
	OldValues   json.RawMessage `json:"oldValues,omitempty"`
	NewValues   json.RawMessage `json:"newValues,omitempty"`
	Description string          `json:"description,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}
