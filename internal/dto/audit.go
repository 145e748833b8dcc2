package dto

import (
	"encoding/json"
	"time"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
)

// ListAuditParams defines query parameters for the audit trail view.
type ListAuditParams struct {
	EntityType *string `form:"entityType"`
	Action     *string `form:"action"`
	ActorID    *string `form:"actorID"`
	Search     *string `form:"search"`
	StartDate  *string `form:"startDate"` // yyyy-mm-dd, inclusive
	EndDate    *string `form:"endDate"`   // yyyy-mm-dd, inclusive
}

// AuditEntryResponse defines the data returned for one audit log entry.
type AuditEntryResponse struct {
	EntryID     string             `json:"entryID"`
	EntityType  string             `json:"entityType"`
	EntityID    string             `json:"entityID"`
	Action      domain.AuditAction `json:"action"`
	ActorID     string             `json:"actorID"`
	ActorName   string             `json:"actorName,omitempty"`
	ActorEmail  string             `json:"actorEmail,omitempty"`
	OldValues   json.RawMessage    `json:"oldValues,omitempty"`
	NewValues   json.RawMessage    `json:"newValues,omitempty"`
	Description string             `json:"description,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
}

// AuditDayGroupResponse is one day of audit entries, newest day first in the
// enclosing list.
type AuditDayGroupResponse struct {
	Date    string               `json:"date"` // yyyy-mm-dd
	Entries []AuditEntryResponse `json:"entries"`
}

// ToAuditEntryResponse converts a domain.AuditLogEntry to its response DTO.
func ToAuditEntryResponse(e *domain.AuditLogEntry) AuditEntryResponse {
	return AuditEntryResponse{
		EntryID:     e.EntryID,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		ActorID:     e.ActorID,
		ActorName:   e.ActorName,
		ActorEmail:  e.ActorEmail,
		OldValues:   e.OldValues,
		NewValues:   e.NewValues,
		Description: e.Description,
		Timestamp:   e.Timestamp,
	}
}

// ToAuditEntryResponses converts a slice of audit entries.
func ToAuditEntryResponses(entries []domain.AuditLogEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToAuditEntryResponse(&entries[i])
	}
	return out
}
