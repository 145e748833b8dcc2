package repositories

import (
	"context"
	"time"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
)

// AuditFilter narrows an audit trail read. Nil fields are not applied; the
// date bounds are inclusive and compared date-only.
type AuditFilter struct {
	EntityType *string
	EntityID   *string
	FolioID    *string // matches entries for the folio and its transactions
	Action     *domain.AuditAction
	ActorID    *string
	StartDate  *time.Time
	EndDate    *time.Time
}

// AuditReader reads the externally populated audit log. The core never writes
// audit entries; the persistence layer journals them as a trigger side effect.
type AuditReader interface {
	// ListAuditEntries retrieves matching entries, newest first.
	ListAuditEntries(ctx context.Context, filter AuditFilter) ([]domain.AuditLogEntry, error)
}
