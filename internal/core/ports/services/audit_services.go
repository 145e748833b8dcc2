package services

import (
	"context"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	"github.com/hoteldesk/folio-backend/internal/dto"
)

// AuditSvcFacade exposes the read-only audit trail view for a folio.
type AuditSvcFacade interface {
	// ListFolioAudit retrieves the filtered audit trail of a folio, newest first.
	ListFolioAudit(ctx context.Context, folioID string, params dto.ListAuditParams) ([]domain.AuditLogEntry, error)

	// GroupFolioAuditByDay groups the filtered trail into yyyy-mm-dd buckets,
	// newest day first, original order preserved within a day.
	GroupFolioAuditByDay(ctx context.Context, folioID string, params dto.ListAuditParams) ([]dto.AuditDayGroupResponse, error)

	// ExportCSV projects the filtered trail to CSV. Returns the download
	// filename (folio-audit-trail-<folio_number>-<yyyy-mm-dd>.csv) and the
	// file body.
	ExportCSV(ctx context.Context, folioID string, params dto.ListAuditParams) (string, []byte, error)
}
