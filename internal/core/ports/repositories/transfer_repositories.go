package repositories

import (
	"context"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
)

// TransferRepositoryFacade persists and reads the append-only transfer log.
type TransferRepositoryFacade interface {
	// SaveTransferRecord appends one transfer record.
	SaveTransferRecord(ctx context.Context, record domain.TransferRecord) error

	// ListTransfersByFolio retrieves transfer records touching a folio as
	// source or destination, newest first.
	ListTransfersByFolio(ctx context.Context, folioID string) ([]domain.TransferRecord, error)
}
