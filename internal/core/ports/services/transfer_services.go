package services

import (
	"context"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	"github.com/hoteldesk/folio-backend/internal/dto"
)

// TransferSvcFacade relocates transactions between folios.
type TransferSvcFacade interface {
	// Transfer moves the selected transactions to an existing open folio or to
	// a folio created on the fly. Folio creation is all-or-nothing; the moves
	// themselves are best-effort per item. A TransferRecord is always
	// returned, also alongside an ErrPartialFailure error when some items
	// failed.
	Transfer(ctx context.Context, req dto.TransferRequest, actorID string) (*domain.TransferRecord, error)

	// ListTransfers retrieves the transfer log touching a folio.
	ListTransfers(ctx context.Context, folioID string) ([]domain.TransferRecord, error)
}
