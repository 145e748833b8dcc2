package services

import (
	"context"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	"github.com/hoteldesk/folio-backend/internal/dto"
)

// FolioSvcFacade exposes folio lifecycle operations.
type FolioSvcFacade interface {
	// GetOrCreateMasterFolio returns the reservation's master folio, opening
	// it lazily on first use.
	GetOrCreateMasterFolio(ctx context.Context, reservationID string, actorID string) (*domain.Folio, error)

	// CreateFolio opens an additional room/guest folio on a reservation.
	CreateFolio(ctx context.Context, reservationID string, req dto.CreateFolioRequest, actorID string) (*domain.Folio, error)

	// GetFolio retrieves a folio together with totals recomputed from its live
	// transaction set.
	GetFolio(ctx context.Context, folioID string) (*domain.Folio, *domain.FolioTotals, error)

	// ListFolios retrieves every folio on a reservation.
	ListFolios(ctx context.Context, reservationID string) ([]domain.Folio, error)

	// UpdateFolio edits name/notes of an open folio.
	UpdateFolio(ctx context.Context, folioID string, req dto.UpdateFolioRequest, actorID string) (*domain.Folio, error)

	// ReopenFolio flips a settled folio back to open. No balance side effects.
	ReopenFolio(ctx context.Context, folioID string, actorID string) (*domain.Folio, error)
}
