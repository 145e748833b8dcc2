package repositories

import (
	"context"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
)

// FolioReader defines read operations for folio data.
type FolioReader interface {
	// FindFolioByID retrieves a specific folio by its unique identifier.
	FindFolioByID(ctx context.Context, folioID string) (*domain.Folio, error)

	// FindMasterFolio retrieves the master folio for a reservation, or
	// apperrors.ErrNotFound when none has been opened yet.
	FindMasterFolio(ctx context.Context, reservationID string) (*domain.Folio, error)

	// ListFoliosByReservation retrieves every folio on a reservation.
	ListFoliosByReservation(ctx context.Context, reservationID string) ([]domain.Folio, error)
}

// FolioWriter defines write operations for folio data.
type FolioWriter interface {
	// SaveFolio persists a new folio.
	SaveFolio(ctx context.Context, folio domain.Folio) error

	// UpdateFolio updates the mutable fields of a folio (name, notes, status,
	// settlement stamps).
	UpdateFolio(ctx context.Context, folio domain.Folio) error
}

// FolioRepositoryFacade combines all folio repository interfaces.
type FolioRepositoryFacade interface {
	FolioReader
	FolioWriter
}
