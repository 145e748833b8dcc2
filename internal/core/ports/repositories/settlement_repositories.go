package repositories

import (
	"context"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
)

// SettlementRepositoryFacade persists settlement wizard runs.
type SettlementRepositoryFacade interface {
	// SaveSettlement persists a new settlement run.
	SaveSettlement(ctx context.Context, s domain.Settlement) error

	// FindSettlementByID retrieves a settlement run.
	FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error)

	// FindActiveSettlementByFolio retrieves the latest non-complete run for a
	// folio, or apperrors.ErrNotFound.
	FindActiveSettlementByFolio(ctx context.Context, folioID string) (*domain.Settlement, error)

	// UpdateSettlement updates the stage, snapshot and stamps of a run.
	UpdateSettlement(ctx context.Context, s domain.Settlement) error
}
