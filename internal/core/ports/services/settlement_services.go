package services

import (
	"context"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	"github.com/hoteldesk/folio-backend/internal/dto"
)

// SettlementSvcFacade drives the settlement wizard:
// review -> payment -> confirm -> complete.
type SettlementSvcFacade interface {
	// StartSettlement opens a wizard run in the review stage and immediately
	// advances it: to payment when the balance is positive, straight to
	// confirm otherwise.
	StartSettlement(ctx context.Context, req dto.StartSettlementRequest, actorID string) (*domain.Settlement, error)

	// CollectPayment posts a payment during the payment stage and advances the
	// run to confirm. On failure the run stays in payment.
	CollectPayment(ctx context.Context, settlementID string, req dto.SettlementPaymentRequest, actorID string) (*domain.Settlement, error)

	// Settle completes the run from the confirm stage: folio becomes settled,
	// a snapshot summary is recorded, the reservation is optionally checked
	// out (best effort; its failure is reported in the summary, the folio
	// stays settled).
	Settle(ctx context.Context, settlementID string, req dto.SettleRequest, actorID string) (*domain.SettlementSummary, error)

	// GetSettlement retrieves a wizard run.
	GetSettlement(ctx context.Context, settlementID string) (*domain.Settlement, error)

	// RenderReceipt renders the completed settlement's summary as a PDF.
	RenderReceipt(ctx context.Context, settlementID string) ([]byte, error)
}
