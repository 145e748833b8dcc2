package dto

import (
	"time"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
)

// CreateFolioRequest defines the data needed to open an additional folio on a
// reservation. The master folio is never created through this path; it comes
// from the get-or-create operation.
type CreateFolioRequest struct {
	Name  string           `json:"name" binding:"required"`
	Type  domain.FolioType `json:"type" binding:"required,oneof=room guest"`
	Notes string           `json:"notes,omitempty"`
}

// UpdateFolioRequest edits the mutable fields of a folio.
type UpdateFolioRequest struct {
	Name  *string `json:"name,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// FolioResponse defines the data returned for a folio. Totals is populated on
// detail reads and recomputed from the live transaction set on every request.
type FolioResponse struct {
	FolioID       string               `json:"folioID"`
	FolioNumber   string               `json:"folioNumber"`
	ReservationID string               `json:"reservationID"`
	Type          domain.FolioType     `json:"type"`
	Name          string               `json:"name"`
	Status        domain.FolioStatus   `json:"status"`
	Notes         string               `json:"notes,omitempty"`
	OpenedAt      time.Time            `json:"openedAt"`
	SettledAt     *time.Time           `json:"settledAt,omitempty"`
	SettledBy     *string              `json:"settledBy,omitempty"`
	Totals        *FolioTotalsResponse `json:"totals,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
}

// ToFolioResponse converts a domain.Folio to its response DTO.
func ToFolioResponse(f *domain.Folio) FolioResponse {
	return FolioResponse{
		FolioID:       f.FolioID,
		FolioNumber:   f.FolioNumber,
		ReservationID: f.ReservationID,
		Type:          f.Type,
		Name:          f.Name,
		Status:        f.Status,
		Notes:         f.Notes,
		OpenedAt:      f.OpenedAt,
		SettledAt:     f.SettledAt,
		SettledBy:     f.SettledBy,
		CreatedAt:     f.CreatedAt,
		CreatedBy:     f.CreatedBy,
	}
}

// ToFolioTotalsResponse converts aggregated totals plus a display rendering of
// the balance.
func ToFolioTotalsResponse(t domain.FolioTotals, balanceFormatted string) FolioTotalsResponse {
	return FolioTotalsResponse{
		TotalCharges:     t.TotalCharges,
		TotalFees:        t.TotalFees,
		TotalTaxes:       t.TotalTaxes,
		TotalDiscounts:   t.TotalDiscounts,
		TotalPayments:    t.TotalPayments,
		TotalRefunds:     t.TotalRefunds,
		Balance:          t.Balance,
		BalanceFormatted: balanceFormatted,
	}
}
