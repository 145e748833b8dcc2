package dto

import (
	"time"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
)

// NewFolioSpec describes the folio to create on the fly as a transfer target.
type NewFolioSpec struct {
	Name string           `json:"name" binding:"required"`
	Type domain.FolioType `json:"type" binding:"required,oneof=room guest"`
}

// TransferRequest moves one or more transactions out of their current folio.
// Exactly one of TargetFolioID or NewFolio must be supplied.
type TransferRequest struct {
	TransactionIDs []string      `json:"transactionIDs" binding:"required,min=1"`
	TargetFolioID  *string       `json:"targetFolioID,omitempty"`
	NewFolio       *NewFolioSpec `json:"newFolio,omitempty"`
	Reason         string        `json:"reason" binding:"required"`
}

// TransferItemResponse reports the outcome for one moved transaction.
type TransferItemResponse struct {
	TransactionID string `json:"transactionID"`
	Description   string `json:"description,omitempty"`
	Moved         bool   `json:"moved"`
	FailureReason string `json:"failureReason,omitempty"`
}

// TransferRecordResponse is the audit artifact returned for every transfer
// attempt, partial failures included.
type TransferRecordResponse struct {
	TransferID     string                 `json:"transferID"`
	FromFolioID    string                 `json:"fromFolioID"`
	ToFolioID      string                 `json:"toFolioID"`
	TransactionIDs []string               `json:"transactionIDs"`
	Items          []TransferItemResponse `json:"items"`
	MovedCount     int                    `json:"movedCount"`
	FailedCount    int                    `json:"failedCount"`
	Reason         string                 `json:"reason"`
	Actor          string                 `json:"actor"`
	Timestamp      time.Time              `json:"timestamp"`
}

// ToTransferRecordResponse converts a domain.TransferRecord to its response DTO.
func ToTransferRecordResponse(r *domain.TransferRecord) TransferRecordResponse {
	items := make([]TransferItemResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = TransferItemResponse{
			TransactionID: it.TransactionID,
			Description:   it.Description,
			Moved:         it.Moved,
			FailureReason: it.FailureReason,
		}
	}
	return TransferRecordResponse{
		TransferID:     r.TransferID,
		FromFolioID:    r.FromFolioID,
		ToFolioID:      r.ToFolioID,
		TransactionIDs: r.TransactionIDs,
		Items:          items,
		MovedCount:     r.MovedCount(),
		FailedCount:    len(r.Items) - r.MovedCount(),
		Reason:         r.Reason,
		Actor:          r.Actor,
		Timestamp:      r.Timestamp,
	}
}
