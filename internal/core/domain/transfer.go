package domain

import "time"

// TransferItemResult records the outcome of moving a single transaction.
type TransferItemResult struct {
	TransactionID string `json:"transactionID"`
	Description   string `json:"description,omitempty"`
	Moved         bool   `json:"moved"`
	FailureReason string `json:"failureReason,omitempty"`
}

// TransferRecord is the append-only audit artifact produced by every transfer
// attempt, regardless of partial failure.
type TransferRecord struct {
	TransferID     string               `json:"transferID"`
	FromFolioID    string               `json:"fromFolioID"`
	ToFolioID      string               `json:"toFolioID"`
	TransactionIDs []string             `json:"transactionIDs"` // full attempted set, input order
	Items          []TransferItemResult `json:"items"`
	Reason         string               `json:"reason"`
	Actor          string               `json:"actor"`
	Timestamp      time.Time            `json:"timestamp"`
}

// MovedCount returns how many transactions actually moved.
func (r *TransferRecord) MovedCount() int {
	n := 0
	for _, it := range r.Items {
		if it.Moved {
			n++
		}
	}
	return n
}

// FailedItems returns the items that did not move.
func (r *TransferRecord) FailedItems() []TransferItemResult {
	failed := []TransferItemResult{}
	for _, it := range r.Items {
		if !it.Moved {
			failed = append(failed, it)
		}
	}
	return failed
}
