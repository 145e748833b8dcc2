package domain

import "time"

// FolioType distinguishes the default master folio from extra folios split off
// per room or per guest.
type FolioType string

const (
	FolioMaster FolioType = "master"
	FolioRoom   FolioType = "room"
	FolioGuest  FolioType = "guest"
)

// FolioStatus is the lifecycle state of a folio.
type FolioStatus string

const (
	FolioOpen    FolioStatus = "open"
	FolioSettled FolioStatus = "settled"
)

// Folio is a billing ledger container scoped to one reservation. Exactly one
// master folio per reservation is the default destination for charges;
// additional room/guest folios are created on demand (e.g. during a transfer).
type Folio struct {
	FolioID       string      `json:"folioID"`
	FolioNumber   string      `json:"folioNumber"`
	ReservationID string      `json:"reservationID"`
	Type          FolioType   `json:"type"`
	Name          string      `json:"name"`
	Status        FolioStatus `json:"status"`
	Notes         string      `json:"notes,omitempty"`
	OpenedAt      time.Time   `json:"openedAt"`
	SettledAt     *time.Time  `json:"settledAt,omitempty"`
	SettledBy     *string     `json:"settledBy,omitempty"`
	AuditFields
}

// IsOpen reports whether the folio can accept postings and transfers.
func (f *Folio) IsOpen() bool {
	return f.Status == FolioOpen
}
