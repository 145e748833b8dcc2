package domain

import "time"

// ReservationStatus is the stay lifecycle state of a reservation.
type ReservationStatus string

const (
	ResConfirmed  ReservationStatus = "confirmed"
	ResInHouse    ReservationStatus = "in_house"
	ResCheckedOut ReservationStatus = "checked_out"
)

// Reservation is the stay a folio bills against. Only the fields the billing
// core needs are modeled; room assignment and guest management proper live in
// the application shell.
type Reservation struct {
	ReservationID string            `json:"reservationID"`
	GuestName     string            `json:"guestName"`
	RoomNumber    string            `json:"roomNumber"`
	Status        ReservationStatus `json:"status"`
	CheckInDate   time.Time         `json:"checkInDate"`
	CheckOutDate  time.Time         `json:"checkOutDate"`
	AuditFields
}
