package dto

import (
	"time"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
)

// CreateReservationRequest defines the minimal stay record the billing core
// needs to open folios against.
type CreateReservationRequest struct {
	GuestName    string    `json:"guestName" binding:"required"`
	RoomNumber   string    `json:"roomNumber" binding:"required"`
	CheckInDate  time.Time `json:"checkInDate" binding:"required"`
	CheckOutDate time.Time `json:"checkOutDate" binding:"required"`
}

// ReservationResponse defines the data returned for a reservation.
type ReservationResponse struct {
	ReservationID string                   `json:"reservationID"`
	GuestName     string                   `json:"guestName"`
	RoomNumber    string                   `json:"roomNumber"`
	Status        domain.ReservationStatus `json:"status"`
	CheckInDate   time.Time                `json:"checkInDate"`
	CheckOutDate  time.Time                `json:"checkOutDate"`
	CreatedAt     time.Time                `json:"createdAt"`
	CreatedBy     string                   `json:"createdBy"`
}

// ToReservationResponse converts a domain.Reservation to its response DTO.
func ToReservationResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ReservationID: r.ReservationID,
		GuestName:     r.GuestName,
		RoomNumber:    r.RoomNumber,
		Status:        r.Status,
		CheckInDate:   r.CheckInDate,
		CheckOutDate:  r.CheckOutDate,
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
	}
}
