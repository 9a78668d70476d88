package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusCompleted:
		return ReservationStatus(s), true
	}
	return "", false
}

// Terminal reports whether no further transition is permitted from s.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationStatusCancelled || s == ReservationStatusCompleted
}

// Reservation occupies a room for the half-open range [CheckIn, CheckOut).
// TotalPrice is fixed at creation time and never recomputed.
type Reservation struct {
	ID              string
	UserID          string
	RoomID          string
	HotelID         string
	CheckIn         time.Time
	CheckOut        time.Time
	GuestCount      int
	SpecialRequests string
	TotalPrice      int64
	Status          ReservationStatus
	IdempotencyKey  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
