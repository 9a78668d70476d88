package domain

import "errors"

var (
	ErrInvalidRange        = errors.New("check-out must be after check-in")
	ErrInvalidGuestCount   = errors.New("guest count is invalid for this room")
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomUnavailable     = errors.New("room is already booked for these dates")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrForbidden           = errors.New("actor is not allowed to perform this action")
	ErrInvalidTransition   = errors.New("illegal status transition")
	ErrConflict            = errors.New("reservation was modified concurrently")
	ErrStoreUnavailable    = errors.New("reservation store is unavailable")
)
