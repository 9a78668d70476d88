package domain

import "time"

// Room is an immutable snapshot of a catalog entry at booking time.
// Each room is a single bookable unit, not a pool of identical units.
type Room struct {
	ID          string
	HotelID     string
	RoomType    string
	RoomNumber  string
	NightlyRate int64
	Capacity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
