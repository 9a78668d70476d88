package reservation

import (
	"context"
	"time"
)

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) share at least one night. Boundary equality is not an
// overlap, so one guest may check out the same day another checks in.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// IsAvailable reports whether the room has no pending, confirmed or
// completed reservation intersecting [checkIn, checkOut). The answer is a
// snapshot; Insert re-checks under the per-room lock before committing.
func (s *ReservationService) IsAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	overlapping, err := s.reservations.FindOverlapping(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, err
	}
	return len(overlapping) == 0, nil
}
