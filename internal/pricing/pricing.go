package pricing

import (
	"math"
	"time"

	"github.com/inf7m/hotel-booking-clone/internal/domain"
)

const nightHours = 24

// Quote computes the number of nights in [checkIn, checkOut) and the total
// price at the given nightly rate. Partial days round up to a whole night.
// The result depends only on the arguments; rates are snapshots taken by
// the caller, never re-read here.
func Quote(nightlyRate int64, checkIn, checkOut time.Time) (nights int, total int64, err error) {
	if !checkOut.After(checkIn) {
		return 0, 0, domain.ErrInvalidRange
	}

	span := checkOut.Sub(checkIn)
	nights = int(math.Ceil(span.Hours() / nightHours))
	return nights, nightlyRate * int64(nights), nil
}
