package pricing

import (
	"testing"
	"time"

	"github.com/inf7m/hotel-booking-clone/internal/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuote_ThreeNights(t *testing.T) {
	nights, total, err := Quote(500000, date(2024, 5, 1), date(2024, 5, 4))

	assert.NoError(t, err)
	assert.Equal(t, 3, nights)
	assert.Equal(t, int64(1500000), total)
}

func TestQuote_SingleNight(t *testing.T) {
	nights, total, err := Quote(99, date(2024, 5, 1), date(2024, 5, 2))

	assert.NoError(t, err)
	assert.Equal(t, 1, nights)
	assert.Equal(t, int64(99), total)
}

func TestQuote_PartialDayRoundsUp(t *testing.T) {
	checkIn := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 5, 3, 11, 0, 0, 0, time.UTC)

	nights, total, err := Quote(100, checkIn, checkOut)

	assert.NoError(t, err)
	assert.Equal(t, 2, nights)
	assert.Equal(t, int64(200), total)
}

func TestQuote_InvalidRange(t *testing.T) {
	testCases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"check-out before check-in", date(2024, 5, 4), date(2024, 5, 1)},
		{"check-out equals check-in", date(2024, 5, 1), date(2024, 5, 1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			nights, total, err := Quote(100, tc.checkIn, tc.checkOut)

			assert.ErrorIs(t, err, domain.ErrInvalidRange)
			assert.Zero(t, nights)
			assert.Zero(t, total)
		})
	}
}

func TestQuote_Deterministic(t *testing.T) {
	checkIn, checkOut := date(2024, 7, 10), date(2024, 7, 15)

	firstNights, firstTotal, err := Quote(123456, checkIn, checkOut)
	assert.NoError(t, err)

	for i := 0; i < 100; i++ {
		nights, total, err := Quote(123456, checkIn, checkOut)
		assert.NoError(t, err)
		assert.Equal(t, firstNights, nights)
		assert.Equal(t, firstTotal, total)
	}
}
