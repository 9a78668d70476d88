package email

import (
	"context"
	"log"

	"github.com/inf7m/hotel-booking-clone/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	log.Printf("notify user %s: reservation %s is now %s (room %s, %s to %s)",
		event.UserID, event.ID, event.Status, event.RoomID,
		event.CheckIn.Format("2006-01-02"), event.CheckOut.Format("2006-01-02"))
	return nil
}
