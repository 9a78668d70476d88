package reservation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/inf7m/hotel-booking-clone/internal/domain"
	"github.com/inf7m/hotel-booking-clone/internal/kafka"
	"github.com/inf7m/hotel-booking-clone/internal/pricing"
	"github.com/inf7m/hotel-booking-clone/internal/repository"
)

type ReservationUseCase interface {
	Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Reservation, error)
	ListMine(ctx context.Context, actor domain.Actor) ([]domain.Reservation, error)
	ListAll(ctx context.Context, actor domain.Actor, status *domain.ReservationStatus) ([]domain.Reservation, error)
	Transition(ctx context.Context, actor domain.Actor, id string, next domain.ReservationStatus) (*domain.Reservation, error)
	Cancel(ctx context.Context, actor domain.Actor, id string) (*domain.Reservation, error)
	HardDelete(ctx context.Context, actor domain.Actor, id string) error
	CompleteDeparted(ctx context.Context) ([]domain.Reservation, error)
}

type Cache interface {
	AcquireStayLock(ctx context.Context, roomID string, checkIn, checkOut time.Time, ttl time.Duration) (bool, error)
	ReleaseStayLock(ctx context.Context, roomID string, checkIn, checkOut time.Time) error
	GetRooms(ctx context.Context) ([]domain.Room, error)
	SetRooms(ctx context.Context, rooms []domain.Room) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ReservationService struct {
	reservations       repository.ReservationRepository
	rooms              repository.RoomRepository
	cache              Cache
	producer           Producer
	reservationTopic   string
	notificationsTopic string
	holdTTL            time.Duration
	now                func() time.Time
}

type CreateReservationInput struct {
	Actor           domain.Actor
	RoomID          string `json:"room_id"`
	HotelID         string `json:"hotel_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	GuestCount      int    `json:"guest_count"`
	SpecialRequests string `json:"special_requests"`
	IdempotencyKey  string `json:"-"`
}

type ReservationServiceOption func(*ReservationService)

func WithNotificationsTopic(topic string) ReservationServiceOption {
	return func(s *ReservationService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) ReservationServiceOption {
	return func(s *ReservationService) {
		s.now = now
	}
}

func NewReservationService(
	reservations repository.ReservationRepository,
	rooms repository.RoomRepository,
	cache Cache,
	producer Producer,
	reservationTopic string,
	holdTTL time.Duration,
	opts ...ReservationServiceOption,
) *ReservationService {
	service := &ReservationService{
		reservations:     reservations,
		rooms:            rooms,
		cache:            cache,
		producer:         producer,
		reservationTopic: reservationTopic,
		holdTTL:          holdTTL,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create books a room for [checkIn, checkOut). On success exactly one
// record is inserted; every failure path leaves the store untouched. The
// availability check here is a fast advisory rejection; the store's guarded
// insert is what actually closes the check-then-act race.
func (s *ReservationService) Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error) {
	checkIn, checkOut, err := parseStay(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if input.GuestCount <= 0 || input.GuestCount > room.Capacity {
		return nil, domain.ErrInvalidGuestCount
	}

	// A keyed retry must reach the store, where the idempotency lookup
	// resolves it to the already-inserted record; the advisory pre-checks
	// would otherwise reject it as an overlap with itself.
	retry := input.IdempotencyKey != ""

	if s.cache != nil && !retry {
		// Same-stay duplicate submits collapse here before touching the store.
		ok, err := s.cache.AcquireStayLock(ctx, input.RoomID, checkIn, checkOut, s.holdTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrRoomUnavailable
		}
		defer func() {
			_ = s.cache.ReleaseStayLock(ctx, input.RoomID, checkIn, checkOut)
		}()
	}

	if !retry {
		available, err := s.IsAvailable(ctx, input.RoomID, checkIn, checkOut)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, domain.ErrRoomUnavailable
		}
	}

	_, total, err := pricing.Quote(room.NightlyRate, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	created := &domain.Reservation{
		UserID:          input.Actor.UserID,
		RoomID:          input.RoomID,
		HotelID:         input.HotelID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		GuestCount:      input.GuestCount,
		SpecialRequests: input.SpecialRequests,
		TotalPrice:      total,
		IdempotencyKey:  input.IdempotencyKey,
	}
	if err := s.reservations.Insert(ctx, created); err != nil {
		return nil, err
	}

	s.publish(ctx, "reservation_created", created)
	return created, nil
}

func (s *ReservationService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Reservation, error) {
	found, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Operator && found.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return found, nil
}

func (s *ReservationService) ListMine(ctx context.Context, actor domain.Actor) ([]domain.Reservation, error) {
	return s.reservations.ListByUser(ctx, actor.UserID)
}

func (s *ReservationService) ListAll(ctx context.Context, actor domain.Actor, status *domain.ReservationStatus) ([]domain.Reservation, error) {
	if !actor.Operator {
		return nil, domain.ErrForbidden
	}
	return s.reservations.List(ctx, status)
}

// Transition moves a reservation to next if the edge is legal for the
// actor and the stored status has not changed underneath the caller. A
// lost compare-and-set race surfaces as ErrConflict; retrying from a fresh
// read is safe because no partial state is left behind.
func (s *ReservationService) Transition(ctx context.Context, actor domain.Actor, id string, next domain.ReservationStatus) (*domain.Reservation, error) {
	current, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.AuthorizeTransition(actor, current.UserID, current.Status, next); err != nil {
		return nil, err
	}

	updated, err := s.reservations.CompareAndSetStatus(ctx, id, current.Status, next)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "reservation_"+string(next), updated)
	return updated, nil
}

func (s *ReservationService) Cancel(ctx context.Context, actor domain.Actor, id string) (*domain.Reservation, error) {
	return s.Transition(ctx, actor, id, domain.ReservationStatusCancelled)
}

// HardDelete removes a reservation record outright. Administrative escape
// hatch, not part of the normal lifecycle.
func (s *ReservationService) HardDelete(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.Operator {
		return domain.ErrForbidden
	}
	return s.reservations.Delete(ctx, id)
}

// CompleteDeparted moves confirmed reservations whose checkout has passed
// to completed. Runs as a privileged sweep; a reservation that changed
// status or disappeared between the scan and the write is skipped, any
// other failure aborts the sweep and is reported to the caller.
func (s *ReservationService) CompleteDeparted(ctx context.Context) ([]domain.Reservation, error) {
	departed, err := s.reservations.FindDepartedConfirmed(ctx, s.now())
	if err != nil {
		return nil, err
	}

	completed := make([]domain.Reservation, 0, len(departed))
	for _, r := range departed {
		updated, err := s.reservations.CompareAndSetStatus(ctx, r.ID, domain.ReservationStatusConfirmed, domain.ReservationStatusCompleted)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrReservationNotFound) {
				continue
			}
			return completed, err
		}
		s.publish(ctx, "reservation_completed", updated)
		completed = append(completed, *updated)
	}
	return completed, nil
}

func (s *ReservationService) publish(ctx context.Context, eventType string, r *domain.Reservation) {
	if s.producer == nil || s.reservationTopic == "" {
		return
	}
	event := kafka.ReservationEvent{
		Type:       eventType,
		ID:         r.ID,
		UserID:     r.UserID,
		RoomID:     r.RoomID,
		HotelID:    r.HotelID,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		Status:     string(r.Status),
		TotalPrice: r.TotalPrice,
	}
	if err := s.producer.Publish(ctx, s.reservationTopic, r.ID, event); err != nil {
		log.Printf("publish %s event for reservation %s: %v", eventType, r.ID, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, r.ID, event); err != nil {
			log.Printf("publish %s notification for reservation %s: %v", eventType, r.ID, err)
		}
	}
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := parseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := parseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, domain.ErrInvalidRange
	}
	return in, out, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad date %q", domain.ErrInvalidRange, value)
}

var _ ReservationUseCase = (*ReservationService)(nil)
