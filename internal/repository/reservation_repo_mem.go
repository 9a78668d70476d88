package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inf7m/hotel-booking-clone/internal/domain"
)

// MemReservationRepository keeps reservations in process memory. It backs
// tests and local runs without Postgres; the overlap guarantee holds the
// same way as in the SQL store, with the write lock held across the
// check-then-insert standing in for the advisory lock.
type MemReservationRepository struct {
	mu            sync.RWMutex
	reservations  map[string]*domain.Reservation
	byIdempotency map[string]string
}

func NewMemReservationRepository() *MemReservationRepository {
	return &MemReservationRepository{
		reservations:  make(map[string]*domain.Reservation),
		byIdempotency: make(map[string]string),
	}
}

func overlaps(r *domain.Reservation, checkIn, checkOut time.Time) bool {
	return r.CheckIn.Before(checkOut) && checkIn.Before(r.CheckOut)
}

func (m *MemReservationRepository) FindOverlapping(_ context.Context, roomID string, checkIn, checkOut time.Time) ([]domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := make([]domain.Reservation, 0)
	for _, r := range m.reservations {
		if r.RoomID == roomID && r.Status != domain.ReservationStatusCancelled && overlaps(r, checkIn, checkOut) {
			found = append(found, *r)
		}
	}
	return found, nil
}

func (m *MemReservationRepository) Insert(_ context.Context, reservation *domain.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reservation.IdempotencyKey != "" {
		if id, ok := m.byIdempotency[reservation.IdempotencyKey]; ok {
			*reservation = *m.reservations[id]
			return nil
		}
	}

	for _, r := range m.reservations {
		if r.RoomID == reservation.RoomID && r.Status != domain.ReservationStatusCancelled && overlaps(r, reservation.CheckIn, reservation.CheckOut) {
			return domain.ErrRoomUnavailable
		}
	}

	now := time.Now()
	reservation.ID = uuid.NewString()
	reservation.Status = domain.ReservationStatusPending
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	stored := *reservation
	m.reservations[stored.ID] = &stored
	if stored.IdempotencyKey != "" {
		m.byIdempotency[stored.IdempotencyKey] = stored.ID
	}
	return nil
}

func (m *MemReservationRepository) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *MemReservationRepository) CompareAndSetStatus(_ context.Context, id string, expected, next domain.ReservationStatus) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	if r.Status != expected {
		return nil, domain.ErrConflict
	}

	r.Status = next
	r.UpdatedAt = time.Now()
	copied := *r
	return &copied, nil
}

func (m *MemReservationRepository) ListByUser(_ context.Context, userID string) ([]domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := make([]domain.Reservation, 0)
	for _, r := range m.reservations {
		if r.UserID == userID {
			found = append(found, *r)
		}
	}
	sortNewestFirst(found)
	return found, nil
}

func (m *MemReservationRepository) List(_ context.Context, status *domain.ReservationStatus) ([]domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := make([]domain.Reservation, 0)
	for _, r := range m.reservations {
		if status == nil || r.Status == *status {
			found = append(found, *r)
		}
	}
	sortNewestFirst(found)
	return found, nil
}

func (m *MemReservationRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reservations[id]
	if !ok {
		return domain.ErrReservationNotFound
	}
	if r.IdempotencyKey != "" {
		delete(m.byIdempotency, r.IdempotencyKey)
	}
	delete(m.reservations, id)
	return nil
}

func (m *MemReservationRepository) FindDepartedConfirmed(_ context.Context, before time.Time) ([]domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := make([]domain.Reservation, 0)
	for _, r := range m.reservations {
		if r.Status == domain.ReservationStatusConfirmed && !r.CheckOut.After(before) {
			found = append(found, *r)
		}
	}
	return found, nil
}

func sortNewestFirst(reservations []domain.Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
	})
}

var _ ReservationRepository = (*MemReservationRepository)(nil)
