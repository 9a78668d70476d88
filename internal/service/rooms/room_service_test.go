package rooms

import (
	"context"
	"errors"
	"testing"

	"github.com/inf7m/hotel-booking-clone/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Room), args.Error(1)
}

type MockRoomCache struct {
	mock.Mock
}

func (m *MockRoomCache) GetRooms(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomCache) SetRooms(ctx context.Context, rooms []domain.Room) error {
	args := m.Called(ctx, rooms)
	return args.Error(0)
}

func TestRoomService_List_CacheHit(t *testing.T) {
	mockRepo := &MockRoomRepository{}
	mockCache := &MockRoomCache{}
	service := NewRoomService(mockRepo, mockCache)

	ctx := context.Background()
	cached := []domain.Room{{ID: "room-1", HotelID: "hotel-1", NightlyRate: 500000}}
	mockCache.On("GetRooms", ctx).Return(cached, nil).Once()

	list, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, list)
	mockRepo.AssertNotCalled(t, "List")
}

func TestRoomService_List_CacheMissFallsThrough(t *testing.T) {
	mockRepo := &MockRoomRepository{}
	mockCache := &MockRoomCache{}
	service := NewRoomService(mockRepo, mockCache)

	ctx := context.Background()
	stored := []domain.Room{{ID: "room-1"}, {ID: "room-2"}}
	mockCache.On("GetRooms", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(stored, nil).Once()
	mockCache.On("SetRooms", ctx, stored).Return(nil).Once()

	list, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, stored, list)
	mockCache.AssertExpectations(t)
}

func TestRoomService_List_NilCache(t *testing.T) {
	mockRepo := &MockRoomRepository{}
	service := NewRoomService(mockRepo, nil)

	ctx := context.Background()
	stored := []domain.Room{{ID: "room-1"}}
	mockRepo.On("List", ctx).Return(stored, nil).Once()

	list, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, stored, list)
}

func TestRoomService_GetByID(t *testing.T) {
	mockRepo := &MockRoomRepository{}
	service := NewRoomService(mockRepo, nil)

	ctx := context.Background()
	room := &domain.Room{ID: "room-1", NightlyRate: 500000}
	mockRepo.On("GetByID", ctx, "room-1").Return(room, nil).Once()
	mockRepo.On("GetByID", ctx, "missing").Return(nil, domain.ErrRoomNotFound).Once()

	found, err := service.GetByID(ctx, "room-1")
	assert.NoError(t, err)
	assert.Equal(t, room, found)

	_, err = service.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrRoomNotFound))
}
