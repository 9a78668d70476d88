package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/inf7m/hotel-booking-clone/config"
	"github.com/inf7m/hotel-booking-clone/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client   *redis.Client
	roomsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, roomsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		roomsTTL: roomsTTL,
	}
}

func (c *RedisCache) GetRooms(ctx context.Context) ([]domain.Room, error) {
	data, err := c.client.Get(ctx, roomsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var rooms []domain.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *RedisCache) SetRooms(ctx context.Context, rooms []domain.Room) error {
	payload, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, roomsKey(), payload, c.roomsTTL).Err()
}

// AcquireStayLock takes a short-lived lock on an exact room/date-range
// tuple so duplicate submits of the same stay collapse before reaching the
// store. The store's guarded insert stays the source of truth.
func (c *RedisCache) AcquireStayLock(ctx context.Context, roomID string, checkIn, checkOut time.Time, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, stayLockKey(roomID, checkIn, checkOut), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseStayLock(ctx context.Context, roomID string, checkIn, checkOut time.Time) error {
	return c.client.Del(ctx, stayLockKey(roomID, checkIn, checkOut)).Err()
}

func roomsKey() string {
	return "cache:rooms"
}

func stayLockKey(roomID string, checkIn, checkOut time.Time) string {
	return fmt.Sprintf("lock:room:%s:%s:%s", roomID, checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))
}
