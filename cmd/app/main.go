package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inf7m/hotel-booking-clone/config"
	"github.com/inf7m/hotel-booking-clone/internal/bootstrap"
	"github.com/inf7m/hotel-booking-clone/internal/cache"
	"github.com/inf7m/hotel-booking-clone/internal/kafka"
	"github.com/inf7m/hotel-booking-clone/internal/repository"
	"github.com/inf7m/hotel-booking-clone/internal/service/reservation"
	"github.com/inf7m/hotel-booking-clone/internal/service/rooms"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.RoomsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	roomRepo := repository.NewRoomRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	roomService := rooms.NewRoomService(roomRepo, redisCache)
	reservationService := reservation.NewReservationService(
		reservationRepo,
		roomRepo,
		redisCache,
		producer,
		cfg.Kafka.ReservationsTopic,
		time.Duration(cfg.Booking.StayLockTTLSeconds)*time.Second,
		reservation.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, reservationService, roomService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
