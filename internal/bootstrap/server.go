package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inf7m/hotel-booking-clone/api"
	"github.com/inf7m/hotel-booking-clone/config"
	"github.com/inf7m/hotel-booking-clone/internal/service/reservation"
	"github.com/inf7m/hotel-booking-clone/internal/service/rooms"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, reservationSvc reservation.ReservationUseCase, roomSvc rooms.RoomUseCase) error {
	httpServer := newServer(cfg, reservationSvc, roomSvc)

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, reservationSvc reservation.ReservationUseCase, roomSvc rooms.RoomUseCase) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery(), api.AccessLog())

	reservationHandler := api.NewReservationHandler(reservationSvc)
	roomHandler := api.NewRoomHandler(roomSvc)

	authed := router.Group("/api", api.ActorFromHeaders())
	reservationHandler.Register(authed.Group("/reservations"))
	reservationHandler.RegisterAdmin(authed.Group("/admin/reservations"))
	roomHandler.Register(authed.Group("/rooms"))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
	}

	return &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}
}
