package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inf7m/hotel-booking-clone/internal/domain"
	"github.com/inf7m/hotel-booking-clone/internal/service/reservation"
)

type ReservationHandler struct {
	service reservation.ReservationUseCase
}

type createReservationRequest struct {
	RoomID          string `json:"room_id"`
	HotelID         string `json:"hotel_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	GuestCount      int    `json:"guest_count"`
	SpecialRequests string `json:"special_requests"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type reservationResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	RoomID          string `json:"room_id"`
	HotelID         string `json:"hotel_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	GuestCount      int    `json:"guest_count"`
	SpecialRequests string `json:"special_requests"`
	TotalPrice      int64  `json:"total_price"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func NewReservationHandler(service reservation.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.listMine)
	router.GET("/:id", h.get)
	router.PATCH("/:id/cancel", h.cancel)
	router.PATCH("/:id/status", h.updateStatus)
}

func (h *ReservationHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("/", h.listAll)
	router.DELETE("/:id", h.remove)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), reservation.CreateReservationInput{
		Actor:           actorFrom(c),
		RoomID:          req.RoomID,
		HotelID:         req.HotelID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		GuestCount:      req.GuestCount,
		SpecialRequests: req.SpecialRequests,
		IdempotencyKey:  c.GetHeader("X-Idempotency-Key"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(created))
}

func (h *ReservationHandler) get(c *gin.Context) {
	found, err := h.service.Get(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(found))
}

func (h *ReservationHandler) listMine(c *gin.Context) {
	reservations, err := h.service.ListMine(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": toResponses(reservations)})
}

func (h *ReservationHandler) listAll(c *gin.Context) {
	var filter *domain.ReservationStatus
	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseReservationStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + raw})
			return
		}
		filter = &status
	}

	reservations, err := h.service.ListAll(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": toResponses(reservations)})
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	cancelled, err := h.service.Cancel(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(cancelled))
}

func (h *ReservationHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next, ok := domain.ParseReservationStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + req.Status})
		return
	}

	updated, err := h.service.Transition(c.Request.Context(), actorFrom(c), c.Param("id"), next)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(updated))
}

func (h *ReservationHandler) remove(c *gin.Context) {
	if err := h.service.HardDelete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation deleted"})
}

func toResponse(r *domain.Reservation) reservationResponse {
	return reservationResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		RoomID:          r.RoomID,
		HotelID:         r.HotelID,
		CheckIn:         r.CheckIn.Format("2006-01-02"),
		CheckOut:        r.CheckOut.Format("2006-01-02"),
		GuestCount:      r.GuestCount,
		SpecialRequests: r.SpecialRequests,
		TotalPrice:      r.TotalPrice,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}
}

func toResponses(reservations []domain.Reservation) []reservationResponse {
	out := make([]reservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, toResponse(&reservations[i]))
	}
	return out
}
