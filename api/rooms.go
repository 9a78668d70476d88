package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inf7m/hotel-booking-clone/internal/domain"
	"github.com/inf7m/hotel-booking-clone/internal/service/rooms"
)

type RoomHandler struct {
	service rooms.RoomUseCase
}

type roomResponse struct {
	ID          string `json:"id"`
	HotelID     string `json:"hotel_id"`
	RoomType    string `json:"room_type"`
	RoomNumber  string `json:"room_number"`
	NightlyRate int64  `json:"nightly_rate"`
	Capacity    int    `json:"capacity"`
}

func NewRoomHandler(service rooms.RoomUseCase) *RoomHandler {
	return &RoomHandler{service: service}
}

func (h *RoomHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *RoomHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]roomResponse, 0, len(list))
	for i := range list {
		out = append(out, toRoomResponse(&list[i]))
	}
	c.JSON(http.StatusOK, gin.H{"rooms": out})
}

func (h *RoomHandler) get(c *gin.Context) {
	room, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(room))
}

func toRoomResponse(r *domain.Room) roomResponse {
	return roomResponse{
		ID:          r.ID,
		HotelID:     r.HotelID,
		RoomType:    r.RoomType,
		RoomNumber:  r.RoomNumber,
		NightlyRate: r.NightlyRate,
		Capacity:    r.Capacity,
	}
}
