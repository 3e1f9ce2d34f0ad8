package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/tour_booking/internal/core/domain"
	"github.com/srgjo27/tour_booking/internal/core/services"
)

type BookingHandler struct {
	svc *services.BookingService
	log *slog.Logger
}

func NewBookingHandler(svc *services.BookingService, log *slog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, log: log}
}

type bookRequest struct {
	TourID      int64  `json:"tour_id" binding:"required,gt=0"`
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required,cnphone"`
	SeatNumbers []int  `json:"seat_numbers"`
}

func (h *BookingHandler) Book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	resp, err := h.svc.Book(c.Request.Context(), domain.BookingRequest{
		TourID:      req.TourID,
		Name:        req.Name,
		Phone:       req.Phone,
		SeatNumbers: req.SeatNumbers,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, gin.H{
		"message":      "预订成功",
		"booking_code": resp.BookingCode,
		"data":         resp.Booking,
	})
}

func (h *BookingHandler) GetTourBookings(c *gin.Context) {
	tourID, ok := tourIDQuery(c)
	if !ok {
		return
	}

	records, err := h.svc.ListTourBookings(c.Request.Context(), tourID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, gin.H{"data": records})
}

func (h *BookingHandler) SearchBooking(c *gin.Context) {
	records, err := h.svc.SearchBookings(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, gin.H{"data": records})
}

func tourIDQuery(c *gin.Context) (int64, bool) {
	tourID, err := strconv.ParseInt(c.Query("tour_id"), 10, 64)
	if err != nil || tourID <= 0 {
		respondFail(c, http.StatusBadRequest, "tour_id 无效")
		return 0, false
	}
	return tourID, true
}
