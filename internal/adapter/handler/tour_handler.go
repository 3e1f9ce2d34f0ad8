package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/tour_booking/internal/core/domain"
	"github.com/srgjo27/tour_booking/internal/core/services"
)

type TourHandler struct {
	svc *services.TourService
	log *slog.Logger
}

func NewTourHandler(svc *services.TourService, log *slog.Logger) *TourHandler {
	return &TourHandler{svc: svc, log: log}
}

type createTourRequest struct {
	Date         string `json:"date" binding:"required,datetime=2006-01-02"`
	Time         string `json:"time" binding:"required,datetime=15:04"`
	Destination  string `json:"destination" binding:"required"`
	VehicleModel string `json:"vehicle_model"`
	MaxSeats     int    `json:"max_seats" binding:"omitempty,min=1,max=99"`
}

type deleteTourRequest struct {
	TourID int64 `json:"tour_id" binding:"required,gt=0"`
}

func (h *TourHandler) CreateTour(c *gin.Context) {
	var req createTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	tour, err := h.svc.CreateTour(c.Request.Context(), domain.TourInput{
		Date:         req.Date,
		Time:         req.Time,
		Destination:  req.Destination,
		VehicleModel: req.VehicleModel,
		MaxSeats:     req.MaxSeats,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, gin.H{"tour_id": tour.ID})
}

func (h *TourHandler) DeleteTour(c *gin.Context) {
	var req deleteTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	if err := h.svc.DeleteTour(c.Request.Context(), req.TourID); err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, nil)
}

func (h *TourHandler) ListTours(c *gin.Context) {
	tours, err := h.svc.ListTours(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, gin.H{"data": tours})
}

func (h *TourHandler) GetTour(c *gin.Context) {
	tourID, ok := tourIDQuery(c)
	if !ok {
		return
	}

	tour, err := h.svc.GetTour(c.Request.Context(), tourID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, gin.H{"data": tour})
}
