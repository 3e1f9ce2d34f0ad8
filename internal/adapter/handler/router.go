package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	CORSOrigins []string
	Log         *slog.Logger
}

func NewRouter(cfg RouterConfig, bookings *BookingHandler, tours *TourHandler) *gin.Engine {
	RegisterValidators()

	r := gin.New()
	r.Use(RequestID(), Logger(cfg.Log), gin.Recovery(), CORS(cfg.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		cfg.Log.Warn("failed to set trusted proxies", "error", err)
	}

	r.NoRoute(func(c *gin.Context) {
		respondFail(c, http.StatusNotFound, "route not found: "+c.Request.Method+" "+c.Request.URL.Path)
	})

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			respondOK(c, gin.H{"status": "ok"})
		})

		api.POST("/book", bookings.Book)
		api.GET("/get_tour_bookings", bookings.GetTourBookings)
		api.GET("/search_booking", bookings.SearchBooking)

		api.POST("/create_tour", tours.CreateTour)
		api.POST("/delete_tour", tours.DeleteTour)
		api.GET("/tours", tours.ListTours)
		api.GET("/tour", tours.GetTour)
	}

	return r
}
