package api

import (
	"fmt"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	intconfig "travelagency/internal/config"
	h "travelagency/internal/http/handlers"
	"travelagency/internal/http/middleware"
)

func NewRouter(env intconfig.Env, handler *h.Handler) (*gin.Engine, error) {
	if err := h.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register request validators: %w", err)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"code":   "not_found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/health", handler.Health)
	r.GET("/db-check", handler.DBCheck)

	r.GET("/trips", handler.ListTrips)

	clients := r.Group("/clients")
	clients.POST("", handler.CreateClient)
	clients.GET("/:id/trips", handler.ListClientTrips)
	clients.GET("/:id/trips/itinerary", handler.ClientItineraryPDF)
	clients.PUT("/:id/trips/:tripId", handler.RegisterClientToTrip)
	clients.DELETE("/:id/trips/:tripId", handler.DeleteClientFromTrip)

	return r, nil
}
