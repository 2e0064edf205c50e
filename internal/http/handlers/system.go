package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "travel agency api is running"})
}

// DBCheck pings the pool and counts trips.
func (h *Handler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		respondError(c, http.StatusInternalServerError, "db_unavailable", "database is not connected", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("db ping failed")
		respondError(c, http.StatusInternalServerError, "db_unavailable", "database ping failed", nil)
		return
	}
	count, err := h.Travel.CountTrips(ctx)
	if err != nil {
		log.Error().Err(err).Msg("db check query failed")
		respondError(c, http.StatusInternalServerError, "db_unavailable", "database query failed", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "trips_in_db": count})
}
