package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListTrips handles GET /trips.
func (h *Handler) ListTrips(c *gin.Context) {
	trips, err := h.Travel.ListTrips(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}
