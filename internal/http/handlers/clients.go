package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListClientTrips handles GET /clients/:id/trips.
func (h *Handler) ListClientTrips(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	trips, err := h.Travel.ListClientTrips(c.Request.Context(), clientID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// CreateClient handles POST /clients.
func (h *Handler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}
	client, err := h.Travel.CreateClient(c.Request.Context(), req.toModel())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/clients/%d", client.ID))
	c.JSON(http.StatusCreated, client)
}

// RegisterClientToTrip handles PUT /clients/:id/trips/:tripId.
func (h *Handler) RegisterClientToTrip(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tripID, ok := pathID(c, "tripId")
	if !ok {
		return
	}
	if err := h.Travel.RegisterClientToTrip(c.Request.Context(), clientID, tripID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteClientFromTrip handles DELETE /clients/:id/trips/:tripId.
func (h *Handler) DeleteClientFromTrip(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tripID, ok := pathID(c, "tripId")
	if !ok {
		return
	}
	if err := h.Travel.DeleteClientFromTrip(c.Request.Context(), clientID, tripID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClientItineraryPDF handles GET /clients/:id/trips/itinerary (inline PDF).
func (h *Handler) ClientItineraryPDF(c *gin.Context) {
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := h.Itinerary.Generate(c.Request.Context(), clientID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
