package handlers

import (
	"context"

	"travelagency/internal/domain/models"
)

// TravelService is what the handlers need from the service layer.
type TravelService interface {
	ListTrips(ctx context.Context) ([]models.TripSummary, error)
	ListClientTrips(ctx context.Context, clientID int64) ([]models.TripSummary, error)
	CreateClient(ctx context.Context, nc models.NewClient) (models.Client, error)
	RegisterClientToTrip(ctx context.Context, clientID, tripID int64) error
	DeleteClientFromTrip(ctx context.Context, clientID, tripID int64) error
	CountTrips(ctx context.Context) (int, error)
}

type ItineraryRenderer interface {
	Generate(ctx context.Context, clientID int64) ([]byte, string, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	Travel    TravelService
	Itinerary ItineraryRenderer
	DB        Pinger
}
