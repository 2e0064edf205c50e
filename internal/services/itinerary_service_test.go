package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
)

type stubLister struct {
	trips []models.TripSummary
	err   error
}

func (s stubLister) ListClientTrips(context.Context, int64) ([]models.TripSummary, error) {
	return s.trips, s.err
}

func TestItineraryServiceGenerate(t *testing.T) {
	country := "Norway"
	svc := ItineraryService{Trips: stubLister{trips: []models.TripSummary{
		{
			ID:          3,
			Name:        "Fjord Cruise",
			Description: "Bergen to Geiranger",
			DateFrom:    time.Date(2027, 7, 1, 0, 0, 0, 0, time.UTC),
			DateTo:      time.Date(2027, 7, 12, 0, 0, 0, 0, time.UTC),
			MaxPeople:   30,
			Country:     &country,
		},
		{ID: 4, Name: "City Break", MaxPeople: 2},
	}}}

	pdf, filename, err := svc.Generate(context.Background(), 7)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "ITINERARY_CLIENT_7.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestItineraryServicePassesNotFoundThrough(t *testing.T) {
	svc := ItineraryService{Trips: stubLister{err: domain.ErrClientNotFound}}

	_, _, err := svc.Generate(context.Background(), 99)
	if !errors.Is(err, domain.ErrClientNotFound) || !domain.IsNotFound(err) {
		t.Fatalf("expected client not found, got %v", err)
	}
}
