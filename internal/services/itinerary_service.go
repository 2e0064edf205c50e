package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"travelagency/internal/domain/models"
	"travelagency/internal/utils"
)

type ClientTripLister interface {
	ListClientTrips(ctx context.Context, clientID int64) ([]models.TripSummary, error)
}

// ItineraryService renders the trips of one client as a printable PDF.
type ItineraryService struct {
	Trips ClientTripLister
}

// Generate returns the PDF bytes and a download file name. Errors from the
// listing (ErrClientNotFound included) are passed through untouched.
func (s ItineraryService) Generate(ctx context.Context, clientID int64) ([]byte, string, error) {
	trips, err := s.Trips.ListClientTrips(ctx, clientID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "itinerary", "generate", fmt.Sprintf("client_id=%d trips=%d", clientID, len(trips)))
	return buildItineraryPDF(clientID, trips)
}

func buildItineraryPDF(clientID int64, trips []models.TripSummary) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Itinerary", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ITINERARY")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Client    : #%d", clientID))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Generated : "+utils.FormatDateTime(utils.NowUTC()))
	pdf.Ln(10)

	for i, t := range trips {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("%d) %s", i+1, safe(t.Name, "-")))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		country := "-"
		if t.Country != nil {
			country = safe(*t.Country, "-")
		}
		lines := []string{
			fmt.Sprintf("Dates      : %s -> %s", safe(utils.FormatDate(t.DateFrom), "-"), safe(utils.FormatDate(t.DateTo), "-")),
			fmt.Sprintf("Country    : %s", country),
			fmt.Sprintf("Max people : %d", t.MaxPeople),
		}
		for _, l := range lines {
			pdf.Cell(0, 6, l)
			pdf.Ln(6)
		}
		if d := strings.TrimSpace(t.Description); d != "" {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 5, d, "", "", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("ITINERARY_CLIENT_%d.pdf", clientID), nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
