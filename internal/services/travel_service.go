package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"travelagency/internal/domain"
	"travelagency/internal/domain/models"
	"travelagency/internal/repositories"
	"travelagency/internal/utils"
)

// TravelService runs the agency operations. Every call checks out exactly one
// pooled connection, issues its statements on it in order and hands it back
// before returning.
//
// RegisterClientToTrip reads the enrollment count and inserts on that
// connection without a transaction: two concurrent enrollments into a nearly
// full trip can both pass the capacity check. Callers must not rely on
// capacity being enforced under concurrent load.
type TravelService struct {
	DB  *sqlx.DB
	Now func() time.Time
}

func NewTravelService(db *sqlx.DB) *TravelService {
	return &TravelService{DB: db, Now: utils.NowUTC}
}

func (s *TravelService) conn(ctx context.Context) (*sqlx.Conn, error) {
	c, err := s.DB.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return c, nil
}

func (s *TravelService) ListTrips(ctx context.Context) ([]models.TripSummary, error) {
	c, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return repositories.TripsRepository{DB: c}.List(ctx)
}

// ListClientTrips returns the trips of clientID. No row at all is reported as
// ErrClientNotFound, so a client without enrollments looks exactly like a
// missing one. The first row only proves existence and is left out; when
// nothing remains after it the result is ErrNoTripsFound.
func (s *TravelService) ListClientTrips(ctx context.Context, clientID int64) ([]models.TripSummary, error) {
	c, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	trips, found, err := repositories.TripsRepository{DB: c}.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrClientNotFound
	}
	if len(trips) == 0 {
		return nil, domain.ErrNoTripsFound
	}
	return trips, nil
}

// CreateClient stores nc without further checks; input is validated upstream.
func (s *TravelService) CreateClient(ctx context.Context, nc models.NewClient) (models.Client, error) {
	c, err := s.conn(ctx)
	if err != nil {
		return models.Client{}, err
	}
	defer c.Close()

	client, err := repositories.ClientsRepository{DB: c, Driver: s.DB.DriverName()}.Create(ctx, nc)
	if err != nil {
		return models.Client{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "clients", "create", fmt.Sprintf("client_id=%d", client.ID))
	return client, nil
}

func (s *TravelService) RegisterClientToTrip(ctx context.Context, clientID, tripID int64) error {
	c, err := s.conn(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	clients := repositories.ClientsRepository{DB: c}
	trips := repositories.TripsRepository{DB: c}
	enrollments := repositories.EnrollmentsRepository{DB: c}

	ok, err := clients.Exists(ctx, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrClientNotFound
	}

	ok, err = trips.Exists(ctx, tripID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrTripNotFound
	}

	maxPeople, err := trips.MaxPeople(ctx, tripID)
	if err != nil {
		return err
	}
	current, err := enrollments.CountByTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if current >= maxPeople {
		utils.LogEvent(utils.RequestIDFrom(ctx), "enrollments", "register_rejected",
			fmt.Sprintf("client_id=%d trip_id=%d current=%d max=%d", clientID, tripID, current, maxPeople))
		return domain.ErrTooManyParticipants
	}

	if err := enrollments.Insert(ctx, clientID, tripID, s.now()); err != nil {
		return err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "enrollments", "register", fmt.Sprintf("client_id=%d trip_id=%d", clientID, tripID))
	return nil
}

func (s *TravelService) DeleteClientFromTrip(ctx context.Context, clientID, tripID int64) error {
	c, err := s.conn(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	enrollments := repositories.EnrollmentsRepository{DB: c}

	ok, err := enrollments.Exists(ctx, clientID, tripID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrRegistrationNotFound
	}

	removed, err := enrollments.Delete(ctx, clientID, tripID)
	if err != nil {
		return err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "enrollments", "delete", fmt.Sprintf("client_id=%d trip_id=%d removed=%d", clientID, tripID, removed))
	return nil
}

// CountTrips backs the db-check endpoint.
func (s *TravelService) CountTrips(ctx context.Context) (int, error) {
	c, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer c.Close()

	return repositories.TripsRepository{DB: c}.Count(ctx)
}

func (s *TravelService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}
