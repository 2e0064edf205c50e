package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"travelagency/internal/domain/models"
)

const tripSummaryColumns = `t.id, t.name, t.description, t.date_from, t.date_to, t.max_people, c.name AS country_name`

type TripsRepository struct {
	DB Queryer
}

// List returns every trip ordered by id, one entry per trip.
func (r TripsRepository) List(ctx context.Context) ([]models.TripSummary, error) {
	query := `SELECT ` + tripSummaryColumns + `
		FROM trips t
		LEFT JOIN country_trips ct ON ct.trip_id = t.id
		LEFT JOIN countries c ON c.id = ct.country_id
		ORDER BY t.id ASC, c.name ASC`

	rows := []models.TripSummary{}
	if err := sqlx.SelectContext(ctx, r.DB, &rows, r.DB.Rebind(query)); err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return collapseByTrip(rows), nil
}

// ListByClient returns the trips clientID is enrolled in and whether the
// query produced any row at all. The first row read serves as the existence
// check and is not part of the returned trips, so found can be true while the
// slice is empty.
func (r TripsRepository) ListByClient(ctx context.Context, clientID int64) ([]models.TripSummary, bool, error) {
	query := `SELECT ` + tripSummaryColumns + `
		FROM trips t
		INNER JOIN client_trips e ON e.trip_id = t.id
		LEFT JOIN country_trips ct ON ct.trip_id = t.id
		LEFT JOIN countries c ON c.id = ct.country_id
		WHERE e.client_id = ?
		ORDER BY t.id ASC, c.name ASC`

	rows := []models.TripSummary{}
	if err := sqlx.SelectContext(ctx, r.DB, &rows, r.DB.Rebind(query), clientID); err != nil {
		return nil, false, fmt.Errorf("list trips of client %d: %w", clientID, err)
	}
	if len(rows) == 0 {
		return rows, false, nil
	}
	return collapseByTrip(rows[1:]), true, nil
}

func (r TripsRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.DB, &n, r.DB.Rebind(`SELECT COUNT(1) FROM trips WHERE id = ?`), id); err != nil {
		return false, fmt.Errorf("check trip %d: %w", id, err)
	}
	return n > 0, nil
}

func (r TripsRepository) MaxPeople(ctx context.Context, id int64) (int, error) {
	var maxPeople int
	if err := sqlx.GetContext(ctx, r.DB, &maxPeople, r.DB.Rebind(`SELECT max_people FROM trips WHERE id = ?`), id); err != nil {
		return 0, fmt.Errorf("read max_people of trip %d: %w", id, err)
	}
	return maxPeople, nil
}

func (r TripsRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.DB, &n, `SELECT COUNT(*) FROM trips`); err != nil {
		return 0, fmt.Errorf("count trips: %w", err)
	}
	return n, nil
}

// collapseByTrip keeps the first row of every run of equal trip ids, so a trip
// joined to several countries (or enrolled twice) is reported once.
// rows must be ordered by trip id.
func collapseByTrip(rows []models.TripSummary) []models.TripSummary {
	out := make([]models.TripSummary, 0, len(rows))
	for _, row := range rows {
		if n := len(out); n > 0 && out[n-1].ID == row.ID {
			continue
		}
		out = append(out, row)
	}
	return out
}
