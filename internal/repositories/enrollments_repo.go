package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// EnrollmentsRepository covers the client_trips join table.
type EnrollmentsRepository struct {
	DB Queryer
}

func (r EnrollmentsRepository) CountByTrip(ctx context.Context, tripID int64) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.DB, &n, r.DB.Rebind(`SELECT COUNT(1) FROM client_trips WHERE trip_id = ?`), tripID); err != nil {
		return 0, fmt.Errorf("count enrollments of trip %d: %w", tripID, err)
	}
	return n, nil
}

func (r EnrollmentsRepository) Exists(ctx context.Context, clientID, tripID int64) (bool, error) {
	var n int
	query := `SELECT COUNT(1) FROM client_trips WHERE client_id = ? AND trip_id = ?`
	if err := sqlx.GetContext(ctx, r.DB, &n, r.DB.Rebind(query), clientID, tripID); err != nil {
		return false, fmt.Errorf("check enrollment %d/%d: %w", clientID, tripID, err)
	}
	return n > 0, nil
}

func (r EnrollmentsRepository) Insert(ctx context.Context, clientID, tripID int64, registeredAt time.Time) error {
	query := `INSERT INTO client_trips (client_id, trip_id, registered_at) VALUES (?, ?, ?)`
	if _, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), clientID, tripID, registeredAt); err != nil {
		return fmt.Errorf("insert enrollment %d/%d: %w", clientID, tripID, err)
	}
	return nil
}

// Delete removes every enrollment row of the pair and reports how many went away.
func (r EnrollmentsRepository) Delete(ctx context.Context, clientID, tripID int64) (int64, error) {
	query := `DELETE FROM client_trips WHERE client_id = ? AND trip_id = ?`
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), clientID, tripID)
	if err != nil {
		return 0, fmt.Errorf("delete enrollment %d/%d: %w", clientID, tripID, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
