package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"travelagency/internal/domain/models"
)

type ClientsRepository struct {
	DB Queryer
	// Driver decides how the generated id is read back: PostgreSQL has no
	// LastInsertId, so it goes through RETURNING instead.
	Driver string
}

// Create inserts c as-is. Duplicate emails are accepted.
func (r ClientsRepository) Create(ctx context.Context, c models.NewClient) (models.Client, error) {
	out := models.Client{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Telephone: c.Telephone,
		Pesel:     c.Pesel,
	}

	query := `INSERT INTO clients (first_name, last_name, email, telephone, pesel) VALUES (?, ?, ?, ?, ?)`
	args := []any{c.FirstName, c.LastName, c.Email, c.Telephone, c.Pesel}

	if sqlx.BindType(r.Driver) == sqlx.DOLLAR {
		if err := sqlx.GetContext(ctx, r.DB, &out.ID, r.DB.Rebind(query+` RETURNING id`), args...); err != nil {
			return models.Client{}, fmt.Errorf("insert client: %w", err)
		}
		return out, nil
	}

	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), args...)
	if err != nil {
		return models.Client{}, fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Client{}, fmt.Errorf("read client id: %w", err)
	}
	out.ID = id
	return out, nil
}

func (r ClientsRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.DB, &n, r.DB.Rebind(`SELECT COUNT(1) FROM clients WHERE id = ?`), id); err != nil {
		return false, fmt.Errorf("check client %d: %w", id, err)
	}
	return n > 0, nil
}
