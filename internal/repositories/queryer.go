package repositories

import "github.com/jmoiron/sqlx"

// Queryer is the statement surface shared by *sqlx.DB, *sqlx.Conn and *sqlx.Tx.
// Repositories are handed whichever one the caller wants the statements to run on.
type Queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
	Rebind(query string) string
}
