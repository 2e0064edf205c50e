package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"travelagency/internal/config"
)

//go:embed migrations
var migrationFS embed.FS

// Direction selects which way Migrate moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Migrate applies the embedded migrations for driver onto db.
// A schema that is already current is not an error.
func Migrate(db *sql.DB, driver string, dir Direction) error {
	m, err := newMigrator(db, driver)
	if err != nil {
		return err
	}

	switch dir {
	case Down:
		err = m.Down()
	default:
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug().Str("driver", driver).Msg("schema already up to date")
			return nil
		}
		return fmt.Errorf("cannot migrate %s: %w", dir, err)
	}

	version, dirty, _ := m.Version()
	log.Info().Str("driver", driver).Uint("version", version).Bool("dirty", dirty).Msg("migrations applied")
	return nil
}

func newMigrator(db *sql.DB, driver string) (*migrate.Migrate, error) {
	var (
		instance database.Driver
		dir      string
		err      error
	)

	switch driver {
	case config.DriverMySQL:
		dir = "migrations/mysql"
		instance, err = mysql.WithInstance(db, &mysql.Config{})
	case config.DriverPostgres:
		dir = "migrations/postgres"
		instance, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	case config.DriverSQLite:
		dir = "migrations/sqlite"
		instance, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot create %s migration driver: %w", driver, err)
	}

	src, err := iofs.New(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("cannot open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, instance)
	if err != nil {
		return nil, fmt.Errorf("cannot create migrate: %w", err)
	}
	return m, nil
}
