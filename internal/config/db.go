package config

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// ConnectDB opens the connection pool for env.DBDriver and verifies it with a ping.
func ConnectDB(ctx context.Context, env Env) (*sqlx.DB, error) {
	db, err := sqlx.Open(env.DBDriver, env.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", env.DBDriver, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", env.DBDriver, err)
	}

	log.Info().Str("driver", env.DBDriver).Msg("connected to database")
	return db, nil
}
