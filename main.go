package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	intconfig "travelagency/internal/config"
	"travelagency/internal/db"
	router "travelagency/internal/http"
	"travelagency/internal/http/handlers"
	"travelagency/internal/logging"
	"travelagency/internal/services"
)

var (
	version = "dev"
	commit  = "none"
)

// CLI flags
var (
	addr      string
	dbDriver  string
	dbDSN     string
	verbosity int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "travelagency",
		Short:         "Travel agency API",
		Long:          `Serves the trip catalog, client registration and trip enrollments over HTTP.`,
		RunE:          serve,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&addr, "addr", "", "listen address (or set APP_ADDR)")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "database driver: mysql, pgx or sqlite (or set DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db-dsn", "", "database DSN (or set DB_DSN)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  serve,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(db.Up), string(db.Down)},
		RunE:      runMigrate,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("travelagency %s (commit: %s)\n", version, commit)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadEnv merges env vars with CLI flags; flags win.
func loadEnv() intconfig.Env {
	env := intconfig.LoadEnv()

	if addr != "" {
		env.AppAddr = addr
	}
	if dbDriver != "" {
		env.DBDriver = intconfig.NormalizeDriver(dbDriver)
		if dbDSN == "" && strings.TrimSpace(os.Getenv("DB_DSN")) == "" {
			env.DBDSN = intconfig.DefaultDSN(env.DBDriver)
		}
	}
	if dbDSN != "" {
		env.DBDSN = dbDSN
	}
	switch {
	case verbosity >= 2:
		env.LogLevel = "trace"
	case verbosity == 1:
		env.LogLevel = "debug"
	}

	logging.Apply(env.LogLevel, env.LogFile)
	return env
}

func serve(cmd *cobra.Command, args []string) error {
	env := loadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn, err := intconfig.ConnectDB(cmd.Context(), env)
	if err != nil {
		return err
	}
	defer conn.Close()

	if env.AutoMigrate {
		if err := db.Migrate(conn.DB, env.DBDriver, db.Up); err != nil {
			return err
		}
	}

	travel := services.NewTravelService(conn)
	r, err := router.NewRouter(env, &handlers.Handler{
		Travel:    travel,
		Itinerary: services.ItineraryService{Trips: travel},
		DB:        conn,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", env.AppAddr).Str("driver", env.DBDriver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	env := loadEnv()

	dir := db.Up
	if len(args) == 1 {
		dir = db.Direction(args[0])
	}

	conn, err := intconfig.ConnectDB(cmd.Context(), env)
	if err != nil {
		return err
	}
	defer conn.Close()

	return db.Migrate(conn.DB, env.DBDriver, dir)
}
