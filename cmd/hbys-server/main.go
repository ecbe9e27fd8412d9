package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/config"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/domain/activitylog"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/domain/admin"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/domain/appointment"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/domain/branch"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/domain/branchcard"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/domain/invoice"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/domain/note"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/domain/patient"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/domain/reports"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/domain/treatment"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/domain/user"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/auth"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/db"
	"github.com/yasingulsoy/hospitadent-hbys-sub001/internal/platform/middleware"
)

func main() {
	root := &cobra.Command{
		Use:   "hbys-server",
		Short: "Multi-branch clinic management API",
	}
	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	var logger zerolog.Logger
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return logger
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			cancel()
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()
			logger.Info().Msg("connected to database")

			issuer := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)

			// Repositories
			userRepo := user.NewRepoPG(pool)
			branchRepo := branch.NewRepoPG(pool)
			patientRepo := patient.NewRepoPG(pool)
			appointmentRepo := appointment.NewRepoPG(pool)
			treatmentRepo := treatment.NewRepoPG(pool)
			invoiceRepo := invoice.NewRepoPG(pool)
			noteRepo := note.NewRepoPG(pool)
			activityRepo := activitylog.NewRepoPG(pool)
			cardRepo := branchcard.NewRepoPG(pool)
			reportsRepo := reports.NewRepoPG(pool)
			connRepo := admin.NewConnectionRepoPG(pool)
			savedQueryRepo := admin.NewSavedQueryRepoPG(pool)

			// Services
			userSvc := user.NewService(userRepo, issuer)
			branchSvc := branch.NewService(branchRepo)
			patientSvc := patient.NewService(patientRepo)
			appointmentSvc := appointment.NewService(appointmentRepo)
			treatmentSvc := treatment.NewService(treatmentRepo)
			invoiceSvc := invoice.NewService(invoiceRepo)
			noteSvc := note.NewService(noteRepo)
			cardSvc := branchcard.NewService(cardRepo, logger)
			reportsSvc := reports.NewService(reportsRepo, logger)
			adminSvc := admin.NewService(connRepo, savedQueryRepo, admin.NewLiveExecutor(), cfg.ExtQueryTimeout, logger)

			e := echo.New()
			e.HideBanner = true
			e.Use(middleware.RequestID())
			e.Use(middleware.Logger(logger))
			e.Use(middleware.Recovery(logger))
			e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
				AllowOrigins: cfg.CORSOrigins,
				AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
				AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
			}))

			e.GET("/health", db.HealthHandler(pool))

			// Public routes
			public := e.Group("/api")
			user.NewHandler(userSvc).RegisterPublicRoutes(public)

			// Authenticated routes
			api := e.Group("/api")
			api.Use(auth.Middleware(issuer, user.NewLoader(userRepo)))
			api.Use(middleware.Activity(logger, activitylog.NewRecorder(activityRepo)))

			user.NewHandler(userSvc).RegisterRoutes(api)
			branch.NewHandler(branchSvc).RegisterRoutes(api)
			patient.NewHandler(patientSvc).RegisterRoutes(api)
			appointment.NewHandler(appointmentSvc).RegisterRoutes(api)
			treatment.NewHandler(treatmentSvc).RegisterRoutes(api)
			invoice.NewHandler(invoiceSvc).RegisterRoutes(api)
			note.NewHandler(noteSvc).RegisterRoutes(api)
			branchcard.NewHandler(cardSvc).RegisterRoutes(api)
			reports.NewHandler(reportsSvc).RegisterRoutes(api)

			adminGroup := api.Group("/admin", auth.RequireAdmin())
			admin.NewHandler(adminSvc).RegisterRoutes(adminGroup)
			activitylog.NewHandler(activityRepo).RegisterRoutes(adminGroup)

			// Start server with graceful shutdown
			go func() {
				addr := ":" + cfg.Port
				logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
				if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server stopped unexpectedly")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			logger.Info().Msg("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}

func migrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}

	var dir string
	migrate.PersistentFlags().StringVar(&dir, "dir", "migrations", "migrations directory")

	withMigrator := func(run func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			pool, err := db.NewPool(ctx, cfg.DatabaseURL, 2, 1)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			return run(ctx, db.NewMigrator(pool, dir), logger)
		}
	}

	migrate.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: withMigrator(func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error {
			applied, err := m.Up(ctx)
			if err != nil {
				return err
			}
			logger.Info().Int("applied", applied).Msg("migrations complete")
			return nil
		}),
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: withMigrator(func(ctx context.Context, m *db.Migrator, logger zerolog.Logger) error {
			statuses, err := m.Status(ctx)
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Printf("%4d  %-40s  %s\n", s.Version, s.Name, state)
			}
			return nil
		}),
	})

	return migrate
}
