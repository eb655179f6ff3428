package main

import (
	"context"
	"encoding/json"
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

	"github.com/clinicops/scheduler/internal/config"
	"github.com/clinicops/scheduler/internal/domain/analytics"
	"github.com/clinicops/scheduler/internal/domain/catalog"
	"github.com/clinicops/scheduler/internal/domain/conflict"
	"github.com/clinicops/scheduler/internal/domain/duration"
	"github.com/clinicops/scheduler/internal/domain/optimize"
	"github.com/clinicops/scheduler/internal/domain/schedule"
	"github.com/clinicops/scheduler/internal/domain/wellness"
	"github.com/clinicops/scheduler/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler-server",
		Short: "Clinic resource scheduling and staff wellness API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(optimizeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the procedure catalog",
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a YAML catalog file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			if path == "" {
				return fmt.Errorf("--file is required")
			}

			cat, reg, err := catalog.LoadDocument(path)
			if err != nil {
				return fmt.Errorf("catalog validation failed: %w", err)
			}

			fmt.Printf("Catalog OK: %d procedures, %d staff, %d rooms, %d equipment\n",
				len(cat.Procedures()), reg.StaffCount(), len(reg.Rooms()), len(reg.Equipment()))
			return nil
		},
	}
	validateCmd.Flags().String("file", "", "Path to the YAML catalog file")
	cmd.AddCommand(validateCmd)

	return cmd
}

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run one optimization pass over a task file and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasksPath, _ := cmd.Flags().GetString("tasks")
			dateRaw, _ := cmd.Flags().GetString("date")
			if tasksPath == "" {
				return fmt.Errorf("--tasks is required")
			}

			targetDate := time.Now()
			if dateRaw != "" {
				var err error
				targetDate, err = time.Parse("2006-01-02", dateRaw)
				if err != nil {
					return fmt.Errorf("invalid --date (want YYYY-MM-DD): %w", err)
				}
			}

			raw, err := os.ReadFile(tasksPath)
			if err != nil {
				return err
			}
			var tasks []schedule.Task
			if err := json.Unmarshal(raw, &tasks); err != nil {
				return fmt.Errorf("parse tasks file: %w", err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := zerolog.Nop()
			cat, reg, err := loadCatalogs(cfg)
			if err != nil {
				return err
			}

			engine := buildEngine(cat, reg, cfg, logger)
			result := engine.optimizer.Optimize(tasks, targetDate)

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().String("tasks", "", "Path to a JSON file with the task list")
	cmd.Flags().String("date", "", "Target date (YYYY-MM-DD), defaults to today")
	return cmd
}

// engine bundles the per-server domain services built over one immutable
// catalog snapshot.
type engine struct {
	calculator *duration.Calculator
	detector   *conflict.Detector
	wellness   *wellness.Service
	optimizer  *optimize.Optimizer
	reporter   *analytics.Reporter
}

func buildEngine(cat *catalog.Catalog, reg *catalog.Registry, cfg *config.Config, logger zerolog.Logger) *engine {
	calc := duration.NewCalculator(cat, logger)

	detectorOpts := conflict.DefaultOptions()
	if cfg.FatigueLimit > 0 {
		detectorOpts.FatigueLimit = cfg.FatigueLimit
	}
	detector := conflict.NewDetector(cat, reg, detectorOpts, logger)

	wellnessOpts := wellness.DefaultOptions()
	if cfg.BreakCreditInterval > 0 {
		wellnessOpts.BreakCreditInterval = cfg.BreakCreditInterval
	}
	well := wellness.NewService(cat, reg, wellnessOpts, logger)

	optimizeOpts := optimize.DefaultOptions()
	if cfg.DayStartHour > 0 {
		optimizeOpts.DayStartHour = cfg.DayStartHour
	}
	if cfg.DayEndHour > 0 {
		optimizeOpts.DayEndHour = cfg.DayEndHour
	}
	if cfg.NominalHoursPerStaff > 0 {
		optimizeOpts.NominalHoursPerStaff = cfg.NominalHoursPerStaff
	}
	optimizer := optimize.NewOptimizer(cat, reg, detector, calc, optimizeOpts, logger)

	reporterOpts := analytics.DefaultOptions()
	if cfg.CapacityHoursPerStaff > 0 {
		reporterOpts.CapacityHoursPerStaff = cfg.CapacityHoursPerStaff
	}
	reporter := analytics.NewReporter(cat, reg, well, reporterOpts, logger)

	return &engine{
		calculator: calc,
		detector:   detector,
		wellness:   well,
		optimizer:  optimizer,
		reporter:   reporter,
	}
}

func loadCatalogs(cfg *config.Config) (*catalog.Catalog, *catalog.Registry, error) {
	if cfg.CatalogFile != "" {
		return catalog.LoadDocument(cfg.CatalogFile)
	}
	return catalog.SeedCatalog(), catalog.SeedRegistry(), nil
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Catalogs
	cat, reg, err := loadCatalogs(cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.CatalogFile).Msg("failed to load catalog")
	}
	logger.Info().
		Int("procedures", len(cat.Procedures())).
		Int("staff", reg.StaffCount()).
		Msg("catalog loaded")

	eng := buildEngine(cat, reg, cfg, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(time.Duration(cfg.RequestTimeout) * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))

	// API group
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Domain handlers
	catalog.NewHandler(cat, reg).RegisterRoutes(apiV1)
	duration.NewHandler(eng.calculator).RegisterRoutes(apiV1)
	optimize.NewHandler(eng.optimizer).RegisterRoutes(apiV1)
	wellness.NewHandler(eng.wellness).RegisterRoutes(apiV1)
	analytics.NewHandler(eng.reporter).RegisterRoutes(apiV1)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}
	return nil
}
