package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"kpiboard/internal/api"
	"kpiboard/internal/config"
	"kpiboard/internal/domain"
	"kpiboard/internal/service"
	"kpiboard/internal/store"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var seed bool
	flag.BoolVar(&seed, "seed", false, "seed demo data")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Dashboard.Seed {
		seed = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := runMigrations(cfg.Database.URL); err != nil {
		logger.Error("failed to migrate", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pgstore := store.New(pool)
	if seed {
		if err := pgstore.SeedDemo(ctx); err != nil {
			logger.Error("failed to seed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		thresholds := domain.Thresholds{GreenMin: cfg.Dashboard.GreenMin, AmberMin: cfg.Dashboard.AmberMin}
		if err := pgstore.SaveThresholds(ctx, thresholds); err != nil {
			logger.Error("failed to apply thresholds", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("seed data created")
	}

	svc := service.New(pgstore)
	server := api.NewServer(cfg.HTTP.Addr, cfg.HTTP.AllowedOrigins, svc, logger)
	if err := server.Run(ctx); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}
	migrationsPath, err := resolveMigrationsPath()
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func resolveMigrationsPath() (string, error) {
	baseDir, err := os.Getwd()
	if err != nil {
		executable, execErr := os.Executable()
		if execErr != nil {
			return "", err
		}
		baseDir = filepath.Dir(executable)
	}
	absPath, err := filepath.Abs(filepath.Join(baseDir, "migrations"))
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(absPath), nil
}
