package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kpiboard/internal/domain"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	container, err := tcpostgres.RunContainer(ctx,
		tcpostgres.WithDatabase("kpiboard"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(10*time.Second),
		),
	)
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	defer func() { _ = container.Terminate(ctx) }()

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("conn string: %v", err)
	}
	if err := runMigrations(dbURL); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	defer pool.Close()

	s := New(pool)

	if err := s.SeedDemo(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.SeedDemo(ctx); err != nil {
		t.Fatalf("second seed must be a no-op: %v", err)
	}

	objectives, err := s.ListOrgObjectives(ctx)
	if err != nil {
		t.Fatalf("list objectives: %v", err)
	}
	if len(objectives) != 2 {
		t.Fatalf("expected 2 objectives got %d", len(objectives))
	}
	departments, err := s.ListDepartments(ctx)
	if err != nil {
		t.Fatalf("list departments: %v", err)
	}
	if len(departments) != 3 {
		t.Fatalf("expected 3 departments got %d", len(departments))
	}
	indicators, err := s.ListIndicators(ctx)
	if err != nil {
		t.Fatalf("list indicators: %v", err)
	}
	if len(indicators) != 7 {
		t.Fatalf("expected 7 indicators got %d", len(indicators))
	}

	// The seeded score for New ARR must have moved its current value.
	var newARR domain.Indicator
	for _, ind := range indicators {
		if ind.Name == "New ARR" {
			newARR = ind
		}
	}
	if newARR.ID == 0 {
		t.Fatalf("seed is missing the New ARR indicator")
	}
	if newARR.CurrentValue == nil || *newARR.CurrentValue != 80 {
		t.Fatalf("expected seeded score to set current to 80, got %v", newARR.CurrentValue)
	}

	thresholds, err := s.GetThresholds(ctx)
	if err != nil {
		t.Fatalf("get thresholds: %v", err)
	}
	if thresholds.GreenMin != 76 || thresholds.AmberMin != 51 {
		t.Fatalf("expected migrated defaults 76/51 got %+v", thresholds)
	}
	if err := s.SaveThresholds(ctx, domain.Thresholds{GreenMin: 90, AmberMin: 70}); err != nil {
		t.Fatalf("save thresholds: %v", err)
	}
	thresholds, err = s.GetThresholds(ctx)
	if err != nil {
		t.Fatalf("reload thresholds: %v", err)
	}
	if thresholds.GreenMin != 90 || thresholds.AmberMin != 70 {
		t.Fatalf("expected saved 90/70 got %+v", thresholds)
	}

	periods, err := s.ListPeriods(ctx)
	if err != nil {
		t.Fatalf("list periods: %v", err)
	}
	if len(periods) != 3 {
		t.Fatalf("expected 3 periods got %d", len(periods))
	}
	q1 := periods[0]

	customers, err := s.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) != 3 {
		t.Fatalf("expected 3 customers got %d", len(customers))
	}
	var acme domain.Customer
	for _, c := range customers {
		if c.Name == "Acme Industrial" {
			acme = c
		}
	}
	if acme.ID == 0 {
		t.Fatalf("seed is missing Acme Industrial")
	}

	// Acme holds Portal and Analytics; the seed links three indicators to
	// each, so six expected slots.
	expected, err := s.CountCustomerIndicatorLinks(ctx, acme.ID)
	if err != nil {
		t.Fatalf("count links: %v", err)
	}
	if expected != 6 {
		t.Fatalf("expected 6 indicator links got %d", expected)
	}
	filled, err := s.CountCustomerScoredIndicators(ctx, acme.ID, q1.ID)
	if err != nil {
		t.Fatalf("count scored: %v", err)
	}
	if filled != 1 {
		t.Fatalf("expected 1 scored indicator got %d", filled)
	}

	score, err := s.RecordScore(ctx, ScoreInput{
		IndicatorID: newARR.ID,
		PeriodID:    q1.ID,
		CustomerID:  &acme.ID,
		Value:       85,
		Note:        "follow-up entry",
	})
	if err != nil {
		t.Fatalf("record score: %v", err)
	}
	if score.ID == 0 || score.Value != 85 {
		t.Fatalf("unexpected score %+v", score)
	}
	reloaded, err := s.GetIndicator(ctx, newARR.ID)
	if err != nil {
		t.Fatalf("get indicator: %v", err)
	}
	if reloaded.CurrentValue == nil || *reloaded.CurrentValue != 85 {
		t.Fatalf("expected recorded score to bump current to 85, got %v", reloaded.CurrentValue)
	}

	history, err := s.ListScores(ctx, ScoreFilter{IndicatorID: newARR.ID})
	if err != nil {
		t.Fatalf("list scores: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 score entries got %d", len(history))
	}
	if history[0].Value != 85 {
		t.Fatalf("expected newest entry first, got %+v", history[0])
	}

	scored, err := s.ListScoredIndicatorIDs(ctx, q1.ID)
	if err != nil {
		t.Fatalf("list scored ids: %v", err)
	}
	if len(scored) != 3 {
		t.Fatalf("expected 3 scored indicators in Q1 got %d", len(scored))
	}

	if err := s.UpdateIndicatorTarget(ctx, newARR.ID, nil); err != nil {
		t.Fatalf("clear target: %v", err)
	}
	reloaded, err = s.GetIndicator(ctx, newARR.ID)
	if err != nil {
		t.Fatalf("reload indicator: %v", err)
	}
	if reloaded.TargetValue != nil {
		t.Fatalf("expected cleared target, got %v", reloaded.TargetValue)
	}

	if err := s.SetKeyResultFormula(ctx, 99999, "AVG"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown key result, got %v", err)
	}
	if _, err := s.GetCustomer(ctx, 99999); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown customer, got %v", err)
	}

	if err := s.AppendActivity(ctx, ActivityInput{
		EntityType: "indicator",
		EntityID:   newARR.ID,
		Action:     "score_recorded",
		Detail:     "New ARR scored 85",
	}); err != nil {
		t.Fatalf("append activity: %v", err)
	}
	activity, err := s.ListRecentActivity(ctx, 10)
	if err != nil {
		t.Fatalf("list activity: %v", err)
	}
	if len(activity) != 1 {
		t.Fatalf("expected 1 activity entry got %d", len(activity))
	}
	if activity[0].Action != "score_recorded" || activity[0].ID == "" {
		t.Fatalf("unexpected activity entry %+v", activity[0])
	}
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	driver, err := migratepostgres.WithInstance(db, &migratepostgres.Config{})
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
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations"), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found (start dir: %s)", dir)
		}
		dir = parent
	}
}
