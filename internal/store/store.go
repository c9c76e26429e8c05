package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the store uses. Unit tests substitute a
// pgxmock pool through the same interface.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Store struct {
	DB DB
}

func New(db DB) *Store {
	return &Store{DB: db}
}

type PeriodInput struct {
	Name     string
	StartsOn time.Time
	EndsOn   time.Time
}

type IndicatorInput struct {
	KeyResultID  int64
	Name         string
	Unit         string
	Weight       int
	CurrentValue *float64
	TargetValue  *float64
}

type ScoreInput struct {
	IndicatorID int64
	PeriodID    int64
	CustomerID  *int64
	Value       float64
	Note        string
}

// ScoreFilter narrows ListScores. Zero fields are skipped.
type ScoreFilter struct {
	IndicatorID int64
	PeriodID    int64
	CustomerID  int64
}

type ActivityInput struct {
	EntityType string
	EntityID   int64
	Action     string
	Detail     string
}
