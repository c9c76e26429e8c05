package store

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpiboard/internal/domain"
)

func TestGetThresholds(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT green_min, amber_min FROM rag_thresholds").
		WillReturnRows(pgxmock.NewRows([]string{"green_min", "amber_min"}).AddRow(80.0, 60.0))

	s := New(mock)
	got, err := s.GetThresholds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Thresholds{GreenMin: 80, AmberMin: 60}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetThresholdsMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT green_min, amber_min FROM rag_thresholds").
		WillReturnError(pgx.ErrNoRows)

	s := New(mock)
	_, err = s.GetThresholds(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveThresholds(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO rag_thresholds").
		WithArgs(90.0, 70.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s := New(mock)
	err = s.SaveThresholds(context.Background(), domain.Thresholds{GreenMin: 90, AmberMin: 70})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
