package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
)

func TestGetExecutor(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, DBExecutor(db), GetExecutor(context.Background(), db))
	assert.False(t, IsInTransaction(context.Background()))
}

func TestDB_ObservesQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg, "test")
	wrapped := Wrap(db, m)

	mock.ExpectExec("UPDATE reservations").WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = wrapped.ExecContext(context.Background(), "UPDATE reservations SET status = $1", "confirmed")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, 1, testutil.CollectAndCount(m.DBQueryDuration, "db_query_duration_seconds"))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT id FROM plans"))
	assert.Equal(t, "unknown", operation(""))
}
