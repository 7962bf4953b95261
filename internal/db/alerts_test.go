package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alert-dashboard/internal/alerts"
	"alert-dashboard/internal/models"
)

// openTestDB connects to TEST_DB_DSN and truncates the alerts table. Tests
// using it are skipped when no database is configured.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()

	d, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(d.Close)

	require.NoError(t, d.Ping(ctx))
	require.NoError(t, d.Migrate(ctx))
	_, err = d.Pool.Exec(ctx, `TRUNCATE alerts RESTART IDENTITY`)
	require.NoError(t, err)
	return d
}

func TestEncodeAlertData(t *testing.T) {
	b, err := encodeAlertData(nil)
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = encodeAlertData(map[string]interface{}{"risk_score": 82.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"risk_score": 82.5}`, string(b))
}

func TestAlertStore_RoundTrip(t *testing.T) {
	d := openTestDB(t)
	store := NewAlertStore(d)
	ctx := context.Background()
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	a, err := store.Create(ctx, models.Alert{
		TransactionID: "tx-1",
		RiskScore:     82.5,
		Status:        models.StatusNew,
		CreatedAt:     models.NewTimestamp(created),
		AlertData:     map[string]interface{}{"transaction_id": "tx-1", "risk_score": 82.5},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, 82.5, a.RiskScore)
	assert.True(t, a.CreatedAt.Equal(created))
	assert.Equal(t, "tx-1", a.AlertData["transaction_id"])
	assert.Nil(t, a.ReviewedBy)

	_, err = store.Create(ctx, models.Alert{TransactionID: "tx-2", RiskScore: 12, Status: models.StatusNew, CreatedAt: models.NewTimestamp(created)})
	require.NoError(t, err)

	reviewer := "alice"
	reviewedAt := created.Add(time.Hour)
	updated, err := store.UpdateStatus(ctx, 1, models.StatusUpdate{Status: models.StatusConfirmedFraud, ReviewedBy: &reviewer}, reviewedAt)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmedFraud, updated.Status)
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, "alice", *updated.ReviewedBy)
	assert.Nil(t, updated.Notes)
	require.NotNil(t, updated.ReviewedAt)
	assert.True(t, updated.ReviewedAt.Equal(reviewedAt))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Nil(t, all[1].AlertData)

	fraud, err := store.ListByStatus(ctx, models.StatusConfirmedFraud)
	require.NoError(t, err)
	require.Len(t, fraud, 1)
	assert.Equal(t, "tx-1", fraud[0].TransactionID)

	_, err = store.Get(ctx, 99)
	assert.True(t, errors.Is(err, alerts.ErrNotFound))

	_, err = store.UpdateStatus(ctx, 99, models.StatusUpdate{Status: models.StatusReviewed}, reviewedAt)
	assert.True(t, errors.Is(err, alerts.ErrNotFound))
}
