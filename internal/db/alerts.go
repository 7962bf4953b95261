package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"alert-dashboard/internal/alerts"
	"alert-dashboard/internal/models"
)

const alertColumns = `id, transaction_id, risk_score::float8, status, reviewed_by, reviewed_at, notes, alert_data, created_at`

// AlertStore is the PostgreSQL implementation of alerts.Store.
type AlertStore struct {
	db *DB
}

func NewAlertStore(db *DB) *AlertStore {
	return &AlertStore{db: db}
}

var _ alerts.Store = (*AlertStore)(nil)

func (s *AlertStore) Create(ctx context.Context, a models.Alert) (models.Alert, error) {
	data, err := encodeAlertData(a.AlertData)
	if err != nil {
		return models.Alert{}, err
	}

	query := `
        INSERT INTO alerts (transaction_id, risk_score, status, alert_data, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + alertColumns
	row := s.db.Pool.QueryRow(ctx, query, a.TransactionID, a.RiskScore, string(a.Status), data, a.CreatedAt.Time)
	created, err := scanAlert(row)
	if err != nil {
		return models.Alert{}, fmt.Errorf("failed to insert alert: %w", err)
	}
	return created, nil
}

func (s *AlertStore) List(ctx context.Context) ([]models.Alert, error) {
	return s.query(ctx, `SELECT `+alertColumns+` FROM alerts ORDER BY id`)
}

func (s *AlertStore) ListByStatus(ctx context.Context, status models.Status) ([]models.Alert, error) {
	return s.query(ctx, `SELECT `+alertColumns+` FROM alerts WHERE status = $1 ORDER BY id`, string(status))
}

func (s *AlertStore) Get(ctx context.Context, id int64) (models.Alert, error) {
	row := s.db.Pool.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)
	a, err := scanAlert(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Alert{}, alerts.ErrNotFound
		}
		return models.Alert{}, fmt.Errorf("failed to get alert %d: %w", id, err)
	}
	return a, nil
}

func (s *AlertStore) UpdateStatus(ctx context.Context, id int64, upd models.StatusUpdate, reviewedAt time.Time) (models.Alert, error) {
	query := `
        UPDATE alerts
        SET status = $1, reviewed_by = $2, notes = $3, reviewed_at = $4
        WHERE id = $5
        RETURNING ` + alertColumns
	row := s.db.Pool.QueryRow(ctx, query, string(upd.Status), upd.ReviewedBy, upd.Notes, reviewedAt, id)
	a, err := scanAlert(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Alert{}, alerts.ErrNotFound
		}
		return models.Alert{}, fmt.Errorf("failed to update alert %d: %w", id, err)
	}
	return a, nil
}

func (s *AlertStore) query(ctx context.Context, query string, args ...interface{}) ([]models.Alert, error) {
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get alerts: %w", err)
	}
	defer rows.Close()

	list := []models.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}
	return list, nil
}

func scanAlert(row pgx.Row) (models.Alert, error) {
	var (
		a          models.Alert
		status     string
		reviewedAt *time.Time
		createdAt  time.Time
		data       []byte
	)
	err := row.Scan(&a.ID, &a.TransactionID, &a.RiskScore, &status, &a.ReviewedBy,
		&reviewedAt, &a.Notes, &data, &createdAt)
	if err != nil {
		return models.Alert{}, err
	}

	a.Status = models.Status(status)
	a.CreatedAt = models.NewTimestamp(createdAt)
	if reviewedAt != nil {
		ts := models.NewTimestamp(*reviewedAt)
		a.ReviewedAt = &ts
	}
	if data != nil {
		if err := json.Unmarshal(data, &a.AlertData); err != nil {
			return models.Alert{}, fmt.Errorf("failed to decode alert_data: %w", err)
		}
	}
	return a, nil
}

// encodeAlertData returns nil for an absent payload so the column stays NULL.
func encodeAlertData(data map[string]interface{}) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode alert_data: %w", err)
	}
	return b, nil
}
