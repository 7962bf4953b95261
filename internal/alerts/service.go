// Package alerts implements alert management: creation from ingested risk
// events, listing, lookup and reviewer status updates.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alert-dashboard/internal/logging"
	"alert-dashboard/internal/models"
)

var (
	// ErrNotFound is returned when no alert has the requested id.
	ErrNotFound = errors.New("alert not found")
	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid alert status")
)

// Store persists alerts. Lists are ordered by id.
type Store interface {
	Create(ctx context.Context, a models.Alert) (models.Alert, error)
	List(ctx context.Context) ([]models.Alert, error)
	ListByStatus(ctx context.Context, status models.Status) ([]models.Alert, error)
	Get(ctx context.Context, id int64) (models.Alert, error)
	UpdateStatus(ctx context.Context, id int64, upd models.StatusUpdate, reviewedAt time.Time) (models.Alert, error)
}

// Service applies alert business rules on top of a Store.
type Service struct {
	store  Store
	logger *logging.Logger
	now    func() time.Time
}

// New constructs a Service.
func New(store Store, logger *logging.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// CreateAlert records a new alert in status NEW. data is kept verbatim as the
// alert payload.
func (s *Service) CreateAlert(ctx context.Context, transactionID string, riskScore float64, data map[string]interface{}) (models.Alert, error) {
	s.logger.Infof("Creating alert: transaction=%s risk_score=%v", transactionID, riskScore)

	a, err := s.store.Create(ctx, models.Alert{
		TransactionID: transactionID,
		RiskScore:     riskScore,
		Status:        models.StatusNew,
		CreatedAt:     models.NewTimestamp(s.now()),
		AlertData:     data,
	})
	if err != nil {
		return models.Alert{}, fmt.Errorf("create alert: %w", err)
	}

	s.logger.Infof("Alert created: id=%d", a.ID)
	return a, nil
}

// ListAlerts returns every alert.
func (s *Service) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return list, nil
}

// ListAlertsByStatus returns the alerts currently in status.
func (s *Service) ListAlertsByStatus(ctx context.Context, status models.Status) ([]models.Alert, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	list, err := s.store.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list alerts by status %s: %w", status, err)
	}
	return list, nil
}

// GetAlert returns one alert or ErrNotFound.
func (s *Service) GetAlert(ctx context.Context, id int64) (models.Alert, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Alert{}, fmt.Errorf("get alert %d: %w", id, err)
	}
	return a, nil
}

// UpdateAlertStatus applies a reviewer decision and stamps the review time.
// Reviewer and notes replace the stored values, including with nil.
func (s *Service) UpdateAlertStatus(ctx context.Context, id int64, upd models.StatusUpdate) (models.Alert, error) {
	if !upd.Status.Valid() {
		return models.Alert{}, fmt.Errorf("%w: %q", ErrInvalidStatus, upd.Status)
	}

	a, err := s.store.UpdateStatus(ctx, id, upd, s.now())
	if err != nil {
		return models.Alert{}, fmt.Errorf("update alert %d: %w", id, err)
	}

	s.logger.Infof("Alert %d set to %s", id, upd.Status)
	return a, nil
}
