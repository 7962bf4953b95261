package alerts

import (
	"context"
	"sort"
	"sync"
	"time"

	"alert-dashboard/internal/models"
)

// MemoryStore keeps alerts in process memory. It backs the service when no
// database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	alerts map[int64]models.Alert
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, alerts: make(map[int64]models.Alert)}
}

func (m *MemoryStore) Create(_ context.Context, a models.Alert) (models.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a.ID = m.nextID
	m.nextID++
	m.alerts[a.ID] = a
	return a, nil
}

func (m *MemoryStore) List(_ context.Context) ([]models.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(models.Alert) bool { return true }), nil
}

func (m *MemoryStore) ListByStatus(_ context.Context, status models.Status) ([]models.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.collect(func(a models.Alert) bool { return a.Status == status }), nil
}

func (m *MemoryStore) Get(_ context.Context, id int64) (models.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.alerts[id]
	if !ok {
		return models.Alert{}, ErrNotFound
	}
	return a, nil
}

func (m *MemoryStore) UpdateStatus(_ context.Context, id int64, upd models.StatusUpdate, reviewedAt time.Time) (models.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.alerts[id]
	if !ok {
		return models.Alert{}, ErrNotFound
	}
	ts := models.NewTimestamp(reviewedAt)
	a.Status = upd.Status
	a.ReviewedBy = upd.ReviewedBy
	a.Notes = upd.Notes
	a.ReviewedAt = &ts
	m.alerts[id] = a
	return a, nil
}

// collect returns matching alerts ordered by id. The result is never nil so
// it encodes as an empty JSON array.
func (m *MemoryStore) collect(keep func(models.Alert) bool) []models.Alert {
	out := make([]models.Alert, 0, len(m.alerts))
	for _, a := range m.alerts {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
