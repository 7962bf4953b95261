package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alert-dashboard/internal/alertapi"
	"alert-dashboard/internal/logging"
	"alert-dashboard/internal/models"
)

func TestDetail_OmitsAbsentOptionalFields(t *testing.T) {
	d := NewDetail(models.Alert{ID: 1, TransactionID: "tx-1", RiskScore: 20, Status: models.StatusNew}, &fakeClient{})
	view := d.View()

	// The form carries its own "Reviewed By:" label.
	assert.Equal(t, 1, strings.Count(view, "Reviewed By:"))
	assert.NotContains(t, view, "Reviewed At:")
	assert.NotContains(t, view, "Alert Data:")
	assert.Contains(t, view, "tx-1")
}

func TestDetail_ShowsPresentOptionalFields(t *testing.T) {
	reviewedAt, err := models.ParseTimestamp("2024-01-15T10:30:00")
	require.NoError(t, err)
	a := models.Alert{
		ID:            5,
		TransactionID: "tx-5",
		RiskScore:     91,
		Status:        models.StatusReviewed,
		ReviewedBy:    strPtr("carol"),
		ReviewedAt:    &reviewedAt,
		Notes:         strPtr("card present"),
		AlertData:     map[string]interface{}{"merchant": "acme"},
	}

	view := NewDetail(a, &fakeClient{}).View()

	assert.Equal(t, 2, strings.Count(view, "Reviewed By:"))
	assert.Contains(t, view, "carol")
	assert.Contains(t, view, "1/15/2024, 10:30:00 AM")
	assert.Contains(t, view, "card present")
	assert.Contains(t, view, "Alert Data:")
	assert.Contains(t, view, `"merchant": "acme"`)
}

func TestDetail_StatusPreselectedAndCycles(t *testing.T) {
	d := NewDetail(models.Alert{ID: 1, Status: models.StatusFalsePositive}, &fakeClient{})
	assert.Equal(t, models.StatusFalsePositive, d.Form().Status)

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, models.StatusNew, d.Form().Status)

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, models.StatusFalsePositive, d.Form().Status)
}

func TestStepStatus_UnknownCurrent(t *testing.T) {
	assert.Equal(t, models.StatusNew, stepStatus(models.Status("ODD"), 1))
	assert.Equal(t, models.StatusFalsePositive, stepStatus(models.Status("ODD"), -1))
}

func TestRenderAlertData_Indented(t *testing.T) {
	out := renderAlertData(map[string]interface{}{"a": 1.0})
	assert.Equal(t, "{\n  \"a\": 1\n}", out)
}

// alertServer is a minimal alert service backing the end-to-end test.
type alertServer struct {
	mu       sync.Mutex
	requests []string
	patch    map[string][]string
}

func (s *alertServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	if r.Method == http.MethodPatch {
		s.patch = r.URL.Query()
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/alerts":
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{{
			"id":            42,
			"transactionId": "tx-42",
			"riskScore":     88.5,
			"status":        "NEW",
			"createdAt":     "2024-01-15T10:30:00",
		}})
	case r.Method == http.MethodPatch && r.URL.Path == "/api/alerts/42/status":
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":         42,
			"status":     r.URL.Query().Get("status"),
			"reviewedBy": r.URL.Query().Get("reviewedBy"),
		})
	default:
		http.NotFound(w, r)
	}
}

func TestApp_EndToEndAgainstService(t *testing.T) {
	backend := &alertServer{}
	srv := httptest.NewServer(backend)
	defer srv.Close()

	client := alertapi.New(srv.URL+"/api/", srv.Client())
	app := NewApp(client, logging.NewDiscard())
	app = drain(t, app, app.Init())

	require.Len(t, app.State().Alerts, 1)
	assert.Equal(t, []string{"GET /api/alerts"}, backend.requests)

	app = send(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, app.Detail())
	assert.Equal(t, int64(42), app.Detail().Alert().ID)

	app = send(t, app, tea.KeyMsg{Type: tea.KeyRight})
	app = send(t, app, tea.KeyMsg{Type: tea.KeyRight})
	app = send(t, app, tea.KeyMsg{Type: tea.KeyTab})
	app = send(t, app, keyRunes("alice"))
	app = send(t, app, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, []string{"GET /api/alerts", "PATCH /api/alerts/42/status", "GET /api/alerts"}, backend.requests)
	assert.Equal(t, []string{"CONFIRMED_FRAUD"}, backend.patch["status"])
	assert.Equal(t, []string{"alice"}, backend.patch["reviewedBy"])
	assert.Equal(t, []string{""}, backend.patch["notes"])
	assert.Nil(t, app.Detail())
	assert.False(t, app.State().Loading)
}
