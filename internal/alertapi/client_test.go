package alertapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alert-dashboard/internal/models"
)

func TestClient_GetAlerts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/alerts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 3, "transactionId": "tx-3", "riskScore": 91, "status": "NEW", "createdAt": "2024-05-01T09:00:00"},
			{"id": 1, "transactionId": "tx-1", "riskScore": 12, "status": "REVIEWED", "reviewedBy": "bob"}
		]`))
	}))
	defer server.Close()

	client := New(server.URL+"/api/", nil)
	assert.Equal(t, server.URL+"/api", client.BaseURL())

	alerts, err := client.GetAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, int64(3), alerts[0].ID)
	assert.Equal(t, int64(1), alerts[1].ID)
	require.NotNil(t, alerts[1].ReviewedBy)
	assert.Equal(t, "bob", *alerts[1].ReviewedBy)
}

func TestClient_GetAlertsByStatus(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	alerts, err := New(server.URL, nil).GetAlertsByStatus(context.Background(), models.StatusFalsePositive)
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Equal(t, "/alerts/status/FALSE_POSITIVE", gotPath)
}

func TestClient_GetAlertByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/alerts/42":
			w.Write([]byte(`{"id": 42, "transactionId": "tx-42", "riskScore": 65, "status": "NEW"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Alert not found"}`))
		}
	}))
	defer server.Close()

	client := New(server.URL, nil)

	alert, err := client.GetAlertByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "tx-42", alert.TransactionID)

	_, err = client.GetAlertByID(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Contains(t, httpErr.Error(), "Alert not found")
}

func TestClient_UpdateAlertStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/alerts/42/status", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "CONFIRMED_FRAUD", q.Get("status"))
		assert.Equal(t, "alice", q.Get("reviewedBy"))
		_, hasNotes := q["notes"]
		assert.True(t, hasNotes, "notes must be sent even when empty")
		assert.Equal(t, "", q.Get("notes"))

		w.Write([]byte(`{"id": 42, "status": "CONFIRMED_FRAUD", "reviewedBy": "alice"}`))
	}))
	defer server.Close()

	updated, err := New(server.URL, nil).UpdateAlertStatus(context.Background(), 42, models.StatusConfirmedFraud, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmedFraud, updated.Status)
}

func TestClient_ErrorStatuses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := New(server.URL, nil).UpdateAlertStatus(context.Background(), 1, models.Status("BOGUS"), "x", "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "PATCH /alerts/1/status: status 400", httpErr.Error())
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(url, nil).GetAlerts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET /alerts failed")
}

func TestClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	}))
	defer server.Close()

	_, err := New(server.URL, nil).GetAlerts(context.Background())
	assert.ErrorContains(t, err, "failed to decode")
}
