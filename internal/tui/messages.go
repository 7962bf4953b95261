package tui

import (
	"alert-dashboard/internal/dashboard"
	"alert-dashboard/internal/models"
)

// alertsLoadedMsg carries the outcome of a list fetch.
type alertsLoadedMsg struct {
	Seq    uint64
	Filter dashboard.Filter
	Alerts []models.Alert
	Err    error
}

// updateFinishedMsg carries the outcome of a status update.
// Alert is the server's representation; the list is refetched instead.
type updateFinishedMsg struct {
	AlertID int64
	Alert   models.Alert
	Err     error
}

// detailClosedMsg is sent when the detail modal is dismissed.
type detailClosedMsg struct{}
