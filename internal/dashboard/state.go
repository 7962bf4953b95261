// Package dashboard holds the dashboard's view state and the pure
// transitions between states. Nothing here performs I/O: transitions that
// need a list fetch return a FetchRequest for the caller to execute.
package dashboard

import (
	"alert-dashboard/internal/models"
)

// Filter selects which alerts the list shows.
type Filter string

// FilterAll shows every alert.
const FilterAll Filter = "ALL"

// Filters lists the selectable filters in display order.
var Filters = []Filter{
	FilterAll,
	Filter(models.StatusNew),
	Filter(models.StatusReviewed),
	Filter(models.StatusConfirmedFraud),
	Filter(models.StatusFalsePositive),
}

// Status returns the status the filter restricts to, or false for FilterAll.
func (f Filter) Status() (models.Status, bool) {
	if f == FilterAll {
		return "", false
	}
	return models.Status(f), true
}

// Label is the filter's menu text.
func (f Filter) Label() string {
	if f == FilterAll {
		return "All Alerts"
	}
	return models.Status(f).Label()
}

// Valid reports whether f is one of Filters.
func (f Filter) Valid() bool {
	return f == FilterAll || models.Status(f).Valid()
}

// FetchRequest asks the caller to load the list for Filter. Seq identifies
// the request; only the outcome carrying the latest Seq is applied.
type FetchRequest struct {
	Seq    uint64
	Filter Filter
}

// State is the root controller's view state.
type State struct {
	Filter   Filter         `json:"filter"`
	Alerts   []models.Alert `json:"alerts"`
	Selected *models.Alert  `json:"selected,omitempty"`
	Loading  bool           `json:"loading"`
	// FetchSeq is the sequence number of the most recently issued fetch.
	FetchSeq uint64 `json:"fetchSeq"`
}

// Mount returns the initial state and the fetch issued on mount.
func Mount() (State, FetchRequest) {
	return State{Filter: FilterAll}.startFetch()
}

func (s State) startFetch() (State, FetchRequest) {
	s.FetchSeq++
	s.Loading = true
	return s, FetchRequest{Seq: s.FetchSeq, Filter: s.Filter}
}

// FilterChanged switches the filter and starts a fetch for it. Selecting the
// current filter again, or an unknown filter, is a no-op and returns false.
func (s State) FilterChanged(f Filter) (State, FetchRequest, bool) {
	if f == s.Filter || !f.Valid() {
		return s, FetchRequest{}, false
	}
	s.Filter = f
	next, req := s.startFetch()
	return next, req, true
}

// FetchSucceeded replaces the alert collection if seq is the latest fetch.
// The second result reports whether the outcome was applied.
func (s State) FetchSucceeded(seq uint64, alerts []models.Alert) (State, bool) {
	if seq != s.FetchSeq {
		return s, false
	}
	s.Alerts = alerts
	s.Loading = false
	return s, true
}

// FetchFailed keeps the previous collection and clears the loading flag if
// seq is the latest fetch.
func (s State) FetchFailed(seq uint64) (State, bool) {
	if seq != s.FetchSeq {
		return s, false
	}
	s.Loading = false
	return s, true
}

// RowSelected opens the detail view on the already-fetched record.
func (s State) RowSelected(a models.Alert) State {
	s.Selected = &a
	return s
}

// DetailClosed dismisses the detail view.
func (s State) DetailClosed() State {
	s.Selected = nil
	return s
}

// UpdateSucceeded refetches under the current filter and closes the detail.
func (s State) UpdateSucceeded() (State, FetchRequest) {
	next, req := s.startFetch()
	next.Selected = nil
	return next, req
}
