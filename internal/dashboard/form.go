package dashboard

import (
	"errors"
	"strings"

	"alert-dashboard/internal/models"
)

var (
	// ErrReviewerRequired is returned when the reviewer name is blank.
	ErrReviewerRequired = errors.New("reviewer name is required")
	// ErrInvalidStatus is returned when the chosen status is not a known value.
	ErrInvalidStatus = errors.New("status must be one of NEW, REVIEWED, CONFIRMED_FRAUD, FALSE_POSITIVE")
	// ErrSubmitInFlight is returned when a submission is already pending.
	ErrSubmitInFlight = errors.New("update already in progress")
)

// UpdateRequest asks the caller to issue the status update.
type UpdateRequest struct {
	ID         int64
	Status     models.Status
	ReviewedBy string
	Notes      string
}

// Form is the detail view's update form.
type Form struct {
	AlertID    int64         `json:"alertId"`
	Status     models.Status `json:"status"`
	ReviewedBy string        `json:"reviewedBy"`
	Notes      string        `json:"notes"`
	Submitting bool          `json:"submitting"`
	// Error is the last submission failure shown to the user, if any.
	Error string `json:"error,omitempty"`
}

// NewForm returns a form pre-populated with the alert's current status.
func NewForm(a models.Alert) Form {
	return Form{AlertID: a.ID, Status: a.Status}
}

// Submit validates the form and marks it in flight.
func (f Form) Submit() (Form, UpdateRequest, error) {
	if f.Submitting {
		return f, UpdateRequest{}, ErrSubmitInFlight
	}
	if !f.Status.Valid() {
		return f, UpdateRequest{}, ErrInvalidStatus
	}
	if strings.TrimSpace(f.ReviewedBy) == "" {
		return f, UpdateRequest{}, ErrReviewerRequired
	}
	f.Submitting = true
	f.Error = ""
	return f, UpdateRequest{
		ID:         f.AlertID,
		Status:     f.Status,
		ReviewedBy: f.ReviewedBy,
		Notes:      f.Notes,
	}, nil
}

// SubmitFailed clears the busy flag and records the failure. Entered values
// are kept so the user can retry.
func (f Form) SubmitFailed(err error) Form {
	f.Submitting = false
	f.Error = err.Error()
	return f
}

// DismissError hides the failure notice.
func (f Form) DismissError() Form {
	f.Error = ""
	return f
}
