package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"alert-dashboard/internal/dashboard"
	"alert-dashboard/internal/models"
)

// StatusUpdater issues the status update for the detail form.
type StatusUpdater interface {
	UpdateAlertStatus(ctx context.Context, id int64, status models.Status, reviewedBy, notes string) (models.Alert, error)
}

type field int

const (
	fieldStatus field = iota
	fieldReviewer
	fieldNotes
	fieldCount
)

type detailKeyMap struct {
	Close    key.Binding
	Submit   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Left     key.Binding
	Right    key.Binding
	Validate key.Binding
}

var detailKeys = detailKeyMap{
	Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "update status")),
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	Left:     key.NewBinding(key.WithKeys("left", "h")),
	Right:    key.NewBinding(key.WithKeys("right", "l")),
	Validate: key.NewBinding(key.WithKeys("enter")),
}

// Detail is the alert detail modal with its update form.
type Detail struct {
	alert    models.Alert
	form     dashboard.Form
	focus    field
	reviewer textinput.Model
	notes    textarea.Model
	spinner  spinner.Model
	updater  StatusUpdater
	// hint is an inline validation message; it never blocks input.
	hint string
}

// NewDetail opens the modal for a, with the status pre-selected.
func NewDetail(a models.Alert, updater StatusUpdater) Detail {
	reviewer := textinput.New()
	reviewer.Placeholder = "Enter your name"
	reviewer.CharLimit = 100
	reviewer.Width = 40
	reviewer.Cursor.SetMode(cursor.CursorStatic)

	notes := textarea.New()
	notes.Placeholder = "Add review notes..."
	notes.ShowLineNumbers = false
	notes.SetWidth(50)
	notes.SetHeight(4)
	notes.Cursor.SetMode(cursor.CursorStatic)

	return Detail{
		alert:    a,
		form:     dashboard.NewForm(a),
		focus:    fieldStatus,
		reviewer: reviewer,
		notes:    notes,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		updater:  updater,
	}
}

// Alert returns the record the modal displays.
func (d Detail) Alert() models.Alert {
	return d.alert
}

// Form returns the form state with the current input values.
func (d Detail) Form() dashboard.Form {
	f := d.form
	f.ReviewedBy = d.reviewer.Value()
	f.Notes = d.notes.Value()
	return f
}

// Update handles input while the modal is open.
func (d Detail) Update(msg tea.Msg) (Detail, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !d.form.Submitting {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d Detail) handleKey(msg tea.KeyMsg) (Detail, tea.Cmd) {
	// The failure notice blocks the form until acknowledged.
	if d.form.Error != "" {
		d.form = d.form.DismissError()
		return d, nil
	}

	switch {
	case key.Matches(msg, detailKeys.Close):
		return d, closeDetail
	case key.Matches(msg, detailKeys.Submit):
		return d.submit()
	case key.Matches(msg, detailKeys.Next):
		return d.setFocus((d.focus + 1) % fieldCount)
	case key.Matches(msg, detailKeys.Prev):
		return d.setFocus((d.focus + fieldCount - 1) % fieldCount)
	}

	switch d.focus {
	case fieldStatus:
		switch {
		case key.Matches(msg, detailKeys.Left):
			d.form.Status = stepStatus(d.form.Status, -1)
		case key.Matches(msg, detailKeys.Right):
			d.form.Status = stepStatus(d.form.Status, 1)
		case key.Matches(msg, detailKeys.Validate):
			return d.submit()
		}
		return d, nil
	case fieldReviewer:
		if key.Matches(msg, detailKeys.Validate) {
			return d.submit()
		}
		if d.form.Submitting {
			return d, nil
		}
		var cmd tea.Cmd
		d.reviewer, cmd = d.reviewer.Update(msg)
		return d, cmd
	default:
		if d.form.Submitting {
			return d, nil
		}
		var cmd tea.Cmd
		d.notes, cmd = d.notes.Update(msg)
		return d, cmd
	}
}

func (d Detail) setFocus(f field) (Detail, tea.Cmd) {
	d.focus = f
	d.reviewer.Blur()
	d.notes.Blur()
	var cmd tea.Cmd
	switch f {
	case fieldReviewer:
		cmd = d.reviewer.Focus()
	case fieldNotes:
		cmd = d.notes.Focus()
	}
	return d, cmd
}

func (d Detail) submit() (Detail, tea.Cmd) {
	form, req, err := d.Form().Submit()
	if errors.Is(err, dashboard.ErrSubmitInFlight) {
		return d, nil
	}
	if err != nil {
		d.hint = err.Error()
		return d, nil
	}
	d.form = form
	d.hint = ""

	updater := d.updater
	update := func() tea.Msg {
		alert, err := updater.UpdateAlertStatus(context.Background(), req.ID, req.Status, req.ReviewedBy, req.Notes)
		return updateFinishedMsg{AlertID: req.ID, Alert: alert, Err: err}
	}
	return d, tea.Batch(update, d.spinner.Tick)
}

// submitFailed returns the form to an editable state and raises the notice.
func (d Detail) submitFailed(err error) Detail {
	d.form = d.form.SubmitFailed(err)
	return d
}

// Submitting reports whether an update is in flight.
func (d Detail) Submitting() bool {
	return d.form.Submitting
}

func closeDetail() tea.Msg {
	return detailClosedMsg{}
}

func stepStatus(current models.Status, delta int) models.Status {
	idx := -1
	for i, s := range models.Statuses {
		if s == current {
			idx = i
		}
	}
	n := len(models.Statuses)
	if idx == -1 {
		if delta > 0 {
			return models.Statuses[0]
		}
		return models.Statuses[n-1]
	}
	return models.Statuses[(idx+delta+n)%n]
}

// View renders the modal box.
func (d Detail) View() string {
	a := d.alert
	var b strings.Builder

	b.WriteString(labelStyle.Render("Alert Details"))
	b.WriteString(mutedStyle.Render("   [esc] close"))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Width(16).Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Alert ID:", strconv.FormatInt(a.ID, 10))
	row("Transaction ID:", a.TransactionID)
	row("Risk Score:", riskStyle(a.RiskTier()).Render(formatScore(a.RiskScore)))
	row("Current Status:", StatusBadge(a.Status))
	row("Created At:", formatDetailDate(a.CreatedAt))
	if a.ReviewedBy != nil {
		row("Reviewed By:", *a.ReviewedBy)
	}
	if a.ReviewedAt != nil {
		row("Reviewed At:", formatDetailDate(*a.ReviewedAt))
	}
	if a.Notes != nil {
		row("Notes:", *a.Notes)
	}

	if a.HasAlertData() {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Alert Data:"))
		b.WriteString("\n")
		b.WriteString(renderAlertData(a.AlertData))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Update Alert Status"))
	b.WriteString("\n")
	b.WriteString(d.fieldLabel(fieldStatus, "New Status:"))
	b.WriteString(d.renderStatusChoice())
	b.WriteString("\n")
	b.WriteString(d.fieldLabel(fieldReviewer, "Reviewed By:"))
	b.WriteString(d.reviewer.View())
	b.WriteString("\n")
	b.WriteString(d.fieldLabel(fieldNotes, "Notes:"))
	b.WriteString("\n")
	b.WriteString(d.notes.View())
	b.WriteString("\n\n")

	if d.hint != "" {
		b.WriteString(errorStyle.Render(d.hint))
		b.WriteString("\n")
	}

	if d.form.Submitting {
		b.WriteString(disabledStyle.Render(d.spinner.View() + " Updating..."))
	} else {
		b.WriteString(focusedStyle.Render("[ctrl+s] Update Status"))
		b.WriteString(mutedStyle.Render("   [esc] Cancel"))
	}

	if d.form.Error != "" {
		b.WriteString("\n\n")
		b.WriteString(noticeStyle.Render(
			errorStyle.Render("Failed to update alert status") + "\n" +
				d.form.Error + "\n" +
				mutedStyle.Render("press any key to continue")))
	}

	return modalStyle.Render(b.String())
}

func (d Detail) fieldLabel(f field, label string) string {
	style := labelStyle.Width(16)
	if d.focus == f {
		style = style.Foreground(lipgloss.Color("#5FAFFF"))
	}
	return style.Render(label)
}

func (d Detail) renderStatusChoice() string {
	parts := make([]string, 0, len(models.Statuses))
	for _, s := range models.Statuses {
		if s == d.form.Status {
			parts = append(parts, activeStyle.Render("["+s.Label()+"]"))
		} else {
			parts = append(parts, mutedStyle.Render(s.Label()))
		}
	}
	out := strings.Join(parts, " ")
	if !d.form.Status.Valid() {
		out = d.form.Status.Label() + " " + out
	}
	return out
}

// renderAlertData prints the payload verbatim as indented JSON.
func renderAlertData(data map[string]interface{}) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(out)
}
