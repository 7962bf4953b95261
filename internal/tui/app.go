// Package tui renders the fraud alert dashboard in the terminal.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"alert-dashboard/internal/dashboard"
	"alert-dashboard/internal/logging"
	"alert-dashboard/internal/models"
)

// AlertClient is the subset of the alert API the dashboard uses.
type AlertClient interface {
	StatusUpdater
	GetAlerts(ctx context.Context) ([]models.Alert, error)
	GetAlertsByStatus(ctx context.Context, status models.Status) ([]models.Alert, error)
}

// listTop is the number of lines View prints above the alert table.
const listTop = 4

type appKeyMap struct {
	Quit       key.Binding
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
}

var appKeys = appKeyMap{
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	NextFilter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
	PrevFilter: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "previous filter")),
}

// App is the root model: it owns the view state and runs fetches and updates.
type App struct {
	state   dashboard.State
	mount   dashboard.FetchRequest
	client  AlertClient
	logger  *logging.Logger
	detail  *Detail
	cursor  int
	width   int
	height  int
	spinner spinner.Model
}

// NewApp returns the dashboard in its mounted state; Init issues the first fetch.
func NewApp(client AlertClient, logger *logging.Logger) App {
	state, req := dashboard.Mount()
	return App{
		state:   state,
		mount:   req,
		client:  client,
		logger:  logger,
		spinner: spinner.New(spinner.WithSpinner(spinner.Line)),
	}
}

// State returns the current view state.
func (m App) State() dashboard.State {
	return m.state
}

// Detail returns the open detail modal, or nil.
func (m App) Detail() *Detail {
	return m.detail
}

func (m App) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.mount), m.spinner.Tick)
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case alertsLoadedMsg:
		return m.handleLoaded(msg), nil

	case updateFinishedMsg:
		return m.handleUpdateFinished(msg)

	case detailClosedMsg:
		return m.closeDetail(), nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.state.Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.detail != nil {
			d, cmd := m.detail.Update(msg)
			m.detail = &d
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.detail != nil {
			d, cmd := m.detail.Update(msg)
			m.detail = &d
			return m, cmd
		}
		return m.handleListKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handleClick(msg.X, msg.Y)
	}
	return m, nil
}

func (m App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, appKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, appKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, appKeys.Down):
		if m.cursor < len(m.state.Alerts)-1 {
			m.cursor++
		}
	case key.Matches(msg, appKeys.Open):
		return m.selectRow(m.cursor), nil
	case key.Matches(msg, appKeys.NextFilter):
		return m.changeFilter(m.stepFilter(1))
	case key.Matches(msg, appKeys.PrevFilter):
		return m.changeFilter(m.stepFilter(-1))
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 0 && n < len(dashboard.Filters) {
			return m.changeFilter(dashboard.Filters[n])
		}
	}
	return m, nil
}

func (m App) handleClick(x, y int) (tea.Model, tea.Cmd) {
	if m.detail != nil {
		// Clicks inside the modal stay with the modal.
		if m.insideModal(x, y) {
			return m, nil
		}
		return m.closeDetail(), nil
	}
	row := y - listTop - listHeaderLines
	return m.selectRow(row), nil
}

func (m App) insideModal(x, y int) bool {
	modal := m.detail.View()
	w, h := lipgloss.Width(modal), lipgloss.Height(modal)
	left := max(0, (m.width-w)/2)
	top := max(0, (m.height-h)/2)
	return x >= left && x < left+w && y >= top && y < top+h
}

func (m App) selectRow(i int) App {
	if m.state.Loading || i < 0 || i >= len(m.state.Alerts) {
		return m
	}
	m.cursor = i
	m.state = m.state.RowSelected(m.state.Alerts[i])
	d := NewDetail(*m.state.Selected, m.client)
	m.detail = &d
	return m
}

func (m App) closeDetail() App {
	m.state = m.state.DetailClosed()
	m.detail = nil
	return m
}

func (m App) stepFilter(delta int) dashboard.Filter {
	n := len(dashboard.Filters)
	for i, f := range dashboard.Filters {
		if f == m.state.Filter {
			return dashboard.Filters[(i+delta+n)%n]
		}
	}
	return dashboard.FilterAll
}

func (m App) changeFilter(f dashboard.Filter) (tea.Model, tea.Cmd) {
	next, req, ok := m.state.FilterChanged(f)
	if !ok {
		return m, nil
	}
	m.state = next
	return m, tea.Batch(m.fetch(req), m.spinner.Tick)
}

func (m App) handleLoaded(msg alertsLoadedMsg) App {
	if msg.Err != nil {
		var applied bool
		m.state, applied = m.state.FetchFailed(msg.Seq)
		m.logger.Errorf("Failed to load alerts (filter=%s, stale=%t): %v", msg.Filter, !applied, msg.Err)
		return m
	}

	var applied bool
	m.state, applied = m.state.FetchSucceeded(msg.Seq, msg.Alerts)
	if !applied {
		m.logger.Debugf("Discarded stale alert list: seq=%d latest=%d", msg.Seq, m.state.FetchSeq)
		return m
	}
	m.logger.Infof("Loaded %d alerts (filter=%s)", len(msg.Alerts), msg.Filter)
	if m.cursor >= len(m.state.Alerts) {
		m.cursor = max(0, len(m.state.Alerts)-1)
	}
	return m
}

func (m App) handleUpdateFinished(msg updateFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Errorf("Failed to update alert %d: %v", msg.AlertID, msg.Err)
		if m.detail != nil && m.detail.Alert().ID == msg.AlertID {
			d := m.detail.submitFailed(msg.Err)
			m.detail = &d
		}
		return m, nil
	}

	m.logger.Infof("Alert %d updated to %s", msg.AlertID, msg.Alert.Status)
	next, req := m.state.UpdateSucceeded()
	m.state = next
	m.detail = nil
	return m, tea.Batch(m.fetch(req), m.spinner.Tick)
}

func (m App) fetch(req dashboard.FetchRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		var (
			alerts []models.Alert
			err    error
		)
		if status, ok := req.Filter.Status(); ok {
			alerts, err = client.GetAlertsByStatus(ctx, status)
		} else {
			alerts, err = client.GetAlerts(ctx)
		}
		return alertsLoadedMsg{Seq: req.Seq, Filter: req.Filter, Alerts: alerts, Err: err}
	}
}

func (m App) View() string {
	if m.detail != nil {
		modal := m.detail.View()
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
		}
		return modal
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Fraud Detection Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")
	if m.state.Loading {
		b.WriteString(m.spinner.View() + " Loading alerts...")
	} else {
		b.WriteString(RenderAlertList(m.state.Alerts, m.cursor))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("↑/↓ move • enter open • click row open • f/F filter • 0-4 pick filter • q quit"))
	return b.String()
}

func (m App) renderFilters() string {
	parts := make([]string, 0, len(dashboard.Filters))
	for i, f := range dashboard.Filters {
		label := strconv.Itoa(i) + " " + f.Label()
		if f == m.state.Filter {
			parts = append(parts, activeStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	return labelStyle.Render("Filter by Status: ") + strings.Join(parts, "  ")
}
