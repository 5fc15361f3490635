package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/billingfiles/internal/batch"
	"github.com/MrJamesThe3rd/billingfiles/internal/transfer"
)

type Action string

const (
	ActionCreate   Action = "create"
	ActionTransfer Action = "transfer"
)

type runState int

const (
	runStateForm runState = iota
	runStateRunning
	runStateResult
)

// RunModel starts a creation or transfer run for one municipality and shows its
// outcome.
type RunModel struct {
	CommonModel
	batchService    *batch.Service
	transferService *transfer.Service

	state   runState
	form    *huh.Form
	spinner spinner.Model

	// Form bindings; a pointer so copies of the model share them.
	input *runInput

	summary string
	err     error
}

type runInput struct {
	municipalityID string
	action         Action
}

func NewRunModel(batchSvc *batch.Service, transferSvc *transfer.Service, municipalityID string) RunModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := RunModel{
		batchService:    batchSvc,
		transferService: transferSvc,
		spinner:         s,
		input:           &runInput{municipalityID: municipalityID, action: ActionCreate},
	}
	m.form = m.buildForm()

	return m
}

func (m RunModel) Title() string { return "Run" }

func (m RunModel) ShortHelp() string {
	switch m.state {
	case runStateRunning:
		return "Running..."
	case runStateResult:
		return "Esc: back to menu | Enter: run again"
	}

	return "Esc: back | Enter: confirm"
}

func (m RunModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m RunModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("municipality").
				Title("Municipality").
				Value(&m.input.municipalityID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("municipality cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[Action]().
				Key("action").
				Title("Action").
				Options(
					huh.NewOption("Create invoice files", ActionCreate),
					huh.NewOption("Transfer invoice files", ActionTransfer),
				).
				Value(&m.input.action),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case runStateForm:
		return m.updateForm(msg)
	case runStateRunning:
		return m.updateRunning(msg)
	case runStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m RunModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = runStateRunning
	m.err = nil
	m.summary = ""

	return m, tea.Batch(m.spinner.Tick, m.runCmd(m.input.action, strings.TrimSpace(m.input.municipalityID)))
}

func (m RunModel) updateRunning(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(runResultMsg); ok {
		m.state = runStateResult
		m.summary = result.body
		m.err = result.err

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m RunModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			m.state = runStateForm
			m.form = m.buildForm()

			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m RunModel) View() string {
	switch m.state {
	case runStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case runStateRunning:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Running %s for municipality %s...", m.spinner.View(), m.input.action, m.input.municipalityID),
		)

	case runStateResult:
		return m.viewResult()
	}

	return ""
}

func (m RunModel) viewResult() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Run Complete")

	parts := []string{header, "", m.summary}

	if m.err != nil {
		parts = append(parts, "",
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

type runResultMsg struct {
	body string
	err  error
}

const runTimeout = 5 * time.Minute

func (m RunModel) runCmd(action Action, municipalityID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if action == ActionTransfer {
			result, err := m.transferService.Transfer(ctx, municipalityID)
			return runResultMsg{body: TransferSummary(result), err: err}
		}

		result, err := m.batchService.CreateFiles(ctx, municipalityID)

		return runResultMsg{body: CreateSummary(result), err: err}
	}
}

// CreateSummary describes the files and errors of a creation run.
func CreateSummary(r *batch.Result) string {
	if r == nil {
		return "Nothing was created."
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Files created: %d\n", len(r.Files))

	for _, f := range r.Files {
		fmt.Fprintf(&sb, "  %s (%s)\n", f.Name, FormatSize(len(f.Content)))
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(&sb, "\nErrors: %d\n", len(r.Errors))

		for _, e := range r.Errors {
			fmt.Fprintf(&sb, "  %s\n", e)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// TransferSummary describes the outcome of a transfer run.
func TransferSummary(r *transfer.Result) string {
	if r == nil {
		return "Nothing was transferred."
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Files sent: %d\n", len(r.Sent))

	for _, name := range r.Sent {
		fmt.Fprintf(&sb, "  %s\n", name)
	}

	if len(r.Failed) > 0 {
		fmt.Fprintf(&sb, "\nFailed: %d\n", len(r.Failed))

		for _, name := range r.Failed {
			fmt.Fprintf(&sb, "  %s\n", name)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
