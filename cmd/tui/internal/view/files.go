package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/billingfiles/internal/encoding"
	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
)

type filesState int

const (
	filesStateBrowse filesState = iota
	filesStatePreview
)

var statusFilters = [][]invoicefile.Status{
	nil,
	{invoicefile.StatusGenerated},
	{invoicefile.StatusSendSuccessful},
	{invoicefile.StatusSendFailed},
}

var statusLabels = []string{"All", "Generated", "Sent", "Send Failed"}

// FilesModel lists the invoice files of a municipality and previews their content.
type FilesModel struct {
	CommonModel
	fileService *invoicefile.Service

	state    filesState
	table    table.Model
	preview  viewport.Model
	files    []*invoicefile.File
	selected *invoicefile.File

	municipalityID  string
	statusFilterIdx int
	period          Period

	loading bool
	err     error
	status  string
}

func NewFilesModel(fileSvc *invoicefile.Service, municipalityID string) FilesModel {
	columns := []table.Column{
		{Title: "Created", Width: 17},
		{Title: "Name", Width: 30},
		{Title: "Type", Width: 18},
		{Title: "Status", Width: 16},
		{Title: "Size", Width: 10},
		{Title: "Sent", Width: 17},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return FilesModel{
		fileService:    fileSvc,
		table:          t,
		preview:        viewport.New(100, 20),
		municipalityID: municipalityID,
		loading:        true,
	}
}

func (m FilesModel) Title() string { return "Invoice Files" }

func (m FilesModel) ShortHelp() string {
	if m.state == filesStatePreview {
		return "Esc: back to list | ↑/↓: scroll"
	}

	return "Esc: back | Enter: preview | s: status filter | d: date filter | r: refresh"
}

func (m FilesModel) Init() tea.Cmd {
	return m.loadFilesCmd()
}

func (m FilesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadFilesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.files = msg.files
		m.refreshTable()

		return m, nil

	case previewMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error decoding %s: %v", m.selected.Name, msg.err)
			m.selected = nil

			return m, nil
		}

		m.preview.SetContent(msg.text)
		m.preview.GotoTop()
		m.state = filesStatePreview
		m.table.Blur()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 10)
		m.preview.Width = msg.Width - 6
		m.preview.Height = msg.Height - 8

		return m, nil
	}

	switch m.state {
	case filesStateBrowse:
		return m.updateBrowse(msg)
	case filesStatePreview:
		return m.updatePreview(msg)
	}

	return m, nil
}

func (m FilesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadFilesCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.loading = true

			return m, m.loadFilesCmd()
		case "d":
			m.period = m.period.Next()
			m.loading = true

			return m, m.loadFilesCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.files) {
				return m, nil
			}

			m.selected = m.files[idx]
			m.status = ""

			return m, previewCmd(m.selected)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m FilesModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = filesStateBrowse
		m.selected = nil
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)

	return m, cmd
}

func (m FilesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoice files...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == filesStatePreview && m.selected != nil {
		title := lipgloss.NewStyle().Bold(true).Render(
			fmt.Sprintf("%s (%s, %s)", m.selected.Name, m.selected.Encoding, FormatSize(len(m.selected.Content))),
		)

		body := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(m.preview.View())

		return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
	}

	header := fmt.Sprintf(
		"Municipality %s | Filter: [s] Status: %s | [d] Date: %s",
		m.municipalityID,
		activeStyle(statusLabels[m.statusFilterIdx]),
		activeStyle(m.period.String()),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *FilesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.files))

	for _, f := range m.files {
		sent := ""
		if f.Sent != nil {
			sent = FormatTime(*f.Sent)
		}

		rows = append(rows, table.Row{
			FormatTime(f.Created),
			f.Name,
			f.Type,
			string(f.Status),
			FormatSize(len(f.Content)),
			sent,
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// Messages

type loadFilesMsg struct {
	files []*invoicefile.File
	err   error
}

func (m FilesModel) loadFilesCmd() tea.Cmd {
	filter := invoicefile.ListFilter{
		MunicipalityID: m.municipalityID,
		Statuses:       statusFilters[m.statusFilterIdx],
	}
	period := m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		files, err := m.fileService.List(ctx, filter)
		if err != nil {
			return loadFilesMsg{err: err}
		}

		now := time.Now()
		kept := files[:0]

		for _, f := range files {
			if period.Contains(f.Created, now) {
				kept = append(kept, f)
			}
		}

		return loadFilesMsg{files: kept}
	}
}

type previewMsg struct {
	text string
	err  error
}

func previewCmd(f *invoicefile.File) tea.Cmd {
	return func() tea.Msg {
		text, err := encoding.DecodeString(f.Content, f.Encoding)
		return previewMsg{text: text, err: err}
	}
}
