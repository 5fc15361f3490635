package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/billingfiles/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/billingfiles/internal/app"
	"github.com/MrJamesThe3rd/billingfiles/internal/config"
	"github.com/MrJamesThe3rd/billingfiles/internal/logging"
)

type model struct {
	app            *app.App
	municipalityID string

	currentView View

	runView   view.RunModel
	filesView view.FilesModel
}

type View int

const (
	ViewMenu  View = 0
	ViewRun   View = 1
	ViewFiles View = 2
)

func initialModel() (model, func()) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logs would draw over the UI.
	logFile, err := os.OpenFile("billingfiles-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}

	logger, err := logging.NewWithWriter(logFile, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	muni := cfg.Console.MunicipalityID

	return model{
		app:            a,
		municipalityID: muni,
		currentView:    ViewMenu,
		runView:        view.NewRunModel(a.Batch, a.Transfer, muni),
		filesView:      view.NewFilesModel(a.Files, muni),
	}, func() {
		_ = a.Close()
		_ = logFile.Close()
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewRun
				m.runView = view.NewRunModel(m.app.Batch, m.app.Transfer, m.municipalityID)

				return m, m.runView.Init()
			case "2":
				m.currentView = ViewFiles
				m.filesView = view.NewFilesModel(m.app.Files, m.municipalityID)

				return m, m.filesView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRun:
		var newModel tea.Model
		newModel, cmd = m.runView.Update(msg)
		m.runView = newModel.(view.RunModel)
	case ViewFiles:
		var newModel tea.Model
		newModel, cmd = m.filesView.Update(msg)
		m.filesView = newModel.(view.FilesModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Invoice Files\n\n" +
				"1. Create or Transfer Files\n" +
				"2. Browse Files\n\n" +
				"q. Quit",
		)
	case ViewRun:
		return m.runView.View() + "\n" + lipgloss.NewStyle().Faint(true).Render(m.runView.ShortHelp())
	case ViewFiles:
		return m.filesView.View() + "\n" + lipgloss.NewStyle().Faint(true).Render(m.filesView.ShortHelp())
	}

	return "Unknown View"
}

func main() {
	m, closeApp := initialModel()
	defer closeApp()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		closeApp()
		os.Exit(1)
	}
}
