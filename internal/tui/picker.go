// Package tui implements the interactive picker: a text input over a
// ranked list of catalog entries. Selecting an entry launches it and
// closes the picker; the catalog rebuilds itself when the application
// directories change underneath us.
package tui

import (
	"fmt"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/flingdev/fling/internal/catalog"
	"github.com/flingdev/fling/internal/config"
	"github.com/flingdev/fling/internal/history"
	"github.com/flingdev/fling/internal/launch"
	"github.com/flingdev/fling/internal/rank"
	"github.com/flingdev/fling/internal/tuilog"
)

// rebuiltMsg carries a freshly built catalog after a directory change.
type rebuiltMsg struct {
	apps []catalog.App
}

// watchFiredMsg signals that the watcher wants a rebuild.
type watchFiredMsg struct{}

// Model is the picker's bubbletea model.
type Model struct {
	input      textinput.Model
	apps       []catalog.App
	matches    []rank.Match
	cursor     int
	width      int
	height     int
	status     string
	quitting   bool
	launched   bool
	cfg        config.Config
	hist       map[string]uint64
	dispatcher *launch.Dispatcher
	watcher    *catalog.Watcher
}

// New builds the picker model over an already-built catalog.
func New(cfg config.Config, apps []catalog.App, hist map[string]uint64, dispatcher *launch.Dispatcher, watcher *catalog.Watcher) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to search applications"
	ti.Focus()

	m := Model{
		input:      ti,
		apps:       apps,
		cfg:        cfg,
		hist:       hist,
		dispatcher: dispatcher,
		watcher:    watcher,
	}
	m.rerank()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForWatch())
}

// waitForWatch blocks on the watcher channel and turns its signal into a
// message. Re-armed after every rebuild.
func (m Model) waitForWatch() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.C
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return watchFiredMsg{}
	}
}

func (m *Model) rerank() {
	m.matches = rank.Rank(m.input.Value(), m.apps, m.hist, rank.Options{
		MinScore:     m.cfg.Search.MinScore,
		PreferPrefix: m.cfg.Search.PreferPrefix,
		Limit:        m.cfg.General.MaxResults,
	})
	if m.cursor >= len(m.matches) {
		m.cursor = 0
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case watchFiredMsg:
		opts := m.cfg.CatalogOptions()
		return m, func() tea.Msg {
			// Full rebuild; there is no incremental update.
			return rebuiltMsg{apps: catalog.Build(opts)}
		}

	case rebuiltMsg:
		tuilog.Log.Info("catalog rebuilt", "apps", len(msg.apps))
		m.apps = msg.apps
		m.rerank()
		return m, m.waitForWatch()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			return m.launchSelection()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.rerank()
	return m, cmd
}

func (m Model) launchSelection() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.matches) {
		return m, nil
	}
	app := m.matches[m.cursor].App
	if err := m.dispatcher.Launch(app); err != nil {
		tuilog.Log.Error("launch failed", "app", app.Name, "error", err)
		m.status = fmt.Sprintf("failed to launch %s: %v", app.Name, err)
		return m, nil
	}
	m.launched = true
	m.quitting = true
	return m, tea.Quit
}

var (
	promptStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	normalStyle   = lipgloss.NewStyle()
	descStyle     = lipgloss.NewStyle().Faint(true)
	termStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (m Model) viewContent() string {
	if m.quitting {
		return ""
	}

	s := promptStyle.Render("fling") + "  " + m.input.View() + "\n\n"

	if len(m.matches) == 0 {
		s += descStyle.Render("  no matches") + "\n"
	}
	for i, match := range m.matches {
		line := match.App.Name
		if match.App.Description != "" {
			line += "  " + descStyle.Render(match.App.Description)
		}
		if match.App.Terminal {
			line += " " + termStyle.Render("[terminal]")
		}
		if i == m.cursor {
			s += selectedStyle.Render("> "+match.App.Name) + line[len(match.App.Name):] + "\n"
		} else {
			s += normalStyle.Render("  "+match.App.Name) + line[len(match.App.Name):] + "\n"
		}
	}

	if m.status != "" {
		s += "\n" + errorStyle.Render(m.status) + "\n"
	}
	return s
}

func (m Model) View() tea.View {
	v := tea.NewView(m.viewContent())
	v.AltScreen = true
	return v
}

// Launched reports whether the picker ended by launching an app.
func (m Model) Launched() bool {
	return m.launched
}

// Run builds the catalog, starts the directory watcher and runs the
// picker until the user launches something or bails out.
func Run(cfg config.Config) error {
	apps := catalog.Build(cfg.CatalogOptions())

	ledgerPath, err := history.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolve history path: %w", err)
	}
	ledger := history.New(ledgerPath)
	hist, err := ledger.Load()
	if err != nil {
		tuilog.Log.Warn("history unavailable", "error", err)
		hist = map[string]uint64{}
	}

	dispatcher := &launch.Dispatcher{
		Terminal: cfg.General.Terminal,
		History:  ledger,
	}

	watchDirs := append(catalog.DefaultSearchDirs(), cfg.Apps.ExtraDirs...)
	watcher, err := catalog.Watch(watchDirs)
	if err != nil {
		tuilog.Log.Warn("catalog watcher unavailable", "error", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	p := tea.NewProgram(New(cfg, apps, hist, dispatcher, watcher))
	_, err = p.Run()
	return err
}
