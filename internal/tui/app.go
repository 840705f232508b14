// Package tui provides the Bubble Tea application shell and its views.
package tui

import (
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typemaster/internal/logging"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/session"
	"github.com/verte-zerg/typemaster/internal/settings"
	"github.com/verte-zerg/typemaster/internal/statsui"
	"github.com/verte-zerg/typemaster/internal/store"
	"github.com/verte-zerg/typemaster/internal/theme"
)

// Deps are the collaborators of the application.
type Deps struct {
	Config      model.Config
	StatsConfig model.StatsConfig
	Store       *store.Store
	Settings    *settings.Store
	// Source supplies texts for the typing test.
	Source  session.Source
	Logger  *slog.Logger
	Clock   session.Clock
	Section Section
}

// App is the root model. It owns one view per section and routes messages
// to the active one.
type App struct {
	store    *store.Store
	settings *settings.Store
	log      *slog.Logger
	styles   *theme.Styles

	section Section
	width   int
	height  int
	restyle bool

	home        *homeView
	test        *typingView
	lessons     *lessonsView
	dashboard   *statsui.Model
	leaderboard *leaderboardView
	prefs       *settingsView

	unsubscribe func()
}

// New builds the application.
func New(d Deps) (*App, error) {
	if d.Store == nil || d.Settings == nil || d.Source == nil {
		return nil, errors.New("tui: store, settings and source are required")
	}
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		store:    d.Store,
		settings: d.Settings,
		log:      log,
		styles:   theme.New(d.Settings.Get().DarkMode),
	}

	machine, err := session.New(d.Source, d.Config.Duration, session.Options{
		CompleteOnMatch: d.Config.CompleteOnMatch,
		Clock:           d.Clock,
		OnFinish:        a.recorder(model.ModeTest, nil),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create typing session: %w", err)
	}

	a.home = &homeView{styles: a.styles}
	a.test = newTypingView(a.styles, d.Settings, machine, "Typing Test")
	a.lessons = newLessonsView(a.styles, d.Settings, d.Store, log, d.Clock)
	a.lessons.onFinish = a.recorder(model.ModeLesson, func() int { return a.lessons.current.ID })
	a.dashboard = statsui.NewModel(d.Store, d.StatsConfig, a.styles)
	a.leaderboard = newLeaderboardView(a.styles, d.Settings, d.Store, log)
	a.prefs = newSettingsView(a.styles, d.Settings, log)

	a.unsubscribe = d.Settings.Subscribe(func(s model.Settings) {
		a.styles.Apply(s.DarkMode)
		a.restyle = true
	})
	a.enter(d.Section)
	return a, nil
}

// Close releases the settings subscription.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// Section returns the active section.
func (a *App) Section() Section {
	return a.section
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.SetSize(a.width, a.bodyHeight())
	case tickMsg:
		cmd = handleTick(msg)
	case navigateMsg:
		a.switchTo(msg.section)
	case tea.KeyMsg:
		cmd = a.handleKey(msg)
	}
	if a.restyle {
		a.restyle = false
		a.leaderboard.restyle()
		a.dashboard.SetSize(a.width, a.bodyHeight())
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if msg.Type == tea.KeyEsc && a.section != SectionHome && !a.capturing() {
		a.switchTo(SectionHome)
		return nil
	}
	switch a.section {
	case SectionHome:
		return a.home.update(msg)
	case SectionTest:
		return a.test.update(msg)
	case SectionLessons:
		return a.lessons.update(msg)
	case SectionDashboard:
		_, cmd := a.dashboard.Update(msg)
		return cmd
	case SectionLeaderboard:
		return a.leaderboard.update(msg)
	case SectionSettings:
		return a.prefs.update(msg)
	default:
		panic(fmt.Sprintf("tui: unhandled section %v", a.section))
	}
}

func (a *App) capturing() bool {
	switch a.section {
	case SectionLessons:
		return a.lessons.capturing()
	case SectionDashboard:
		return a.dashboard.Capturing()
	case SectionSettings:
		return a.prefs.capturing()
	default:
		return false
	}
}

// switchTo unmounts the current section and mounts s.
func (a *App) switchTo(s Section) {
	if s == a.section {
		return
	}
	switch a.section {
	case SectionTest:
		a.test.leave()
	case SectionLessons:
		a.lessons.leave()
	}
	a.log.Debug("navigate", "from", a.section.String(), "to", s.String())
	a.enter(s)
}

func (a *App) enter(s Section) {
	a.section = s
	switch s {
	case SectionLessons:
		a.lessons.reloadProgress()
	case SectionDashboard:
		a.dashboard.Refresh()
	case SectionLeaderboard:
		a.leaderboard.refresh()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}
	header := a.renderHeader()
	height := a.bodyHeight()
	var body string
	switch a.section {
	case SectionHome:
		body = a.home.view(a.width, height)
	case SectionTest:
		body = a.test.view(a.width, height)
	case SectionLessons:
		body = a.lessons.view(a.width, height)
	case SectionDashboard:
		body = a.dashboard.View()
	case SectionLeaderboard:
		body = a.leaderboard.view(a.width, height)
	case SectionSettings:
		body = a.prefs.view(a.width, height)
	default:
		panic(fmt.Sprintf("tui: unhandled section %v", a.section))
	}
	return header + "\n" + theme.FitLines(body, a.width, height)
}

func (a *App) renderHeader() string {
	labels := make([]string, len(Sections))
	for i, s := range Sections {
		labels[i] = s.Title()
	}
	brand := a.styles.Title.Render("typemaster")
	nav := a.styles.Tabs(labels, int(a.section))
	if lipgloss.Width(brand)+lipgloss.Width(nav)+2 > a.width {
		return theme.PadLines(a.styles.Highlight.Render(a.section.Title()), a.width)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, brand, "  ", nav)
	return theme.PadLines(row, a.width)
}

func (a *App) bodyHeight() int {
	if a.width == 0 {
		return 0
	}
	return max(1, a.height-lipgloss.Height(a.renderHeader())-1)
}

// Run starts the program on the terminal and blocks until it exits.
func Run(app *App) error {
	defer app.Close()
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Summary returns a one-line report of the last finished test, used after
// the program exits.
func (a *App) Summary() string {
	res, ok := a.test.machine.Result()
	if !ok {
		return ""
	}
	return fmt.Sprintf("Last test: %d WPM, %d%% accuracy, %d errors",
		res.Final.WPM, res.Final.Accuracy, res.Final.Errors)
}
