// Package statsui provides the Bubble Tea progress dashboard.
package statsui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/stats"
	"github.com/verte-zerg/typemaster/internal/store"
	"github.com/verte-zerg/typemaster/internal/theme"
)

const (
	tabOverview = iota
	tabRecent
	tabWeak
)

const (
	recentLimit    = 20
	sparklineWidth = 60
	weakTop        = 5
)

// Model implements the Bubble Tea dashboard.
type Model struct {
	store  *store.Store
	cfg    model.StatsConfig
	styles *theme.Styles

	// Standalone models quit on q; embedded ones leave that to the host.
	Standalone bool

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	tables    map[int]*table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a dashboard model and loads the first report.
func NewModel(st *store.Store, cfg model.StatsConfig, styles *theme.Styles) *Model {
	if styles == nil {
		styles = theme.New(true)
	}
	m := &Model{
		store:    st,
		cfg:      cfg,
		styles:   styles,
		tabs:     []string{"Overview", "Recent Tests", "Weak Chars"},
		overview: viewport.New(0, 0),
	}
	m.tables = map[int]*table.Model{
		tabRecent: newTable(recentColumns(), m.styles),
		tabWeak:   newTable(weakColumns(), m.styles),
	}
	m.initInputs()
	m.Refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Capturing reports whether keys such as esc belong to the dashboard.
func (m *Model) Capturing() bool {
	return m.filterMode
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.Standalone && (msg.Type == tea.KeyCtrlC || msg.String() == "q") {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, nil
		case "right", "l":
			m.moveTab(1)
			return m, nil
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.Refresh()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.Refresh()
			return m, nil
		case "r":
			m.Refresh()
			return m, nil
		case "/":
			return m.startFilter()
		}
		if t, ok := m.tables[m.activeTab]; ok {
			var cmd tea.Cmd
			*t, cmd = t.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.overview, cmd = m.overview.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := theme.FitLines(m.renderHeader(), m.width, headerHeight)
	body := theme.FitLines(m.renderBody(), m.width, bodyHeight)
	footer := theme.FitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// SetSize lays the dashboard out for a width x height area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateLayout()
	m.renderContents()
}

// Refresh reloads the report from the store.
func (m *Model) Refresh() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.tables[tabRecent].SetRows(recentRows(report.Recent(recentLimit)))
	m.tables[tabWeak].SetRows(weakRows(report.CharAggsWindow))
	m.renderContents()
}

// Report returns the last loaded report.
func (m *Model) Report() stats.Report {
	return m.report
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Mode (test/lesson): "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Curve window: "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func newTable(cols []table.Column, styles *theme.Styles) *table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithHeight(1),
		table.WithFocused(true),
	)
	t.SetStyles(styles.Table())
	return &t
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[0].SetValue(m.cfg.Mode)
	if m.cfg.Since != nil {
		m.filterInputs[1].SetValue(m.cfg.Since.Format("2006-01-02"))
	} else {
		m.filterInputs[1].SetValue("")
	}
	if m.cfg.Last > 0 {
		m.filterInputs[2].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[2].SetValue("")
	}
	m.filterInputs[3].SetValue(strconv.Itoa(m.cfg.CurveWindow))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(m.styles.ActiveNav.Render("X")) + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	for _, t := range m.tables {
		t.SetWidth(m.width)
		t.SetHeight(max(1, bodyHeight-1))
		t.SetStyles(m.styles.Table())
	}
	for i := range m.filterInputs {
		m.filterInputs[i].Width = max(10, m.width-lipgloss.Width(m.filterInputs[i].Prompt)-2)
	}
}

func (m *Model) moveTab(delta int) {
	n := len(m.tabs)
	m.activeTab = ((m.activeTab+delta)%n + n) % n
}

func (m *Model) renderHeader() string {
	tabs := theme.PadLines(m.styles.Tabs(m.tabs, m.activeTab), m.width)
	return tabs + "\n" + m.renderFilterSummary()
}

func (m *Model) renderFilterSummary() string {
	mode := m.cfg.Mode
	if mode == "" {
		mode = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Filters: mode=%s  since=%s  last=%s  window=%d", mode, since, last, m.cfg.CurveWindow)
	return m.styles.Footer.Render(theme.Truncate(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.styles.Footer.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := "Nav: left/right  Scroll: up/down  Window: -/=  Filters: /  Reload: r"
	if m.Standalone {
		help += "  Quit: q"
	} else {
		help += "  Back: esc"
	}
	help = m.styles.Footer.Render(help)
	if m.errMsg != "" {
		return help + "\n" + m.styles.Error.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	if m.filterMode {
		lines := []string{"Filters (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, m.styles.Error.Render(m.filterError))
		}
		return strings.Join(lines, "\n")
	}
	switch m.activeTab {
	case tabRecent:
		if len(m.report.Sessions) == 0 {
			return "No sessions found."
		}
		return m.tables[tabRecent].View()
	case tabWeak:
		if len(m.report.CharAggsWindow) == 0 {
			return "No character stats found."
		}
		return m.renderWeakHeader() + "\n" + m.tables[tabWeak].View()
	default:
		return m.overview.View()
	}
}

func (m *Model) renderWeakHeader() string {
	aggs := m.report.CharAggsWindow
	weak := stats.SelectWeakChars(aggs, weakTop)
	var header string
	if len(weak) == 0 {
		header = m.styles.Success.Render("No weak characters in the last sessions.")
	} else {
		var chars []string
		for _, agg := range stats.CharRows(aggs) {
			if r := []rune(agg.Char); len(r) == 1 {
				if _, ok := weak[r[0]]; ok {
					chars = append(chars, agg.Char)
				}
			}
		}
		header = m.styles.Highlight.Render("Focus on: " + strings.Join(chars, " "))
	}
	if most := mostTyped(aggs); most != "" {
		header += "   " + m.styles.Muted.Render("Most typed: "+most)
	}
	return header
}

// mostTyped lists the most frequent characters of the window.
func mostTyped(aggs []model.CharAggregate) string {
	chars := stats.TopCharsByFrequency(aggs, weakTop)
	for i, c := range chars {
		if c == " " {
			chars[i] = "<space>"
		}
	}
	return strings.Join(chars, " ")
}

func (m *Model) renderContents() {
	if m.errMsg != "" {
		m.overview.SetContent("Failed to load stats.")
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.styles, m.report, m.cfg.CurveWindow, width))
}

func renderOverview(styles *theme.Styles, report stats.Report, window, width int) string {
	if len(report.Sessions) == 0 {
		return "No sessions found. Finish a typing test to see your progress."
	}
	sum := stats.Summarize(report.Sessions, len(report.Lessons))
	cards := []string{
		styles.MetricCard("Avg WPM", strconv.Itoa(sum.AverageWPM)),
		styles.MetricCard("Best WPM", strconv.Itoa(sum.BestWPM)),
		styles.MetricCard("Avg Accuracy", fmt.Sprintf("%d%%", sum.AverageAccuracy)),
		styles.MetricCard("Practice Time", stats.FormatPracticeTime(sum.PracticeTime)),
		styles.MetricCard("Tests", strconv.Itoa(sum.TestsCompleted)),
		styles.MetricCard("Lessons", strconv.Itoa(sum.LessonsCompleted)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:3]...)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3:]...)
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}

	wpms, accs := stats.Series(report.Sessions)
	spark := min(sparklineWidth, max(10, width-12))
	curves := strings.Join([]string{
		styles.Title.Render("Learning Curves"),
		"WPM      " + styles.Highlight.Render(stats.Sparkline(stats.MovingAverage(wpms, window), spark)),
		"Accuracy " + styles.Success.Render(stats.Sparkline(stats.MovingAverage(accs, window), spark)),
	}, "\n")
	return summary + "\n\n" + curves
}

func recentColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Mode", Width: 7},
		{Title: "WPM", Width: 5},
		{Title: "Accuracy", Width: 9},
		{Title: "Duration", Width: 9},
		{Title: "Result", Width: 10},
	}
}

func recentRows(sessions []model.SessionAggregate) []table.Row {
	rows := make([]table.Row, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, table.Row{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			s.Mode,
			strconv.Itoa(s.WPM),
			fmt.Sprintf("%d%%", s.Accuracy),
			fmt.Sprintf("%ds", s.DurationSeconds),
			s.Reason,
		})
	}
	return rows
}

func weakColumns() []table.Column {
	return []table.Column{
		{Title: "Char", Width: 7},
		{Title: "Accuracy", Width: 9},
		{Title: "Correct", Width: 7},
		{Title: "Incorrect", Width: 9},
		{Title: "Total", Width: 6},
	}
}

func weakRows(aggs []model.CharAggregate) []table.Row {
	charRows := stats.CharRows(aggs)
	rows := make([]table.Row, 0, len(charRows))
	for _, r := range charRows {
		rows = append(rows, table.Row{
			r.Char,
			fmt.Sprintf("%.2f%%", r.Accuracy*100),
			strconv.Itoa(r.Correct),
			strconv.Itoa(r.Incorrect),
			strconv.Itoa(r.Correct + r.Incorrect),
		})
	}
	return rows
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.Refresh()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = ((idx % count) + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	mode := strings.ToLower(strings.TrimSpace(m.filterInputs[0].Value()))
	if mode != "" && mode != model.ModeTest && mode != model.ModeLesson {
		return fmt.Errorf("invalid mode (use test, lesson or leave empty)")
	}

	var since *time.Time
	if input := strings.TrimSpace(m.filterInputs[1].Value()); input != "" {
		parsed, err := time.ParseInLocation("2006-01-02", input, time.Local)
		if err != nil {
			return fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		since = &parsed
	}

	last := 0
	if input := strings.TrimSpace(m.filterInputs[2].Value()); input != "" {
		parsed, err := strconv.Atoi(input)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		last = parsed
	}

	window := 1
	if input := strings.TrimSpace(m.filterInputs[3].Value()); input != "" {
		parsed, err := strconv.Atoi(input)
		if err != nil || parsed < 1 {
			return fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		window = parsed
	}

	m.cfg = model.StatsConfig{
		Mode:        mode,
		Since:       since,
		Last:        last,
		CurveWindow: window,
	}
	return nil
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}
