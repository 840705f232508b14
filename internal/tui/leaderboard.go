package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typemaster/internal/leaderboard"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/settings"
	"github.com/verte-zerg/typemaster/internal/store"
	"github.com/verte-zerg/typemaster/internal/theme"
)

type leaderboardView struct {
	styles   *theme.Styles
	settings *settings.Store
	store    *store.Store
	log      *slog.Logger
	now      func() time.Time

	period  int
	entries []leaderboard.Entry
	table   table.Model
	errMsg  string
}

func newLeaderboardView(styles *theme.Styles, st *settings.Store, db *store.Store, log *slog.Logger) *leaderboardView {
	v := &leaderboardView{
		styles:   styles,
		settings: st,
		store:    db,
		log:      log,
		now:      time.Now,
		period:   len(leaderboard.Periods) - 1,
	}
	v.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Typist", Width: 20},
			{Title: "WPM", Width: 5},
			{Title: "Accuracy", Width: 9},
			{Title: "Tests", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(len(leaderboard.Seed)+2),
	)
	v.restyle()
	return v
}

func (v *leaderboardView) restyle() {
	v.table.SetStyles(v.styles.Table())
}

// refresh rebuilds the ranking from stored test sessions.
func (v *leaderboardView) refresh() {
	sessions, err := v.store.ListSessions(context.Background(), model.StatsConfig{Mode: model.ModeTest})
	if err != nil {
		v.log.Error("failed to load sessions for leaderboard", "err", err)
		v.errMsg = "Could not load your results."
		sessions = nil
	} else {
		v.errMsg = ""
	}
	period := leaderboard.Periods[v.period]
	v.entries = leaderboard.Build(sessions, v.settings.Get().Username, period, v.now())
	rows := make([]table.Row, 0, len(v.entries))
	cursor := 0
	for i, e := range v.entries {
		name := e.Username
		if e.Local {
			name = "* " + name
			cursor = i
		}
		rows = append(rows, table.Row{
			strconv.Itoa(e.Rank),
			name,
			strconv.Itoa(e.WPM),
			fmt.Sprintf("%d%%", e.Accuracy),
			strconv.Itoa(e.TestsCompleted),
		})
	}
	v.table.SetRows(rows)
	v.table.SetCursor(cursor)
}

func (v *leaderboardView) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		v.period = (v.period + len(leaderboard.Periods) - 1) % len(leaderboard.Periods)
		v.refresh()
		return nil
	case "right", "l", "tab":
		v.period = (v.period + 1) % len(leaderboard.Periods)
		v.refresh()
		return nil
	}
	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return cmd
}

func (v *leaderboardView) view(width, height int) string {
	labels := make([]string, len(leaderboard.Periods))
	for i, p := range leaderboard.Periods {
		labels[i] = string(p)
	}
	lines := []string{
		v.styles.Title.Render("Leaderboard"),
		v.styles.Tabs(labels, v.period),
		v.table.View(),
	}
	if v.errMsg != "" {
		lines = append(lines, v.styles.Error.Render(v.errMsg))
	}
	if local, ok := v.local(); ok {
		lines = append(lines, v.styles.Highlight.Render(fmt.Sprintf("Your rank: #%d with %d WPM", local.Rank, local.WPM)))
	} else {
		lines = append(lines, v.styles.Muted.Render("Finish a typing test in this period to get ranked."))
	}
	lines = append(lines, v.styles.Footer.Render("left/right: period  ·  up/down: scroll  ·  esc: back"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}

func (v *leaderboardView) local() (leaderboard.Entry, bool) {
	for _, e := range v.entries {
		if e.Local {
			return e, true
		}
	}
	return leaderboard.Entry{}, false
}
