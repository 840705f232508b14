package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typemaster/internal/corpus"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/session"
	"github.com/verte-zerg/typemaster/internal/settings"
	"github.com/verte-zerg/typemaster/internal/store"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func newTestApp(t *testing.T, duration int) (*App, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "typemaster.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	prefs, err := settings.Load(context.Background(), st, model.Settings{
		DarkMode:   true,
		FontSize:   settings.DefaultFontSize,
		FontFamily: settings.DefaultFamily,
	})
	require.NoError(t, err)

	app, err := New(Deps{
		Config:      model.Config{Duration: duration, CompleteOnMatch: true},
		StatsConfig: model.StatsConfig{CurveWindow: 5},
		Store:       st,
		Settings:    prefs,
		Source:      corpus.Fixed("cat dog"),
		Clock:       &fixedClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	t.Cleanup(app.Close)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, st
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(a *App, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = a.Update(msg)
	}
	return cmd
}

func TestNewRequiresDeps(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)
}

func TestParseSection(t *testing.T) {
	s, err := ParseSection("Leaderboard")
	require.NoError(t, err)
	assert.Equal(t, SectionLeaderboard, s)
	_, err = ParseSection("arcade")
	assert.Error(t, err)
	for _, s := range Sections {
		parsed, err := ParseSection(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestEverySectionRenders(t *testing.T) {
	app, _ := newTestApp(t, 30)
	for _, s := range Sections {
		send(app, navigateMsg{section: s})
		require.Equal(t, s, app.Section())
		out := app.View()
		assert.NotEmpty(t, out, s.String())
		assert.Contains(t, out, "typemaster")
	}
}

func TestHomeMenuNavigates(t *testing.T) {
	app, _ := newTestApp(t, 30)
	cmd := send(app, runes("2"))
	require.NotNil(t, cmd)
	send(app, cmd())
	assert.Equal(t, SectionLessons, app.Section())

	send(app, key(tea.KeyEsc))
	assert.Equal(t, SectionHome, app.Section())
}

func TestDurationLockedWhileRunning(t *testing.T) {
	app, _ := newTestApp(t, 30)
	send(app, navigateMsg{section: SectionTest})

	send(app, key(tea.KeyRight))
	assert.Equal(t, 60, app.test.machine.Duration())

	cmd := send(app, runes("c"))
	require.NotNil(t, cmd, "first keystroke arms the countdown")
	assert.Equal(t, session.Running, app.test.machine.State())

	send(app, key(tea.KeyLeft))
	assert.Equal(t, 60, app.test.machine.Duration())
	assert.Contains(t, app.View(), "duration locked")
}

func TestTicksCountDownAndPersist(t *testing.T) {
	app, st := newTestApp(t, 15)
	send(app, navigateMsg{section: SectionTest}, runes("ca"))
	timer, ok := app.test.machine.Timer()
	require.True(t, ok)

	tick := tickMsg{machine: app.test.machine, timer: timer}
	for i := 0; i < 14; i++ {
		require.NotNil(t, send(app, tick), "tick %d should reschedule", i)
	}
	assert.Equal(t, 1, app.test.machine.Remaining())
	assert.Nil(t, send(app, tick))
	assert.Equal(t, session.Finished, app.test.machine.State())
	assert.Contains(t, app.View(), "Time's up!")

	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, model.ModeTest, sessions[0].Mode)
	assert.Equal(t, "expired", sessions[0].Reason)
	assert.Equal(t, 2, sessions[0].Correct)
	assert.Equal(t, 15, sessions[0].DurationSeconds)
}

func TestStaleTickIgnoredAfterRestart(t *testing.T) {
	app, _ := newTestApp(t, 30)
	send(app, navigateMsg{section: SectionTest}, runes("c"))
	old, ok := app.test.machine.Timer()
	require.True(t, ok)

	send(app, key(tea.KeyTab))
	assert.Equal(t, session.Idle, app.test.machine.State())

	send(app, runes("c"))
	assert.Nil(t, send(app, tickMsg{machine: app.test.machine, timer: old}))
	assert.Equal(t, 30, app.test.machine.Remaining())
}

func TestLeavingTestResetsSession(t *testing.T) {
	app, st := newTestApp(t, 30)
	send(app, navigateMsg{section: SectionTest}, runes("ca"))
	timer, _ := app.test.machine.Timer()

	send(app, key(tea.KeyEsc))
	assert.Equal(t, SectionHome, app.Section())
	assert.Equal(t, session.Idle, app.test.machine.State())
	assert.Empty(t, app.test.machine.Typed())
	assert.Nil(t, send(app, tickMsg{machine: app.test.machine, timer: timer}))

	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{})
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestCompleteOnMatchShowsResults(t *testing.T) {
	app, st := newTestApp(t, 30)
	send(app, navigateMsg{section: SectionTest}, runes("cat"), key(tea.KeySpace), runes("dog"))
	assert.Equal(t, session.Finished, app.test.machine.State())
	view := app.View()
	assert.Contains(t, view, "Text complete!")
	assert.Contains(t, view, "100%")

	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "completed", sessions[0].Reason)

	send(app, key(tea.KeyTab))
	assert.Equal(t, session.Idle, app.test.machine.State())
}

func TestBackspaceAndFinishEarly(t *testing.T) {
	app, st := newTestApp(t, 30)
	send(app, navigateMsg{section: SectionTest}, runes("cx"), key(tea.KeyBackspace))
	assert.Equal(t, "c", app.test.machine.Typed())

	send(app, key(tea.KeyEnter))
	res, ok := app.test.machine.Result()
	require.True(t, ok)
	assert.Equal(t, session.ReasonStopped, res.Reason)

	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestLessonsUnlockInOrder(t *testing.T) {
	app, st := newTestApp(t, 30)
	send(app, navigateMsg{section: SectionLessons})

	send(app, key(tea.KeyDown), key(tea.KeyEnter))
	assert.Nil(t, app.lessons.practice)
	assert.Contains(t, app.View(), "Complete lesson 1")

	send(app, key(tea.KeyUp), key(tea.KeyEnter))
	require.NotNil(t, app.lessons.practice)
	lesson, _ := corpus.LessonByID(1)
	send(app, runes(lesson.Text))

	res, ok := app.lessons.practice.machine.Result()
	require.True(t, ok)
	assert.Equal(t, session.ReasonCompleted, res.Reason)

	progress, err := st.ListLessonProgress(context.Background())
	require.NoError(t, err)
	require.Contains(t, progress, 1)
	assert.Equal(t, 100, progress[1].BestAccuracy)

	send(app, key(tea.KeyEsc))
	assert.Nil(t, app.lessons.practice)
	assert.Equal(t, SectionLessons, app.Section())

	send(app, key(tea.KeyDown), key(tea.KeyEnter))
	require.NotNil(t, app.lessons.practice)
	assert.Equal(t, 2, app.lessons.current.ID)

	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{Mode: model.ModeLesson})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].LessonID)
}

func TestSettingsToggleTheme(t *testing.T) {
	app, st := newTestApp(t, 30)
	send(app, navigateMsg{section: SectionSettings})
	require.True(t, app.styles.Dark)

	send(app, key(tea.KeyEnter))
	assert.False(t, app.settings.Get().DarkMode)
	assert.False(t, app.styles.Dark, "styles follow the settings subscription")
	assert.Contains(t, app.View(), "Light")

	value, ok, err := st.GetSetting(context.Background(), settings.KeyDarkMode)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "false", value)
}

func TestSettingsFontSizeClamped(t *testing.T) {
	app, _ := newTestApp(t, 30)
	send(app, navigateMsg{section: SectionSettings}, key(tea.KeyDown))
	for i := 0; i < 20; i++ {
		send(app, key(tea.KeyRight))
	}
	assert.Equal(t, settings.MaxFontSize, app.settings.Get().FontSize)
	assert.Empty(t, app.prefs.errMsg)
}

func TestSettingsEditUsername(t *testing.T) {
	app, _ := newTestApp(t, 30)
	send(app, navigateMsg{section: SectionSettings}, key(tea.KeyUp), key(tea.KeyEnter))
	require.True(t, app.prefs.editing)

	send(app, runes("ada"))
	send(app, key(tea.KeyEsc))
	assert.Equal(t, SectionSettings, app.Section(), "esc cancels the edit first")
	assert.Empty(t, app.settings.Get().Username)

	send(app, key(tea.KeyEnter), runes("ada"), key(tea.KeyEnter))
	assert.Equal(t, "ada", app.settings.Get().Username)
}

func TestLeaderboardIncludesLocalBest(t *testing.T) {
	app, _ := newTestApp(t, 30)
	send(app, navigateMsg{section: SectionTest}, runes("cat dog"))
	send(app, navigateMsg{section: SectionLeaderboard})

	local, ok := app.leaderboard.local()
	require.True(t, ok)
	assert.Equal(t, 11, local.Rank)
	assert.Contains(t, app.View(), "Your rank: #11")

	send(app, key(tea.KeyRight))
	assert.Equal(t, 0, app.leaderboard.period, "wraps to daily")
}

func TestDashboardEscGoesHome(t *testing.T) {
	app, _ := newTestApp(t, 30)
	send(app, navigateMsg{section: SectionDashboard})
	send(app, runes("/"))
	require.True(t, app.dashboard.Capturing())
	send(app, key(tea.KeyEsc))
	assert.Equal(t, SectionDashboard, app.Section())
	send(app, key(tea.KeyEsc))
	assert.Equal(t, SectionHome, app.Section())
}

func TestDurationChoices(t *testing.T) {
	got, idx := durationChoices(45)
	assert.Equal(t, []int{15, 30, 45, 60, 120, 180, 300}, got)
	assert.Equal(t, 2, idx)
	got, idx = durationChoices(60)
	assert.Equal(t, DurationChoices, got)
	assert.Equal(t, 2, idx)
}

func TestTextColumnWidthShrinksWithFont(t *testing.T) {
	small := textColumnWidth(100, settings.MinFontSize)
	large := textColumnWidth(100, settings.MaxFontSize)
	assert.Greater(t, small, large)
	assert.Equal(t, 90, small)
	assert.True(t, strings.HasPrefix(formatClock(75), "1:15"))
	assert.Equal(t, "2m", formatDuration(120))
	assert.Equal(t, "15s", formatDuration(15))
}
