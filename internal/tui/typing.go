package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typemaster/internal/session"
	"github.com/verte-zerg/typemaster/internal/settings"
	"github.com/verte-zerg/typemaster/internal/stats"
	"github.com/verte-zerg/typemaster/internal/theme"
)

// DurationChoices are the selectable test lengths in seconds.
var DurationChoices = []int{15, 30, 60, 120, 180, 300}

// tickMsg is one second of countdown for the machine that armed timer.
type tickMsg struct {
	machine *session.Machine
	timer   session.Timer
}

func tickCmd(m *session.Machine, t session.Timer) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{machine: m, timer: t}
	})
}

// handleTick advances the machine a tick belongs to and schedules the next
// one while the countdown stays armed.
func handleTick(msg tickMsg) tea.Cmd {
	if msg.machine == nil || !msg.machine.Tick(msg.timer) {
		return nil
	}
	return tickCmd(msg.machine, msg.timer)
}

// typingView renders one session: selector, live stats, text and results.
type typingView struct {
	styles   *theme.Styles
	settings *settings.Store
	machine  *session.Machine

	title      string
	durations  []int
	durIdx     int
	fixedLimit bool
	notice     string
}

func newTypingView(styles *theme.Styles, st *settings.Store, m *session.Machine, title string) *typingView {
	durations, idx := durationChoices(m.Duration())
	return &typingView{
		styles:    styles,
		settings:  st,
		machine:   m,
		title:     title,
		durations: durations,
		durIdx:    idx,
	}
}

// durationChoices returns the selectable durations including current.
func durationChoices(current int) ([]int, int) {
	out := make([]int, 0, len(DurationChoices)+1)
	idx := -1
	for _, d := range DurationChoices {
		if idx < 0 && current < d {
			idx = len(out)
			out = append(out, current)
		} else if d == current {
			idx = len(out)
		}
		out = append(out, d)
	}
	if idx < 0 {
		idx = len(out)
		out = append(out, current)
	}
	return out, idx
}

func (v *typingView) update(msg tea.KeyMsg) tea.Cmd {
	if v.machine.State() == session.Finished {
		switch msg.Type {
		case tea.KeyTab, tea.KeyEnter:
			v.restart()
		}
		return nil
	}
	switch msg.Type {
	case tea.KeyTab:
		v.restart()
	case tea.KeyEnter:
		v.machine.Finish()
	case tea.KeyLeft:
		v.shiftDuration(-1)
	case tea.KeyRight:
		v.shiftDuration(1)
	case tea.KeyBackspace:
		typed := v.machine.TypedRunes()
		if len(typed) > 0 {
			v.machine.AcceptInput(string(typed[:len(typed)-1]))
		}
	case tea.KeySpace:
		return v.typeRunes([]rune{' '})
	case tea.KeyRunes:
		return v.typeRunes(msg.Runes)
	}
	return nil
}

func (v *typingView) typeRunes(runes []rune) tea.Cmd {
	var cmd tea.Cmd
	if t, ok := v.machine.BeginIfNeeded(); ok {
		cmd = tickCmd(v.machine, t)
	}
	typed := append([]rune(nil), v.machine.TypedRunes()...)
	v.machine.AcceptInput(string(append(typed, runes...)))
	return cmd
}

// restart draws a new text. The old countdown handle is invalidated, so a
// tick already in flight is dropped.
func (v *typingView) restart() {
	v.notice = ""
	v.machine.Reset()
}

// leave resets the session when the view is unmounted.
func (v *typingView) leave() {
	if v.machine.State() != session.Idle || len(v.machine.TypedRunes()) > 0 {
		v.machine.Reset()
	}
}

func (v *typingView) shiftDuration(delta int) {
	if v.fixedLimit || v.machine.State() != session.Idle {
		return
	}
	next := v.durIdx + delta
	if next < 0 || next >= len(v.durations) {
		return
	}
	if err := v.machine.Configure(v.durations[next]); err != nil {
		return
	}
	v.durIdx = next
}

func (v *typingView) view(width, height int) string {
	var body string
	if v.machine.State() == session.Finished {
		body = v.renderResults()
	} else {
		body = v.renderTyping(width)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (v *typingView) renderTyping(width int) string {
	textWidth := textColumnWidth(width, v.settings.Get().FontSize)
	live := v.machine.Live()
	stateHint := "start typing to begin"
	if v.machine.State() == session.Running {
		stateHint = "enter: finish early"
	}
	lines := []string{
		v.styles.Title.Render(v.title),
		v.renderDurations(),
		"",
		v.styles.Highlight.Render(fmt.Sprintf("Time %s", formatClock(live.RemainingSeconds))) + "   " +
			v.styles.Text.Render(fmt.Sprintf("WPM %d   Accuracy %d%%   Errors %d", live.WPM, live.Accuracy, live.Errors)),
		"",
		lipgloss.NewStyle().Width(textWidth).Render(
			wrapCells(styleReference(v.styles, v.machine.ReferenceRunes(), v.machine.TypedRunes()), textWidth)),
		"",
		v.styles.Footer.Render(fmt.Sprintf("%d%% complete  ·  %s  ·  tab: new text  ·  esc: back", v.progress(), stateHint)),
	}
	return strings.Join(lines, "\n")
}

func (v *typingView) renderDurations() string {
	if v.fixedLimit {
		return v.styles.Muted.Render(fmt.Sprintf("Time limit %s", formatClock(v.machine.Duration())))
	}
	parts := make([]string, 0, len(v.durations))
	for i, d := range v.durations {
		label := formatDuration(d)
		if i == v.durIdx {
			parts = append(parts, v.styles.Highlight.Render("["+label+"]"))
		} else {
			parts = append(parts, v.styles.Muted.Render(" "+label+" "))
		}
	}
	hint := "left/right: duration"
	if v.machine.State() != session.Idle {
		hint = "duration locked"
	}
	return strings.Join(parts, " ") + "  " + v.styles.Footer.Render(hint)
}

func (v *typingView) progress() int {
	ref := len(v.machine.ReferenceRunes())
	if ref == 0 {
		return 0
	}
	return len(v.machine.TypedRunes()) * 100 / ref
}

func (v *typingView) renderResults() string {
	res, ok := v.machine.Result()
	if !ok {
		return ""
	}
	final := res.Final
	headline := "Time's up!"
	switch res.Reason {
	case session.ReasonCompleted:
		headline = "Text complete!"
	case session.ReasonStopped:
		headline = "Test stopped"
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		v.styles.MetricCard("WPM", fmt.Sprintf("%d", final.WPM)),
		v.styles.MetricCard("Accuracy", fmt.Sprintf("%d%%", final.Accuracy)),
		v.styles.MetricCard("Errors", fmt.Sprintf("%d", final.Errors)),
		v.styles.MetricCard("Time", fmt.Sprintf("%.1fs", final.ElapsedSeconds)),
	)
	lines := []string{
		v.styles.Title.Render(headline),
		v.styles.Text.Render(stats.Feedback(final.WPM, final.Accuracy)),
		"",
		cards,
		"",
		v.styles.Highlight.Render(stats.SpeedLevel(final.WPM) + " Level"),
		v.styles.Muted.Render(fmt.Sprintf("%d of %d characters correct", final.Correct, final.Total)),
	}
	if v.notice != "" {
		lines = append(lines, v.styles.Error.Render(v.notice))
	}
	lines = append(lines, "", v.styles.Footer.Render("tab/enter: try again  ·  esc: back"))
	return strings.Join(lines, "\n")
}

// textColumnWidth sizes the text column from the font size setting: larger
// fonts get a narrower column.
func textColumnWidth(width, fontSize int) int {
	if width <= 0 {
		return 60
	}
	pct := 0.9 - float64(fontSize-settings.MinFontSize)*0.025
	return max(20, int(float64(width)*pct))
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func formatDuration(seconds int) string {
	if seconds < 60 || seconds%60 != 0 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm", seconds/60)
}
