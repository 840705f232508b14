package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typemaster/internal/corpus"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/session"
	"github.com/verte-zerg/typemaster/internal/settings"
	"github.com/verte-zerg/typemaster/internal/store"
	"github.com/verte-zerg/typemaster/internal/theme"
)

// LessonDuration is the time limit of a lesson attempt in seconds.
const LessonDuration = 300

type lessonsView struct {
	styles   *theme.Styles
	settings *settings.Store
	store    *store.Store
	log      *slog.Logger
	clock    session.Clock
	onFinish func(session.Result)

	lessons  []corpus.Lesson
	progress map[int]model.LessonProgress
	cursor   int
	message  string

	current  corpus.Lesson
	practice *typingView
}

func newLessonsView(styles *theme.Styles, st *settings.Store, db *store.Store, log *slog.Logger, clock session.Clock) *lessonsView {
	v := &lessonsView{
		styles:   styles,
		settings: st,
		store:    db,
		log:      log,
		clock:    clock,
		lessons:  corpus.Lessons(),
	}
	v.reloadProgress()
	return v
}

func (v *lessonsView) reloadProgress() {
	progress, err := v.store.ListLessonProgress(context.Background())
	if err != nil {
		v.log.Error("failed to load lesson progress", "err", err)
		v.message = "Could not load lesson progress."
		return
	}
	v.progress = progress
}

func (v *lessonsView) completed() map[int]bool {
	out := make(map[int]bool, len(v.progress))
	for id := range v.progress {
		out[id] = true
	}
	return out
}

func (v *lessonsView) capturing() bool {
	return v.practice != nil
}

func (v *lessonsView) update(msg tea.KeyMsg) tea.Cmd {
	if v.practice != nil {
		if msg.Type == tea.KeyEsc {
			v.leave()
			return nil
		}
		return v.practice.update(msg)
	}
	switch msg.String() {
	case "up", "k":
		v.cursor = max(0, v.cursor-1)
		v.message = ""
	case "down", "j":
		v.cursor = min(len(v.lessons)-1, v.cursor+1)
		v.message = ""
	case "enter", " ":
		v.start(v.lessons[v.cursor])
	}
	return nil
}

func (v *lessonsView) start(l corpus.Lesson) {
	if !corpus.Unlocked(l.ID, v.completed()) {
		v.message = fmt.Sprintf("Complete lesson %d to unlock %q.", l.ID-1, l.Title)
		return
	}
	m, err := session.New(corpus.Fixed(l.Text), LessonDuration, session.Options{
		CompleteOnMatch: true,
		Clock:           v.clock,
		OnFinish:        v.onFinish,
	})
	if err != nil {
		v.log.Error("failed to start lesson", "lesson_id", l.ID, "err", err)
		v.message = "Could not start this lesson."
		return
	}
	v.current = l
	v.practice = newTypingView(v.styles, v.settings, m, fmt.Sprintf("Lesson %d: %s", l.ID, l.Title))
	v.practice.fixedLimit = true
	v.message = ""
}

// leave drops any practice session and returns to the list.
func (v *lessonsView) leave() {
	if v.practice != nil {
		v.practice.machine.Reset()
		v.practice = nil
	}
}

func (v *lessonsView) view(width, height int) string {
	if v.practice != nil {
		return v.practice.view(width, height)
	}
	done := v.completed()
	lines := []string{
		v.styles.Title.Render("Typing Lessons"),
		v.styles.Muted.Render(fmt.Sprintf("%d of %d completed. Finish a lesson to unlock the next one.", len(done), len(v.lessons))),
		"",
	}
	for i, l := range v.lessons {
		marker := "  "
		if i == v.cursor {
			marker = v.styles.Highlight.Render("> ")
		}
		status := v.styles.Text.Render("open")
		switch {
		case done[l.ID]:
			p := v.progress[l.ID]
			status = v.styles.Success.Render(fmt.Sprintf("done  %d WPM  %d%%", p.BestWPM, p.BestAccuracy))
		case !corpus.Unlocked(l.ID, done):
			status = v.styles.Muted.Render("locked")
		}
		title := fmt.Sprintf("%d. %-22s %-13s", l.ID, l.Title, l.Level)
		if i == v.cursor {
			title = v.styles.Highlight.Render(title)
		} else {
			title = v.styles.Text.Render(title)
		}
		lines = append(lines, marker+title+" "+status)
	}
	sel := v.lessons[v.cursor]
	lines = append(lines,
		"",
		v.styles.Text.Render(sel.Description),
		v.styles.Muted.Render("Keys: "+sel.Keys),
	)
	if v.message != "" {
		lines = append(lines, "", v.styles.Error.Render(v.message))
	}
	lines = append(lines, "", v.styles.Footer.Render("up/down: select  ·  enter: practice  ·  esc: back"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}
