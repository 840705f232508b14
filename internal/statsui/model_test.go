package statsui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "typemaster.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func seed(t *testing.T, st *store.Store, n int) {
	t.Helper()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		rec := model.SessionRecord{
			AttemptID:       fmt.Sprintf("a%d", i),
			Mode:            model.ModeTest,
			StartedAt:       base.Add(time.Duration(i) * time.Hour),
			EndedAt:         base.Add(time.Duration(i)*time.Hour + time.Minute),
			DurationSeconds: 60,
			Reason:          "expired",
			WPM:             30 + i*5,
			Accuracy:        90 + i,
			Correct:         100,
			Total:           105,
			Errors:          5,
			ElapsedMs:       60000,
		}
		chars := []model.CharStats{{Char: "a", Correct: 9, Incorrect: 1}, {Char: "q", Correct: 1, Incorrect: 3}}
		if _, err := st.InsertSession(context.Background(), rec, chars); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
}

func TestOverviewShowsSummary(t *testing.T) {
	st := openStore(t)
	seed(t, st, 3)
	m := NewModel(st, model.StatsConfig{CurveWindow: 1}, nil)
	m.SetSize(100, 30)

	if got := len(m.Report().Sessions); got != 3 {
		t.Fatalf("expected 3 sessions in report, got %d", got)
	}
	view := m.View()
	for _, want := range []string{"Avg WPM", "35", "Best WPM", "40", "Learning Curves"} {
		if !strings.Contains(view, want) {
			t.Fatalf("overview missing %q:\n%s", want, view)
		}
	}
}

func TestEmptyHistory(t *testing.T) {
	m := NewModel(openStore(t), model.StatsConfig{}, nil)
	m.SetSize(80, 20)
	if !strings.Contains(m.View(), "No sessions found") {
		t.Fatalf("expected empty message, got:\n%s", m.View())
	}
}

func TestTabsAndWeakChars(t *testing.T) {
	st := openStore(t)
	seed(t, st, 2)
	m := NewModel(st, model.StatsConfig{CurveWindow: 5}, nil)
	m.SetSize(100, 30)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabRecent {
		t.Fatalf("expected recent tab, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	view := m.View()
	if !strings.Contains(view, "Focus on: q a") {
		t.Fatalf("expected weak chars header, got:\n%s", view)
	}
	if !strings.Contains(view, "Most typed: a q") {
		t.Fatalf("expected most typed chars, got:\n%s", view)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabOverview {
		t.Fatalf("expected wrap to overview, got %d", m.activeTab)
	}
}

func TestFilterValidation(t *testing.T) {
	m := NewModel(openStore(t), model.StatsConfig{CurveWindow: 3}, nil)
	m.SetSize(80, 20)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !m.Capturing() {
		t.Fatalf("expected filter mode")
	}
	m.filterInputs[0].SetValue("race")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterError == "" || !m.filterMode {
		t.Fatalf("expected mode validation error")
	}

	m.filterInputs[0].SetValue("lesson")
	m.filterInputs[2].SetValue("4")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("expected filter to apply: %s", m.filterError)
	}
	if m.cfg.Mode != model.ModeLesson || m.cfg.Last != 4 || m.cfg.CurveWindow != 3 {
		t.Fatalf("unexpected config: %+v", m.cfg)
	}
}

func TestMostTyped(t *testing.T) {
	got := mostTyped([]model.CharAggregate{
		{Char: "e", Correct: 3},
		{Char: " ", Correct: 9, Incorrect: 1},
		{Char: "t", Correct: 2, Incorrect: 2},
		{Char: "z", Correct: 1},
	})
	if got != "<space> t e z" {
		t.Fatalf("unexpected most typed: %q", got)
	}
	if got := mostTyped(nil); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestQuitOnlyWhenStandalone(t *testing.T) {
	m := NewModel(openStore(t), model.StatsConfig{}, nil)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd != nil {
		t.Fatalf("embedded dashboard should not quit")
	}
	m.Standalone = true
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestCurveWindowSteps(t *testing.T) {
	cases := []struct{ in, next, prev int }{
		{1, 5, 1},
		{5, 10, 1},
		{7, 10, 5},
		{10, 15, 5},
	}
	for _, tc := range cases {
		if got := nextCurveWindow(tc.in); got != tc.next {
			t.Fatalf("next(%d) = %d, want %d", tc.in, got, tc.next)
		}
		if got := prevCurveWindow(tc.in); got != tc.prev {
			t.Fatalf("prev(%d) = %d, want %d", tc.in, got, tc.prev)
		}
	}
}
