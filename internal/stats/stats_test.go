package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
)

func TestSummarize(t *testing.T) {
	sessions := []model.SessionAggregate{
		{WPM: 30, Accuracy: 90, ElapsedMs: 60000},
		{WPM: 45, Accuracy: 95, ElapsedMs: 30000},
	}
	sum := Summarize(sessions, 3)
	if sum.TestsCompleted != 2 || sum.BestWPM != 45 || sum.LessonsCompleted != 3 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	// 37.5 and 92.5 round away from zero.
	if sum.AverageWPM != 38 || sum.AverageAccuracy != 93 {
		t.Fatalf("unexpected averages: %+v", sum)
	}
	if sum.PracticeTime != 90*time.Second {
		t.Fatalf("unexpected practice time: %v", sum.PracticeTime)
	}
	if empty := Summarize(nil, 0); empty.AverageWPM != 0 || empty.TestsCompleted != 0 {
		t.Fatalf("unexpected empty summary: %+v", empty)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	same := MovingAverage([]float64{1, 5}, 1)
	if same[0] != 1 || same[1] != 5 {
		t.Fatalf("window 1 should copy values, got %v", same)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 7}, 0); got != "▁█" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}, 0); got != "▅▅▅" {
		t.Fatalf("flat series should use the middle block, got %q", got)
	}
	if got := Sparkline([]float64{1, 2, 3, 4}, 2); len([]rune(got)) != 2 {
		t.Fatalf("expected width 2, got %q", got)
	}
	if Sparkline(nil, 10) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestFormatPracticeTime(t *testing.T) {
	if got := FormatPracticeTime(125 * time.Minute); got != "2h 5m" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatPracticeTime(7 * time.Minute); got != "7m" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Report{}, 3, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}

	buf.Reset()
	report := Report{
		Sessions: []model.SessionAggregate{{WPM: 40, Accuracy: 96, ElapsedMs: 60000}},
		Lessons:  map[int]model.LessonProgress{1: {LessonID: 1}},
	}
	if err := RenderSummary(&buf, report, 3, 40); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Tests completed: 1", "Best WPM: 40", "Avg Accuracy: 96%", "Lessons completed: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestRenderCharTable(t *testing.T) {
	var buf bytes.Buffer
	err := RenderCharTable(&buf, []model.CharAggregate{
		{Char: "a", Correct: 9, Incorrect: 1},
		{Char: " ", Correct: 1, Incorrect: 1},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected title, header, rule and 2 rows, got %q", lines)
	}
	if !strings.HasPrefix(lines[3], "<space>") {
		t.Fatalf("lowest accuracy should come first, got %q", lines[2])
	}
}

func TestSpeedLevelAndFeedback(t *testing.T) {
	cases := []struct {
		wpm, acc int
		level    string
		feedback string
	}{
		{60, 95, LevelExpert, "Excellent! You're a typing master!"},
		{60, 94, LevelExpert, "Great job! Keep up the good work!"},
		{40, 90, LevelAdvanced, "Great job! Keep up the good work!"},
		{25, 85, LevelIntermediate, "Good progress! Practice makes perfect!"},
		{24, 100, LevelBeginner, "Keep practicing to improve your speed and accuracy!"},
	}
	for _, tc := range cases {
		if got := SpeedLevel(tc.wpm); got != tc.level {
			t.Fatalf("SpeedLevel(%d) = %q, want %q", tc.wpm, got, tc.level)
		}
		if got := Feedback(tc.wpm, tc.acc); got != tc.feedback {
			t.Fatalf("Feedback(%d, %d) = %q, want %q", tc.wpm, tc.acc, got, tc.feedback)
		}
	}
}
