// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

const defaultSparkWidth = 60

// Summary holds the headline figures of the dashboard.
type Summary struct {
	TestsCompleted   int
	AverageWPM       int
	BestWPM          int
	AverageAccuracy  int
	PracticeTime     time.Duration
	LessonsCompleted int
}

// Summarize computes dashboard figures. Averages are rounded half away
// from zero.
func Summarize(sessions []model.SessionAggregate, lessonsCompleted int) Summary {
	sum := Summary{TestsCompleted: len(sessions), LessonsCompleted: lessonsCompleted}
	if len(sessions) == 0 {
		return sum
	}
	var wpm, acc int
	var elapsedMs int64
	for _, s := range sessions {
		wpm += s.WPM
		acc += s.Accuracy
		elapsedMs += s.ElapsedMs
		if s.WPM > sum.BestWPM {
			sum.BestWPM = s.WPM
		}
	}
	n := float64(len(sessions))
	sum.AverageWPM = int(math.Round(float64(wpm) / n))
	sum.AverageAccuracy = int(math.Round(float64(acc) / n))
	sum.PracticeTime = time.Duration(elapsedMs) * time.Millisecond
	return sum
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders values as a single line of block characters. Only the
// last width values are drawn when width is positive.
func Sparkline(values []float64, width int) string {
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkRunes[len(sparkRunes)/2]), len(values))
	}
	var b strings.Builder
	top := float64(len(sparkRunes) - 1)
	for _, v := range values {
		idx := int(math.Round((v - minVal) / (maxVal - minVal) * top))
		b.WriteRune(sparkRunes[max(0, min(idx, len(sparkRunes)-1))])
	}
	return b.String()
}

// Series extracts WPM and accuracy series in session order.
func Series(sessions []model.SessionAggregate) (wpm, accuracy []float64) {
	wpm = make([]float64, len(sessions))
	accuracy = make([]float64, len(sessions))
	for i, s := range sessions {
		wpm[i] = float64(s.WPM)
		accuracy[i] = float64(s.Accuracy)
	}
	return wpm, accuracy
}

// FormatPracticeTime renders a duration as "2h 5m" or "7m".
func FormatPracticeTime(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// RenderSummary prints the summary and learning curves for a report.
// Sparklines fit within width columns; width <= 0 uses the default.
func RenderSummary(w io.Writer, report Report, window, width int) error {
	if len(report.Sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	sum := Summarize(report.Sessions, len(report.Lessons))
	wpms, accs := Series(report.Sessions)
	spark := defaultSparkWidth
	if width > 0 {
		spark = max(10, min(defaultSparkWidth, width-9))
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Tests completed: %d", sum.TestsCompleted),
		fmt.Sprintf("Avg WPM: %d", sum.AverageWPM),
		fmt.Sprintf("Best WPM: %d", sum.BestWPM),
		fmt.Sprintf("Avg Accuracy: %d%%", sum.AverageAccuracy),
		fmt.Sprintf("Practice time: %s", FormatPracticeTime(sum.PracticeTime)),
		fmt.Sprintf("Lessons completed: %d", sum.LessonsCompleted),
		"",
		fmt.Sprintf("WPM      %s", Sparkline(MovingAverage(wpms, window), spark)),
		fmt.Sprintf("Accuracy %s", Sparkline(MovingAverage(accs, window), spark)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// CharRow is one line of the per-character table.
type CharRow struct {
	Char      string
	Accuracy  float64
	Correct   int
	Incorrect int
}

// CharRows sorts aggregates by lowest accuracy first.
func CharRows(aggs []model.CharAggregate) []CharRow {
	rows := make([]CharRow, 0, len(aggs))
	for _, agg := range aggs {
		label := agg.Char
		if label == " " {
			label = "<space>"
		}
		rows = append(rows, CharRow{
			Char:      label,
			Accuracy:  accuracy(agg),
			Correct:   agg.Correct,
			Incorrect: agg.Incorrect,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Accuracy == rows[j].Accuracy {
			return rows[i].Char < rows[j].Char
		}
		return rows[i].Accuracy < rows[j].Accuracy
	})
	return rows
}

// RenderCharTable prints per-character aggregates.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Character (Windowed)"); err != nil {
		return err
	}
	tbl := newTextTable(
		column{title: "Char"},
		column{title: "Accuracy", right: true},
		column{title: "Correct", right: true},
		column{title: "Incorrect", right: true},
	)
	for _, r := range CharRows(aggs) {
		tbl.add(
			r.Char,
			fmt.Sprintf("%.2f%%", r.Accuracy*100),
			strconv.Itoa(r.Correct),
			strconv.Itoa(r.Incorrect),
		)
	}
	if err := tbl.write(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
