package stats

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "typemaster.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		rec := model.SessionRecord{
			AttemptID:       fmt.Sprintf("attempt-%d", i),
			Mode:            model.ModeTest,
			StartedAt:       start,
			EndedAt:         end,
			DurationSeconds: 30,
			Reason:          "expired",
			WPM:             30 + i,
			Accuracy:        90,
			Correct:         10,
			Total:           11,
			Errors:          1,
			ElapsedMs:       end.Sub(start).Milliseconds(),
		}
		charStats := []model.CharStats{
			{Char: "a", Correct: 5, Incorrect: 0},
			{Char: "b", Correct: 4, Incorrect: 1},
		}
		id, err := st.InsertSession(ctx, rec, charStats)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}
	if err := st.MarkLessonComplete(ctx, 1, 20, 95, time.Unix(0, 0)); err != nil {
		t.Fatalf("mark lesson: %v", err)
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2, CurveWindow: 1})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 1 || report.WindowSessionIDs[0] != ids[2] {
		t.Fatalf("unexpected window ids: %v", report.WindowSessionIDs)
	}
	if len(report.CharAggsAll) == 0 || len(report.CharAggsWindow) == 0 {
		t.Fatalf("expected char aggregates")
	}
	if len(report.Lessons) != 1 {
		t.Fatalf("expected lesson progress, got %v", report.Lessons)
	}
	recent := report.Recent(5)
	if len(recent) != 2 || recent[0].SessionID != ids[2] {
		t.Fatalf("unexpected recent order: %+v", recent)
	}
}
