package tui

import (
	"context"

	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/session"
)

// sessionRecord maps a finished session onto its stored form.
func sessionRecord(mode string, lessonID int, res session.Result) (model.SessionRecord, []model.CharStats) {
	rec := model.SessionRecord{
		AttemptID:       res.ID,
		Mode:            mode,
		LessonID:        lessonID,
		StartedAt:       res.StartedAt,
		EndedAt:         res.EndedAt,
		DurationSeconds: res.DurationSeconds,
		Reason:          string(res.Reason),
		WPM:             res.Final.WPM,
		Accuracy:        res.Final.Accuracy,
		Errors:          res.Final.Errors,
		Correct:         res.Final.Correct,
		Total:           res.Final.Total,
		ElapsedMs:       int64(res.Final.ElapsedSeconds * 1000),
	}
	chars := make([]model.CharStats, 0, len(res.Chars))
	for _, c := range res.Chars {
		chars = append(chars, model.CharStats{
			Char:      string(c.Char),
			Correct:   c.Correct,
			Incorrect: c.Incorrect,
		})
	}
	return rec, chars
}

// recorder returns the OnFinish hook persisting sessions of one mode.
// Failures are logged and surfaced on the results screen.
func (a *App) recorder(mode string, lessonID func() int) func(session.Result) {
	return func(res session.Result) {
		id := 0
		if lessonID != nil {
			id = lessonID()
		}
		rec, chars := sessionRecord(mode, id, res)
		ctx := context.Background()
		log := a.log.With("attempt_id", res.ID, "mode", mode)
		if _, err := a.store.InsertSession(ctx, rec, chars); err != nil {
			log.Error("failed to save session", "err", err)
			a.setNotice("Could not save this result.")
			return
		}
		log.Info("session saved",
			"reason", rec.Reason,
			"wpm", rec.WPM,
			"accuracy", rec.Accuracy,
			"elapsed_ms", rec.ElapsedMs,
		)
		if mode != model.ModeLesson || res.Reason != session.ReasonCompleted {
			return
		}
		if err := a.store.MarkLessonComplete(ctx, id, rec.WPM, rec.Accuracy, res.EndedAt); err != nil {
			log.Error("failed to mark lesson complete", "lesson_id", id, "err", err)
			a.setNotice("Could not save lesson progress.")
			return
		}
		log.Info("lesson completed", "lesson_id", id)
		a.lessons.reloadProgress()
	}
}

func (a *App) setNotice(msg string) {
	switch a.section {
	case SectionTest:
		a.test.notice = msg
	case SectionLessons:
		if a.lessons.practice != nil {
			a.lessons.practice.notice = msg
		}
	}
}
