package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typemaster/internal/corpus"
	"github.com/verte-zerg/typemaster/internal/model"
)

func newLessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List lessons and completion progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore(st)

			progress, err := st.ListLessonProgress(context.Background())
			if err != nil {
				return err
			}
			return renderLessons(cmd.OutOrStdout(), corpus.Lessons(), progress)
		},
	}
}

func renderLessons(w io.Writer, lessons []corpus.Lesson, progress map[int]model.LessonProgress) error {
	completed := make(map[int]bool, len(progress))
	for id := range progress {
		completed[id] = true
	}
	for _, lesson := range lessons {
		status := "locked"
		switch {
		case completed[lesson.ID]:
			p := progress[lesson.ID]
			status = fmt.Sprintf("done  %d wpm  %d%%", p.BestWPM, p.BestAccuracy)
		case corpus.Unlocked(lesson.ID, completed):
			status = "open"
		}
		if _, err := fmt.Fprintf(w, "%2d. %-24s %-12s %s\n", lesson.ID, lesson.Title, lesson.Level, status); err != nil {
			return err
		}
	}
	return nil
}
