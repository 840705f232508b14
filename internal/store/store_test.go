package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typemaster/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "typemaster.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func testRecord(id string, mode string, endedAt time.Time, wpm int) model.SessionRecord {
	return model.SessionRecord{
		AttemptID:       id,
		Mode:            mode,
		StartedAt:       endedAt.Add(-30 * time.Second),
		EndedAt:         endedAt,
		DurationSeconds: 30,
		Reason:          "expired",
		WPM:             wpm,
		Accuracy:        95,
		Errors:          2,
		Correct:         40,
		Total:           42,
		ElapsedMs:       30000,
	}
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, mode := range []string{model.ModeTest, model.ModeLesson, model.ModeTest} {
		rec := testRecord(string(rune('a'+i)), mode, base.Add(time.Duration(i)*time.Hour), 30+i)
		_, err := st.InsertSession(ctx, rec, []model.CharStats{{Char: "a", Correct: 3, Incorrect: 1}})
		require.NoError(t, err)
	}

	all, err := st.ListSessions(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 30, all[0].WPM)
	assert.Equal(t, 32, all[2].WPM)
	assert.True(t, all[2].EndedAt.Equal(base.Add(2*time.Hour)))

	tests, err := st.ListSessions(ctx, model.StatsConfig{Mode: model.ModeTest})
	require.NoError(t, err)
	assert.Len(t, tests, 2)

	since := base.Add(90 * time.Minute)
	recent, err := st.ListSessions(ctx, model.StatsConfig{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "c", recent[0].AttemptID)

	last, err := st.ListSessions(ctx, model.StatsConfig{Last: 2})
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].AttemptID)
}

func TestSessionsOrderBySubsecondEndTime(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	whole := time.Date(2024, 1, 1, 12, 0, 5, 0, time.UTC)
	half := whole.Add(500 * time.Millisecond)

	_, err := st.InsertSession(ctx, testRecord("b", model.ModeTest, half, 40), nil)
	require.NoError(t, err)
	_, err = st.InsertSession(ctx, testRecord("a", model.ModeTest, whole, 40), nil)
	require.NoError(t, err)

	all, err := st.ListSessions(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].AttemptID)
	assert.True(t, all[0].EndedAt.Equal(whole))
	assert.Equal(t, "b", all[1].AttemptID)
	assert.True(t, all[1].EndedAt.Equal(half))

	since := whole.Add(100 * time.Millisecond)
	recent, err := st.ListSessions(ctx, model.StatsConfig{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "b", recent[0].AttemptID)
}

func TestInsertSessionRejectsDuplicateAttempt(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	rec := testRecord("same", model.ModeTest, time.Now(), 40)
	_, err := st.InsertSession(ctx, rec, nil)
	require.NoError(t, err)
	_, err = st.InsertSession(ctx, rec, nil)
	assert.Error(t, err)

	all, err := st.ListSessions(ctx, model.StatsConfig{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCharAggregates(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := st.InsertSession(ctx, testRecord(string(rune('a'+i)), model.ModeTest, base.Add(time.Duration(i)*time.Minute), 40),
			[]model.CharStats{
				{Char: "a", Correct: 5, Incorrect: 0},
				{Char: "b", Correct: 4, Incorrect: 1},
			})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	aggs, err := st.ListCharAggregatesForSessions(ctx, ids[:2])
	require.NoError(t, err)
	byChar := map[string]model.CharAggregate{}
	for _, agg := range aggs {
		byChar[agg.Char] = agg
	}
	assert.Equal(t, 10, byChar["a"].Correct)
	assert.Equal(t, 2, byChar["b"].Incorrect)

	weak, err := st.GetWeakChars(ctx, 1)
	require.NoError(t, err)
	require.Len(t, weak, 2)

	none, err := st.GetWeakChars(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestLessonProgressKeepsBest(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.MarkLessonComplete(ctx, 1, 20, 97, now))
	require.NoError(t, st.MarkLessonComplete(ctx, 1, 25, 90, now.Add(time.Hour)))
	require.NoError(t, st.MarkLessonComplete(ctx, 2, 18, 100, now))

	progress, err := st.ListLessonProgress(ctx)
	require.NoError(t, err)
	require.Len(t, progress, 2)
	assert.Equal(t, 25, progress[1].BestWPM)
	assert.Equal(t, 97, progress[1].BestAccuracy)
	assert.True(t, progress[1].CompletedAt.Equal(now))
}

func TestSettingsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, ok, err := st.GetSetting(ctx, "fontSize")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.SetSetting(ctx, "fontSize", "16"))
	require.NoError(t, st.SetSetting(ctx, "fontSize", "18"))
	require.NoError(t, st.SetSetting(ctx, "isDarkMode", "true"))

	value, ok, err := st.GetSetting(ctx, "fontSize")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "18", value)

	all, err := st.ListSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"fontSize": "18", "isDarkMode": "true"}, all)
}
