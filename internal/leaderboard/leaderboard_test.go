package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typemaster/internal/model"
)

func TestBuildSeedOnly(t *testing.T) {
	entries := Build(nil, "ada", AllTime, time.Now())
	require.Len(t, entries, len(Seed))
	assert.Equal(t, "SpeedTyper", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 10, entries[9].Rank)
	for _, e := range entries {
		assert.False(t, e.Local)
	}
}

func TestBuildRanksLocalBest(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []model.SessionAggregate{
		{WPM: 70, Accuracy: 90, EndedAt: now.Add(-2 * time.Hour)},
		{WPM: 80, Accuracy: 99, EndedAt: now.AddDate(0, 0, -10)},
	}

	all := Build(sessions, "", AllTime, now)
	require.Len(t, all, 11)
	local := findLocal(t, all)
	assert.Equal(t, DefaultUsername, local.Username)
	assert.Equal(t, 80, local.WPM)
	assert.Equal(t, 2, local.TestsCompleted)
	assert.Equal(t, 3, local.Rank)

	daily := Build(sessions, "ada", Daily, now)
	local = findLocal(t, daily)
	assert.Equal(t, "ada", local.Username)
	assert.Equal(t, 70, local.WPM)
	assert.Equal(t, 1, local.TestsCompleted)
	assert.Equal(t, 6, local.Rank)
}

func TestBuildDropsLocalOutsidePeriod(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []model.SessionAggregate{{WPM: 99, Accuracy: 100, EndedAt: now.AddDate(0, -2, 0)}}
	assert.Len(t, Build(sessions, "ada", Monthly, now), len(Seed))
	assert.Len(t, Build(sessions, "ada", AllTime, now), len(Seed)+1)
}

func TestBuildTieBreaksOnAccuracy(t *testing.T) {
	now := time.Now()
	entries := Build([]model.SessionAggregate{{WPM: 85, Accuracy: 99, EndedAt: now}}, "ada", AllTime, now)
	assert.Equal(t, "ada", entries[0].Username)
	assert.Equal(t, "SpeedTyper", entries[1].Username)
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod(" Weekly ")
	require.NoError(t, err)
	assert.Equal(t, Weekly, p)
	_, err = ParsePeriod("yearly")
	assert.Error(t, err)
}

func findLocal(t *testing.T, entries []Entry) Entry {
	t.Helper()
	for _, e := range entries {
		if e.Local {
			return e
		}
	}
	t.Fatalf("no local entry in %+v", entries)
	return Entry{}
}
