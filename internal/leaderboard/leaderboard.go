// Package leaderboard ranks the local typist against a fixed field.
package leaderboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"
)

// Period narrows which local sessions count.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	AllTime Period = "all-time"
)

// Periods lists filters in display order.
var Periods = []Period{Daily, Weekly, Monthly, AllTime}

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == strings.ToLower(strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Since returns the earliest time included by the period. The zero time
// means no bound.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case Daily:
		return now.Add(-24 * time.Hour)
	case Weekly:
		return now.AddDate(0, 0, -7)
	case Monthly:
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

// Entry is one leaderboard row.
type Entry struct {
	Rank           int
	Username       string
	WPM            int
	Accuracy       int
	TestsCompleted int
	Local          bool
}

// Seed is the fixed field of typists.
var Seed = []Entry{
	{Username: "SpeedTyper", WPM: 85, Accuracy: 98, TestsCompleted: 150},
	{Username: "KeyboardMaster", WPM: 82, Accuracy: 97, TestsCompleted: 200},
	{Username: "TypeNinja", WPM: 78, Accuracy: 96, TestsCompleted: 120},
	{Username: "QuickFingers", WPM: 75, Accuracy: 95, TestsCompleted: 180},
	{Username: "TypingPro", WPM: 72, Accuracy: 94, TestsCompleted: 160},
	{Username: "FastTypist", WPM: 68, Accuracy: 93, TestsCompleted: 140},
	{Username: "SpeedDemon", WPM: 65, Accuracy: 92, TestsCompleted: 110},
	{Username: "KeyStroke", WPM: 62, Accuracy: 91, TestsCompleted: 130},
	{Username: "TypeKing", WPM: 58, Accuracy: 90, TestsCompleted: 100},
	{Username: "FingerFlash", WPM: 55, Accuracy: 89, TestsCompleted: 90},
}

// DefaultUsername labels the local row when no name is set.
const DefaultUsername = "You"

// Build ranks the seed together with the local best inside the period.
// The local row is omitted when no session falls inside it.
func Build(sessions []model.SessionAggregate, username string, period Period, now time.Time) []Entry {
	entries := make([]Entry, len(Seed), len(Seed)+1)
	copy(entries, Seed)

	if local, ok := localBest(sessions, period.Since(now)); ok {
		local.Username = strings.TrimSpace(username)
		if local.Username == "" {
			local.Username = DefaultUsername
		}
		entries = append(entries, local)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.WPM != b.WPM {
			return a.WPM > b.WPM
		}
		if a.Accuracy != b.Accuracy {
			return a.Accuracy > b.Accuracy
		}
		return a.Username < b.Username
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func localBest(sessions []model.SessionAggregate, since time.Time) (Entry, bool) {
	best := Entry{Local: true}
	found := false
	for _, s := range sessions {
		if !since.IsZero() && s.EndedAt.Before(since) {
			continue
		}
		best.TestsCompleted++
		if !found || s.WPM > best.WPM || (s.WPM == best.WPM && s.Accuracy > best.Accuracy) {
			best.WPM = s.WPM
			best.Accuracy = s.Accuracy
		}
		found = true
	}
	return best, found
}
