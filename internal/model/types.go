// Package model defines shared data structures.
package model

import "time"

// Corpus kinds for the typing test.
const (
	CorpusQuotes = "quotes"
	CorpusWords  = "words"
)

// Session modes.
const (
	ModeTest   = "test"
	ModeLesson = "lesson"
)

// Config defines typing test settings.
type Config struct {
	Duration        int
	CompleteOnMatch bool
	Corpus          string
	Words           int
	CapsPct         float64
	PunctPct        float64
	PunctSet        string
	WordListPath    string
	FocusWeak       bool
	WeakTop         int
	WeakFactor      float64
	WeakWindow      int
}

// StatsConfig defines filters for history queries.
type StatsConfig struct {
	Mode        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionRecord captures a finished typing session.
type SessionRecord struct {
	AttemptID       string
	Mode            string
	LessonID        int
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	Reason          string
	WPM             int
	Accuracy        int
	Errors          int
	Correct         int
	Total           int
	ElapsedMs       int64
}

// CharStats stores per-character results for a session.
type CharStats struct {
	Char      string
	Correct   int
	Incorrect int
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char      string
	Correct   int
	Incorrect int
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID       int64     `json:"id" yaml:"id"`
	AttemptID       string    `json:"attempt_id" yaml:"attempt_id"`
	Mode            string    `json:"mode" yaml:"mode"`
	LessonID        int       `json:"lesson_id,omitempty" yaml:"lesson_id,omitempty"`
	EndedAt         time.Time `json:"ended_at" yaml:"ended_at"`
	DurationSeconds int       `json:"duration_seconds" yaml:"duration_seconds"`
	Reason          string    `json:"reason" yaml:"reason"`
	WPM             int       `json:"wpm" yaml:"wpm"`
	Accuracy        int       `json:"accuracy" yaml:"accuracy"`
	Errors          int       `json:"errors" yaml:"errors"`
	Correct         int       `json:"correct" yaml:"correct"`
	Total           int       `json:"total" yaml:"total"`
	ElapsedMs       int64     `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// LessonProgress records a completed lesson.
type LessonProgress struct {
	LessonID     int
	CompletedAt  time.Time
	BestWPM      int
	BestAccuracy int
}

// Settings are user preferences shared across views.
type Settings struct {
	DarkMode   bool
	FontSize   int
	FontFamily string
	Username   string
}
