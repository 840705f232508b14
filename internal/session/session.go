// Package session drives the lifecycle of one timed typing attempt.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typemaster/internal/metrics"
)

// State is the lifecycle position of a Machine.
type State int

const (
	// Idle waits for the first keystroke or an explicit start.
	Idle State = iota
	// Running accepts input and counts down.
	Running
	// Finished holds frozen final metrics until reset.
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Reason records why a session finished.
type Reason string

const (
	ReasonExpired   Reason = "expired"
	ReasonCompleted Reason = "completed"
	ReasonStopped   Reason = "stopped"
)

var (
	// ErrInvalidDuration is returned for non-positive durations.
	ErrInvalidDuration = errors.New("duration must be positive")
	// ErrNotIdle is returned when configuring a session that already started.
	ErrNotIdle = errors.New("session is not idle")
)

// Source supplies reference texts.
type Source interface {
	Next() string
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Timer identifies one armed countdown. Ticks carrying any other Timer are
// ignored, which is how a countdown is cancelled.
type Timer struct {
	id uint64
}

// Valid reports whether t was ever armed.
func (t Timer) Valid() bool {
	return t.id != 0
}

// Result is handed to Options.OnFinish once per finished session.
type Result struct {
	ID              string
	Reference       string
	Typed           string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	Reason          Reason
	Final           metrics.Final
	Chars           []metrics.CharCount
}

// Options tunes a Machine.
type Options struct {
	// CompleteOnMatch finishes the session as soon as the typed text equals
	// the reference.
	CompleteOnMatch bool
	Clock           Clock
	OnFinish        func(Result)
}

// Machine owns the state, the countdown and the typed input of one session
// at a time. It is not safe for concurrent use; hosts serialize calls on
// their event loop.
type Machine struct {
	source          Source
	clock           Clock
	completeOnMatch bool
	onFinish        func(Result)

	state     State
	duration  int
	remaining int
	reference []rune
	typed     []rune

	startedAt time.Time
	endedAt   time.Time
	timerSeq  uint64
	timer     Timer

	final  metrics.Final
	result Result
}

// New builds an idle machine with a reference drawn from source.
func New(source Source, durationSeconds int, opts Options) (*Machine, error) {
	if durationSeconds <= 0 {
		return nil, ErrInvalidDuration
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock
	}
	m := &Machine{
		source:          source,
		clock:           clock,
		completeOnMatch: opts.CompleteOnMatch,
		onFinish:        opts.OnFinish,
		duration:        durationSeconds,
	}
	m.Reset()
	return m, nil
}

// Configure changes the countdown length. Only idle sessions accept it.
func (m *Machine) Configure(durationSeconds int) error {
	if m.state != Idle {
		return ErrNotIdle
	}
	if durationSeconds <= 0 {
		return ErrInvalidDuration
	}
	m.duration = durationSeconds
	m.remaining = durationSeconds
	return nil
}

// BeginIfNeeded moves an idle session to Running and arms a countdown. The
// returned Timer must accompany every Tick. It reports false when the
// session was not idle.
func (m *Machine) BeginIfNeeded() (Timer, bool) {
	if m.state != Idle {
		return Timer{}, false
	}
	m.state = Running
	m.startedAt = m.clock.Now()
	m.timerSeq++
	m.timer = Timer{id: m.timerSeq}
	return m.timer, true
}

// Start is the explicit start action.
func (m *Machine) Start() (Timer, bool) {
	return m.BeginIfNeeded()
}

// Tick consumes one second of the countdown. It reports whether the
// countdown is still armed afterwards, i.e. whether another tick should be
// scheduled.
func (m *Machine) Tick(t Timer) bool {
	if m.state != Running || !t.Valid() || t != m.timer {
		return false
	}
	if m.remaining > 0 {
		m.remaining--
	}
	if m.remaining == 0 {
		m.finish(ReasonExpired)
		return false
	}
	return true
}

// AcceptInput replaces the typed text. Input past the end of the reference
// is dropped.
func (m *Machine) AcceptInput(typed string) {
	if m.state != Running {
		return
	}
	runes := []rune(typed)
	if len(runes) > len(m.reference) {
		runes = runes[:len(m.reference)]
	}
	m.typed = runes
	if m.completeOnMatch && len(m.typed) == len(m.reference) && string(m.typed) == string(m.reference) {
		m.finish(ReasonCompleted)
	}
}

// Finish stops a running session early.
func (m *Machine) Finish() {
	if m.state != Running {
		return
	}
	m.finish(ReasonStopped)
}

// Reset returns to Idle with a freshly drawn reference text.
func (m *Machine) Reset() {
	text := ""
	if m.source != nil {
		text = m.source.Next()
	}
	m.ResetWith(text)
}

// ResetWith returns to Idle with the given reference text.
func (m *Machine) ResetWith(reference string) {
	m.state = Idle
	m.reference = []rune(reference)
	m.typed = nil
	m.remaining = m.duration
	m.startedAt = time.Time{}
	m.endedAt = time.Time{}
	m.timer = Timer{}
	m.final = metrics.Final{}
	m.result = Result{}
}

// minLiveElapsed is how long a session runs before live WPM is shown.
const minLiveElapsed = 1.0

// Live reports metrics for the current observation point. After the session
// finishes it mirrors the frozen final metrics.
func (m *Machine) Live() metrics.Live {
	if m.state == Finished {
		return metrics.Live{Snapshot: m.final.Snapshot}
	}
	elapsed := m.elapsedSeconds()
	snap := metrics.ComputeRunes(m.reference, m.typed, elapsed)
	if elapsed < minLiveElapsed {
		snap.WPM = 0
	}
	return metrics.Live{Snapshot: snap, RemainingSeconds: m.remaining}
}

// Final returns the frozen metrics once the session finished.
func (m *Machine) Final() (metrics.Final, bool) {
	if m.state != Finished {
		return metrics.Final{}, false
	}
	return m.final, true
}

// Result returns the finished session record.
func (m *Machine) Result() (Result, bool) {
	if m.state != Finished {
		return Result{}, false
	}
	return m.result, true
}

// State returns the lifecycle state.
func (m *Machine) State() State { return m.state }

// Reference returns the text being typed.
func (m *Machine) Reference() string { return string(m.reference) }

// ReferenceRunes returns the reference as runes. Callers must not modify it.
func (m *Machine) ReferenceRunes() []rune { return m.reference }

// Typed returns the accepted input.
func (m *Machine) Typed() string { return string(m.typed) }

// TypedRunes returns the accepted input as runes. Callers must not modify it.
func (m *Machine) TypedRunes() []rune { return m.typed }

// Duration returns the configured countdown length in seconds.
func (m *Machine) Duration() int { return m.duration }

// Remaining returns the seconds left on the countdown.
func (m *Machine) Remaining() int { return m.remaining }

// Timer returns the armed countdown, if any.
func (m *Machine) Timer() (Timer, bool) {
	return m.timer, m.timer.Valid()
}

func (m *Machine) elapsedSeconds() float64 {
	if m.state != Running {
		return 0
	}
	return m.clock.Now().Sub(m.startedAt).Seconds()
}

func (m *Machine) finish(reason Reason) {
	now := m.clock.Now()
	elapsed := now.Sub(m.startedAt)
	if reason == ReasonExpired {
		limit := time.Duration(m.duration) * time.Second
		if elapsed > limit {
			elapsed = limit
		}
	}
	if elapsed < 0 {
		elapsed = 0
	}
	seconds := elapsed.Seconds()

	m.state = Finished
	m.endedAt = now
	m.timer = Timer{}
	m.final = metrics.Final{
		Snapshot:       metrics.ComputeRunes(m.reference, m.typed, seconds),
		ElapsedSeconds: seconds,
	}
	m.result = Result{
		ID:              uuid.NewString(),
		Reference:       string(m.reference),
		Typed:           string(m.typed),
		StartedAt:       m.startedAt,
		EndedAt:         now,
		DurationSeconds: m.duration,
		Reason:          reason,
		Final:           m.final,
		Chars:           metrics.CharBreakdown(string(m.reference), string(m.typed)),
	}
	if m.onFinish != nil {
		m.onFinish(m.result)
	}
}
