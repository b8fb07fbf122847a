// Package session implements the typing session state machine.
package session

import (
	"errors"
	"fmt"
	"time"
)

// State is the lifecycle phase of a session.
type State int

// Session states, in order.
const (
	NotStarted State = iota
	Running
	Finished
)

// ErrEmptyTarget indicates the typing target has no content.
var ErrEmptyTarget = errors.New("target text is empty")

// Score is the read-only result snapshot of a finished session.
type Score struct {
	TargetLen  int
	InputLen   int
	Keystrokes int
	Correct    int
	Accuracy   float64
	WPM        float64
	Elapsed    time.Duration
}

// Session tracks one typing attempt against an immutable target.
// It owns its buffers exclusively and is not safe for concurrent use.
type Session struct {
	target     []rune
	input      []rune
	state      State
	limit      time.Duration
	startedAt  time.Time
	finishedAt time.Time
	keystrokes int
	now        func() time.Time
}

// New creates a session for the given target text and time limit.
func New(target string, limit time.Duration) (*Session, error) {
	if target == "" {
		return nil, ErrEmptyTarget
	}
	if limit <= 0 {
		return nil, fmt.Errorf("time limit must be > 0, got %v", limit)
	}
	return &Session{
		target: []rune(target),
		limit:  limit,
		now:    time.Now,
	}, nil
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// Target returns the immutable target buffer.
func (s *Session) Target() []rune {
	return s.target
}

// Input returns the input buffer typed so far.
func (s *Session) Input() []rune {
	return s.input
}

// Limit returns the configured time limit.
func (s *Session) Limit() time.Duration {
	return s.limit
}

// Start transitions NotStarted to Running and records the start time.
func (s *Session) Start() {
	if s.state != NotStarted {
		return
	}
	s.state = Running
	s.startedAt = s.now()
}

// Type appends one rune to the input buffer. The first keystroke
// starts the session; input past the end of the target is dropped.
// Typing the final position finishes the session.
func (s *Session) Type(r rune) {
	if s.state == Finished {
		return
	}
	if s.state == NotStarted {
		s.Start()
	}
	if len(s.input) >= len(s.target) {
		return
	}
	s.input = append(s.input, r)
	s.keystrokes++
	if len(s.input) == len(s.target) {
		s.finish()
	}
}

// Backspace removes the last input rune. No-op on an empty buffer.
func (s *Session) Backspace() {
	if s.state != Running || len(s.input) == 0 {
		return
	}
	s.input = s.input[:len(s.input)-1]
}

// Tick checks the deadline against the wall clock and finishes the
// session when the time limit has elapsed.
func (s *Session) Tick() {
	if s.state != Running {
		return
	}
	if s.now().Sub(s.startedAt) >= s.limit {
		s.finish()
	}
}

// Finish forces the session into the Finished state, keeping a
// partial score. Used for explicit quits.
func (s *Session) Finish() {
	if s.state != Running {
		return
	}
	s.finish()
}

func (s *Session) finish() {
	s.state = Finished
	s.finishedAt = s.now()
}

// Elapsed returns time spent typing, capped at the time limit.
func (s *Session) Elapsed() time.Duration {
	var elapsed time.Duration
	switch s.state {
	case NotStarted:
		return 0
	case Running:
		elapsed = s.now().Sub(s.startedAt)
	case Finished:
		elapsed = s.finishedAt.Sub(s.startedAt)
	}
	if elapsed > s.limit {
		elapsed = s.limit
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed
}

// Remaining returns time left before the deadline.
func (s *Session) Remaining() time.Duration {
	return s.limit - s.Elapsed()
}

// CorrectCount returns the number of positions where the input
// matches the target.
func (s *Session) CorrectCount() int {
	correct := 0
	for i, r := range s.input {
		if i < len(s.target) && s.target[i] == r {
			correct++
		}
	}
	return correct
}

// Score computes the result snapshot from the current buffers.
func (s *Session) Score() Score {
	correct := s.CorrectCount()
	elapsed := s.Elapsed()
	accuracy := float64(correct) / float64(len(s.target))
	wpm := 0.0
	if minutes := elapsed.Minutes(); minutes > 0 {
		wpm = (float64(len(s.input)) / 5.0) / minutes
	}
	return Score{
		TargetLen:  len(s.target),
		InputLen:   len(s.input),
		Keystrokes: s.keystrokes,
		Correct:    correct,
		Accuracy:   accuracy,
		WPM:        wpm,
		Elapsed:    elapsed,
	}
}

// StartedAt returns the session start time (zero before Start).
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// FinishedAt returns the session end time (zero before Finished).
func (s *Session) FinishedAt() time.Time {
	return s.finishedAt
}
