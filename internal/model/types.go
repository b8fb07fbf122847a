// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Dir       string
	File      string
	Extension string
	Line      int
	Theme     string
	Time      int
}

// StatsConfig defines filters and options for history output.
type StatsConfig struct {
	Extension   string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionRecord captures a finished typing session.
type SessionRecord struct {
	ID           int64
	StartedAt    time.Time
	EndedAt      time.Time
	FilePath     string
	Extension    string
	TargetLen    int
	InputLen     int
	Keystrokes   int
	Correct      int
	DurationMs   int64
	TimeLimitSec int
}
