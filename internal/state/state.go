package state

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultPath is the resume file, kept in the working directory so each
// directory can carry its own pomodoro.
const DefaultPath = ".pomo_state"

// State is the only durable record: how many seconds were left when the
// last run stopped. Zero means there is nothing to resume.
type State struct {
	SecondsRemaining uint64 `json:"seconds_remaining"`
}

// Store reads and writes the resume file.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns the persisted state. A missing, unreadable, or malformed
// file is not an error: a broken resume file resets to a fresh start,
// it must never take the timer down.
func (s *Store) Load() State {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return State{}
	}
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return State{}
	}
	return st
}

// Save overwrites the resume file. Zero clears resumability. Unlike
// Load, a failure here is surfaced: losing the user's elapsed time
// silently is not acceptable.
func (s *Store) Save(secondsRemaining uint64) error {
	b, err := json.Marshal(State{SecondsRemaining: secondsRemaining})
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write state file %s: %w", s.path, err)
	}
	return nil
}
