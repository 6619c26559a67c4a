package state

import (
	"pathviz/internal/domain"
)

// AppState holds the UI state that is not owned by the controller
type AppState struct {
	ShowHelp      bool
	StatusMessage string
	StatusIsError bool

	// LastRun is the most recent completed search, if any
	LastRun     *domain.Stats
	LastAlgo    string
	Runs        int
	ConfigPath  string
	ConfigFound bool
}

// NewAppState creates a new AppState
func NewAppState() *AppState {
	return &AppState{}
}

// SetStatus replaces the status line
func (s *AppState) SetStatus(msg string, isError bool) {
	s.StatusMessage = msg
	s.StatusIsError = isError
}

// ClearStatus empties the status line
func (s *AppState) ClearStatus() {
	s.StatusMessage = ""
	s.StatusIsError = false
}
