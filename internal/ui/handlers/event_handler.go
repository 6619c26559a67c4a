package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"pathviz/internal/eventbus"
	"pathviz/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.StateChangedEvent:
		// A fresh search clears whatever the last one reported
		if e.To == "starting" {
			h.state.ClearStatus()
		}

	case eventbus.SearchCompletedEvent:
		h.state.Runs++
		h.state.LastAlgo = e.Algorithm
		stats := e.Stats
		h.state.LastRun = &stats

	case eventbus.PlaybackFinishedEvent:
		if e.Stats.Unreachable {
			h.state.SetStatus("No path between start and end", false)
		} else {
			h.state.SetStatus(fmt.Sprintf("Search %d finished", h.state.Runs), false)
		}

	case eventbus.GridResetEvent:
		h.state.LastRun = nil
		h.state.SetStatus(fmt.Sprintf("Grid reset to %dx%d", e.Cols, e.Rows), false)

	case eventbus.IllegalEventEvent:
		h.state.SetStatus(fmt.Sprintf("Cannot %s while %s", e.Event, e.State), true)

	case eventbus.ConfigLoadedEvent:
		h.state.ConfigPath = e.Path
		h.state.ConfigFound = e.Existing

	case eventbus.ConfigSavedEvent:
		h.state.ConfigPath = e.Path
		h.state.SetStatus("Config saved to "+e.Path, false)
	}

	return nil
}
