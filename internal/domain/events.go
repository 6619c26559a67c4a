package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventStateChanged     EventType = "StateChanged"
	EventSearchCompleted  EventType = "SearchCompleted"
	EventPlaybackFinished EventType = "PlaybackFinished"
	EventGridReset        EventType = "GridReset"
	EventIllegalEvent     EventType = "IllegalEvent"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// StateChangedEvent is emitted on every lifecycle transition
type StateChangedEvent struct {
	Event string
	From  string
	To    string
}

func (e StateChangedEvent) Type() EventType { return EventStateChanged }

// SearchCompletedEvent is emitted when the search adapter has returned,
// before playback starts
type SearchCompletedEvent struct {
	Algorithm string
	Stats     Stats
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// PlaybackFinishedEvent is emitted when the operation log has been fully replayed
type PlaybackFinishedEvent struct {
	Stats Stats
}

func (e PlaybackFinishedEvent) Type() EventType { return EventPlaybackFinished }

// GridResetEvent is emitted once a deferred reset has rebuilt the grid
type GridResetEvent struct {
	Cols, Rows int
	Start, End Position
}

func (e GridResetEvent) Type() EventType { return EventGridReset }

// IllegalEventEvent is emitted when a lifecycle event was rejected
type IllegalEventEvent struct {
	Event string
	State string
	Err   error
}

func (e IllegalEventEvent) Type() EventType { return EventIllegalEvent }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Existing bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// Stats summarises one search run
type Stats struct {
	RunID          string
	PathLength     float64 // sum of euclidean segment lengths
	PathNodes      int
	TimeSpent      time.Duration
	OperationCount int
	Unreachable    bool
}
