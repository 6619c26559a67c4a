package controller

import "pathviz/internal/fsm"

// State is a lifecycle state
type State = fsm.State

// Event is a lifecycle event
type Event = fsm.Event

const (
	StateNone          State = "none"
	StateReady         State = "ready"
	StateStarting      State = "starting"
	StateSearching     State = "searching"
	StatePaused        State = "paused"
	StateFinished      State = "finished"
	StateModified      State = "modified"
	StateRestarting    State = "restarting"
	StateDraggingStart State = "draggingStart"
	StateDraggingEnd   State = "draggingEnd"
	StateDrawingWall   State = "drawingWall"
	StateErasingWall   State = "erasingWall"
)

const (
	EventInit      Event = "init"
	EventStart     Event = "start"
	EventSearch    Event = "search"
	EventPause     Event = "pause"
	EventResume    Event = "resume"
	EventCancel    Event = "cancel"
	EventFinish    Event = "finish"
	EventRestart   Event = "restart"
	EventModify    Event = "modify"
	EventClear     Event = "clear"
	EventReset     Event = "reset"
	EventDragStart Event = "dragStart"
	EventDragEnd   Event = "dragEnd"
	EventDrawWall  Event = "drawWall"
	EventEraseWall Event = "eraseWall"
	EventRest      Event = "rest"
)

var editable = []State{StateReady, StateFinished}

// Transitions is the lifecycle transition table
var Transitions = []fsm.Transition{
	{Event: EventInit, From: []State{StateNone}, To: StateReady},
	{Event: EventSearch, From: []State{StateStarting}, To: StateSearching},
	{Event: EventPause, From: []State{StateSearching}, To: StatePaused},
	{Event: EventFinish, From: []State{StateSearching}, To: StateFinished},
	{Event: EventResume, From: []State{StatePaused}, To: StateSearching},
	{Event: EventCancel, From: []State{StatePaused}, To: StateReady},
	{Event: EventModify, From: []State{StateFinished}, To: StateModified},
	{Event: EventReset, From: []State{fsm.Any}, To: StateReady},
	{Event: EventClear, From: []State{StateFinished, StateModified}, To: StateReady},
	{Event: EventStart, From: []State{StateReady, StateModified, StateRestarting}, To: StateStarting},
	{Event: EventRestart, From: []State{StateSearching, StateFinished}, To: StateRestarting},
	{Event: EventDragStart, From: editable, To: StateDraggingStart},
	{Event: EventDragEnd, From: editable, To: StateDraggingEnd},
	{Event: EventDrawWall, From: editable, To: StateDrawingWall},
	{Event: EventEraseWall, From: editable, To: StateErasingWall},
	{Event: EventRest, From: []State{StateDraggingStart, StateDraggingEnd, StateDrawingWall, StateErasingWall}, To: StateReady},
}
