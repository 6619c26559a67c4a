package types

import "pathviz/internal/controller"

// Control bar actions
type PressControlAction struct {
	ID controller.ControlID
}

func (a PressControlAction) Type() string { return "press_control" }

// FireEventAction fires a lifecycle event directly
type FireEventAction struct {
	Event controller.Event
}

func (a FireEventAction) Type() string { return "fire_event" }

// Algorithm panel actions
type CycleAlgorithmAction struct {
	Step int
}

func (a CycleAlgorithmAction) Type() string { return "cycle_algorithm" }

type CycleHeuristicAction struct{}

func (a CycleHeuristicAction) Type() string { return "cycle_heuristic" }

type ToggleOptionAction struct {
	Option string // "diagonal", "corners", "bidirectional" or "recursion"
}

func (a ToggleOptionAction) Type() string { return "toggle_option" }

type AdjustWeightAction struct {
	Delta float64
}

func (a AdjustWeightAction) Type() string { return "adjust_weight" }

type AdjustTimeLimitAction struct {
	Delta int // seconds
}

func (a AdjustTimeLimitAction) Type() string { return "adjust_time_limit" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type OpenHelpPagerAction struct{}

func (a OpenHelpPagerAction) Type() string { return "open_help_pager" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
