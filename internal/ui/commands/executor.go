package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"pathviz/internal/controller"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx *CommandContext) *Executor {
	return &Executor{ctx: ctx}
}

// ExecutePress creates and executes a press command
func (e *Executor) ExecutePress(id controller.ControlID) tea.Cmd {
	return NewPressControlCommand(e.ctx, id).Execute()
}

// ExecuteFire creates and executes a fire command
func (e *Executor) ExecuteFire(ev controller.Event) tea.Cmd {
	return NewFireEventCommand(e.ctx, ev).Execute()
}

// ExecuteCycleAlgorithm creates and executes a cycle algorithm command
func (e *Executor) ExecuteCycleAlgorithm(step int) tea.Cmd {
	return NewCycleAlgorithmCommand(e.ctx, step).Execute()
}

// ExecuteCycleHeuristic creates and executes a cycle heuristic command
func (e *Executor) ExecuteCycleHeuristic() tea.Cmd {
	return NewCycleHeuristicCommand(e.ctx).Execute()
}

// ExecuteToggleOption creates and executes a toggle option command
func (e *Executor) ExecuteToggleOption(option string) tea.Cmd {
	return NewToggleOptionCommand(e.ctx, option).Execute()
}

// ExecuteAdjustWeight creates and executes an adjust weight command
func (e *Executor) ExecuteAdjustWeight(delta float64) tea.Cmd {
	return NewAdjustWeightCommand(e.ctx, delta).Execute()
}

// ExecuteAdjustTimeLimit creates and executes an adjust time limit command
func (e *Executor) ExecuteAdjustTimeLimit(delta int) tea.Cmd {
	return NewAdjustTimeLimitCommand(e.ctx, delta).Execute()
}

// ExecuteSaveConfig creates and executes a save config command
func (e *Executor) ExecuteSaveConfig() tea.Cmd {
	return NewSaveConfigCommand(e.ctx).Execute()
}
