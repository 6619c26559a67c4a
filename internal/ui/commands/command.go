package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"pathviz/internal/config"
	"pathviz/internal/controller"
	"pathviz/internal/eventbus"
	"pathviz/internal/finder"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Controller    *controller.Controller
	Bus           eventbus.EventBus
	Config        *config.Config
	ConfigService config.ConfigService
	// Notify reports a status line message to the user
	Notify func(msg string, isError bool)
}

func (ctx *CommandContext) notify(msg string, isError bool) {
	if ctx.Notify != nil {
		ctx.Notify(msg, isError)
	}
}

// PressControlCommand presses one of the three control buttons
type PressControlCommand struct {
	ctx *CommandContext
	id  controller.ControlID
}

// NewPressControlCommand creates a new press command
func NewPressControlCommand(ctx *CommandContext, id controller.ControlID) *PressControlCommand {
	return &PressControlCommand{ctx: ctx, id: id}
}

// Execute presses the button
func (c *PressControlCommand) Execute() tea.Cmd {
	if err := c.ctx.Controller.Press(c.id); err != nil {
		if errors.Is(err, controller.ErrControlDisabled) {
			c.ctx.notify(fmt.Sprintf("Button %d is disabled", c.id), false)
		} else {
			c.ctx.notify(err.Error(), true)
		}
	}
	return nil
}

// FireEventCommand fires a lifecycle event
type FireEventCommand struct {
	ctx *CommandContext
	ev  controller.Event
}

// NewFireEventCommand creates a new fire command
func NewFireEventCommand(ctx *CommandContext, ev controller.Event) *FireEventCommand {
	return &FireEventCommand{ctx: ctx, ev: ev}
}

// Execute fires the event
func (c *FireEventCommand) Execute() tea.Cmd {
	if err := c.ctx.Controller.Fire(c.ev); err != nil {
		c.ctx.notify(err.Error(), true)
	}
	return nil
}

// CycleAlgorithmCommand selects the next or previous algorithm
type CycleAlgorithmCommand struct {
	ctx  *CommandContext
	step int
}

// NewCycleAlgorithmCommand creates a new cycle algorithm command
func NewCycleAlgorithmCommand(ctx *CommandContext, step int) *CycleAlgorithmCommand {
	return &CycleAlgorithmCommand{ctx: ctx, step: step}
}

// Execute moves the algorithm selection
func (c *CycleAlgorithmCommand) Execute() tea.Cmd {
	algo, opts := c.ctx.Controller.Algorithm()
	n := len(finder.Algorithms)
	idx := 0
	for i, a := range finder.Algorithms {
		if a == algo {
			idx = i
			break
		}
	}
	next := finder.Algorithms[((idx+c.step)%n+n)%n]
	c.ctx.Controller.SetAlgorithm(next, opts)
	c.ctx.notify("Algorithm: "+next.Title(), false)
	return nil
}

// CycleHeuristicCommand selects the next heuristic
type CycleHeuristicCommand struct {
	ctx *CommandContext
}

// NewCycleHeuristicCommand creates a new cycle heuristic command
func NewCycleHeuristicCommand(ctx *CommandContext) *CycleHeuristicCommand {
	return &CycleHeuristicCommand{ctx: ctx}
}

// Execute moves the heuristic selection
func (c *CycleHeuristicCommand) Execute() tea.Cmd {
	algo, opts := c.ctx.Controller.Algorithm()
	if !algo.Supports("heuristic") {
		return nil
	}
	idx := 0
	for i, h := range finder.HeuristicNames {
		if h == opts.Heuristic {
			idx = i
			break
		}
	}
	opts.Heuristic = finder.HeuristicNames[(idx+1)%len(finder.HeuristicNames)]
	c.ctx.Controller.SetAlgorithm(algo, opts)
	return nil
}

// ToggleOptionCommand flips one boolean search option
type ToggleOptionCommand struct {
	ctx    *CommandContext
	option string
}

// NewToggleOptionCommand creates a new toggle option command
func NewToggleOptionCommand(ctx *CommandContext, option string) *ToggleOptionCommand {
	return &ToggleOptionCommand{ctx: ctx, option: option}
}

// Execute toggles the option if the current algorithm reads it
func (c *ToggleOptionCommand) Execute() tea.Cmd {
	algo, opts := c.ctx.Controller.Algorithm()
	if !algo.Supports(c.option) {
		c.ctx.notify(fmt.Sprintf("%s has no %s option", algo.Title(), c.option), false)
		return nil
	}
	switch c.option {
	case "diagonal":
		opts.AllowDiagonal = !opts.AllowDiagonal
	case "corners":
		opts.DontCrossCorners = !opts.DontCrossCorners
	case "bidirectional":
		opts.Bidirectional = !opts.Bidirectional
	case "recursion":
		opts.TrackRecursion = !opts.TrackRecursion
	default:
		return nil
	}
	c.ctx.Controller.SetAlgorithm(algo, opts)
	return nil
}

// AdjustWeightCommand changes the heuristic weight
type AdjustWeightCommand struct {
	ctx   *CommandContext
	delta float64
}

// NewAdjustWeightCommand creates a new adjust weight command
func NewAdjustWeightCommand(ctx *CommandContext, delta float64) *AdjustWeightCommand {
	return &AdjustWeightCommand{ctx: ctx, delta: delta}
}

// Execute applies the delta; weights below 1 are clamped
func (c *AdjustWeightCommand) Execute() tea.Cmd {
	algo, opts := c.ctx.Controller.Algorithm()
	if !algo.Supports("weight") {
		return nil
	}
	opts.Weight += c.delta
	c.ctx.Controller.SetAlgorithm(algo, opts)
	return nil
}

// AdjustTimeLimitCommand changes the IDA* time limit. The panel keeps it
// between one second and finder.MaxTimeLimit; an unbounded limit loaded from
// the config snaps to the maximum.
type AdjustTimeLimitCommand struct {
	ctx   *CommandContext
	delta int
}

// NewAdjustTimeLimitCommand creates a new adjust time limit command
func NewAdjustTimeLimitCommand(ctx *CommandContext, delta int) *AdjustTimeLimitCommand {
	return &AdjustTimeLimitCommand{ctx: ctx, delta: delta}
}

// Execute applies the delta
func (c *AdjustTimeLimitCommand) Execute() tea.Cmd {
	algo, opts := c.ctx.Controller.Algorithm()
	if !algo.Supports("timelimit") {
		return nil
	}
	if opts.TimeLimit <= 0 {
		opts.TimeLimit = finder.MaxTimeLimit
	} else {
		opts.TimeLimit += c.delta
	}
	if opts.TimeLimit < 1 {
		opts.TimeLimit = 1
	}
	if opts.TimeLimit > finder.MaxTimeLimit {
		opts.TimeLimit = finder.MaxTimeLimit
	}
	c.ctx.Controller.SetAlgorithm(algo, opts)
	return nil
}

// SaveConfigCommand persists the algorithm panel into the config file
type SaveConfigCommand struct {
	ctx *CommandContext
}

// NewSaveConfigCommand creates a new save config command
func NewSaveConfigCommand(ctx *CommandContext) *SaveConfigCommand {
	return &SaveConfigCommand{ctx: ctx}
}

// Execute writes the config; failures are reported, not returned
func (c *SaveConfigCommand) Execute() tea.Cmd {
	if c.ctx.Config == nil || c.ctx.ConfigService == nil {
		return nil
	}
	algo, opts := c.ctx.Controller.Algorithm()
	s := &c.ctx.Config.Search
	s.Algorithm = string(algo)
	s.Heuristic = string(opts.Heuristic)
	s.AllowDiagonal = opts.AllowDiagonal
	s.DontCrossCorners = opts.DontCrossCorners
	s.Bidirectional = opts.Bidirectional
	s.Weight = opts.Weight
	s.TrackRecursion = opts.TrackRecursion
	s.TimeLimit = opts.TimeLimit

	if err := c.ctx.ConfigService.Save(c.ctx.Config); err != nil {
		c.ctx.notify(fmt.Sprintf("Failed to save config: %v", err), true)
	}
	return nil
}
