package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pathviz/internal/controller"
	"pathviz/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, k.Primary):
		return []types.Action{types.PressControlAction{ID: controller.ControlPrimary}}, true
	case key.Matches(msg, k.Secondary):
		return []types.Action{types.PressControlAction{ID: controller.ControlSecondary}}, true
	case key.Matches(msg, k.Tertiary):
		return []types.Action{types.PressControlAction{ID: controller.ControlTertiary}}, true
	case key.Matches(msg, k.Reset):
		// reset is legal from every state
		return []types.Action{types.FireEventAction{Event: controller.EventReset}}, true
	}

	switch {
	case key.Matches(msg, k.Help):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeHelp}}, true
	case key.Matches(msg, k.HelpPager):
		return []types.Action{types.OpenHelpPagerAction{}}, true
	}

	// Search options are frozen while a search is in flight
	if !optionsEditable(ctx) {
		return nil, false
	}

	switch {
	case key.Matches(msg, k.Algorithm):
		step := 1
		if msg.String() == "A" {
			step = -1
		}
		return []types.Action{types.CycleAlgorithmAction{Step: step}}, true
	case key.Matches(msg, k.Heuristic):
		return []types.Action{types.CycleHeuristicAction{}}, true
	case key.Matches(msg, k.Diagonal):
		return []types.Action{types.ToggleOptionAction{Option: "diagonal"}}, true
	case key.Matches(msg, k.Corners):
		return []types.Action{types.ToggleOptionAction{Option: "corners"}}, true
	case key.Matches(msg, k.Bidirection):
		return []types.Action{types.ToggleOptionAction{Option: "bidirectional"}}, true
	case key.Matches(msg, k.Recursion):
		return []types.Action{types.ToggleOptionAction{Option: "recursion"}}, true
	case key.Matches(msg, k.WeightUp):
		return []types.Action{types.AdjustWeightAction{Delta: 1}}, true
	case key.Matches(msg, k.WeightDown):
		return []types.Action{types.AdjustWeightAction{Delta: -1}}, true
	case key.Matches(msg, k.TimeUp):
		return []types.Action{types.AdjustTimeLimitAction{Delta: 1}}, true
	case key.Matches(msg, k.TimeDown):
		return []types.Action{types.AdjustTimeLimitAction{Delta: -1}}, true
	}

	return nil, false
}

func optionsEditable(ctx types.Context) bool {
	switch ctx.LifecycleState() {
	case controller.StateReady, controller.StateFinished, controller.StateModified:
		return true
	}
	return false
}
