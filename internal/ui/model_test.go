package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathviz/internal/config"
	"pathviz/internal/controller"
	"pathviz/internal/domain"
	"pathviz/internal/eventbus"
	"pathviz/internal/finder"
	"pathviz/internal/oplog"
	"pathviz/internal/ui/views"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Grid.Cols = 10
	cfg.Grid.Rows = 10
	cfg.Grid.DemoWall = false
	cfg.Search.Algorithm = "breadthfirst"
	m := NewModel(nil, cfg, nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	require.Equal(t, controller.StateReady, m.ctrl.State())
	return m
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runTimers delivers scheduled ticks in creation order until none remain
func runTimers(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; m.sched.pending() > 0; i++ {
		require.Less(t, i, 100000, "timers never drained")
		var next uint64
		for id := range m.sched.timers {
			if next == 0 || id < next {
				next = id
			}
		}
		m.Update(timerFiredMsg{id: next})
	}
}

func TestNewModelPaintsEndpoints(t *testing.T) {
	m := newTestModel(t)
	cells := m.canvas.Cells()
	assert.True(t, cells[5][3].Start)
	assert.True(t, cells[5][9].End)

	controls := m.ctrl.Controls()
	require.Len(t, controls, 3)
	assert.Equal(t, "Start", controls[0].Label)
	assert.False(t, controls[1].Enabled)
}

func TestStartKeyRunsSearchToFinish(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyMsg(" "))
	assert.Equal(t, controller.StateSearching, m.ctrl.State())

	runTimers(t, m)
	assert.Equal(t, controller.StateFinished, m.ctrl.State())
	assert.Contains(t, m.canvas.StatsLine(), "length: 6.00 | nodes: 7 |")

	cells := m.canvas.Cells()
	for x := 3; x <= 9; x++ {
		assert.True(t, cells[5][x].Path, "cell (%d,5) on path", x)
	}
	assert.Contains(t, m.View(), "finished")
}

func TestPauseKeyDisabledInReady(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg("2"))
	assert.Equal(t, controller.StateReady, m.ctrl.State())
	assert.Contains(t, m.state.StatusMessage, "disabled")
}

func TestPauseAndResumeKeys(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg("1"))
	m.Update(keyMsg("2"))
	assert.Equal(t, controller.StatePaused, m.ctrl.State())
	assert.Equal(t, 0, m.sched.pending())

	m.Update(keyMsg("1"))
	assert.Equal(t, controller.StateSearching, m.ctrl.State())
	runTimers(t, m)
	assert.Equal(t, controller.StateFinished, m.ctrl.State())
}

func TestResetKeyDuringSearch(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg("1"))
	m.Update(keyMsg("R"))
	assert.Equal(t, controller.StateReady, m.ctrl.State())

	runTimers(t, m)
	cells := m.canvas.Cells()
	for _, row := range cells {
		for _, c := range row {
			assert.False(t, c.Opened || c.Closed || c.Path)
		}
	}
}

func TestMouseDrawsAndErasesWalls(t *testing.T) {
	m := newTestModel(t)
	cw := m.canvas.cellWidth

	m.Update(tea.MouseMsg{X: 1 * cw, Y: views.GridTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, controller.StateDrawingWall, m.ctrl.State())
	m.Update(tea.MouseMsg{X: 2 * cw, Y: views.GridTop + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 2 * cw, Y: views.GridTop + 1, Action: tea.MouseActionRelease})
	assert.Equal(t, controller.StateReady, m.ctrl.State())

	assert.False(t, m.ctrl.Grid().Walkable(1, 1))
	assert.False(t, m.ctrl.Grid().Walkable(2, 1))
	assert.True(t, m.canvas.Cells()[1][2].Blocked)

	m.Update(tea.MouseMsg{X: 1 * cw, Y: views.GridTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, controller.StateErasingWall, m.ctrl.State())
	m.Update(tea.MouseMsg{X: 1 * cw, Y: views.GridTop + 1, Action: tea.MouseActionRelease})
	assert.True(t, m.ctrl.Grid().Walkable(1, 1))
}

func TestMouseDragsStart(t *testing.T) {
	m := newTestModel(t)
	cw := m.canvas.cellWidth

	m.Update(tea.MouseMsg{X: 3 * cw, Y: views.GridTop + 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, controller.StateDraggingStart, m.ctrl.State())
	m.Update(tea.MouseMsg{X: 1 * cw, Y: views.GridTop + 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 1 * cw, Y: views.GridTop + 2, Action: tea.MouseActionRelease})

	assert.Equal(t, 1, m.ctrl.StartPos().X)
	assert.Equal(t, 2, m.ctrl.StartPos().Y)
	cells := m.canvas.Cells()
	assert.True(t, cells[2][1].Start)
	assert.False(t, cells[5][3].Start)
}

func TestClickOnControlBarPressesButton(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.MouseMsg{X: 0, Y: views.BarRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, controller.StateSearching, m.ctrl.State())
}

func TestClickOnDisabledButtonReportsStatus(t *testing.T) {
	m := newTestModel(t)
	first := m.ctrl.Controls()[0]
	x := len(views.ButtonText(first)) + views.ButtonGap

	cmd := m.handleMouse(tea.MouseMsg{X: x, Y: views.BarRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Nil(t, cmd)
	assert.Equal(t, "Button 2 is disabled", m.state.StatusMessage)
	assert.Equal(t, controller.StateReady, m.ctrl.State())
}

func TestMouseOutsideGridIgnored(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.MouseMsg{X: 500, Y: views.GridTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, controller.StateReady, m.ctrl.State())
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg("?"))
	assert.True(t, m.state.ShowHelp)
	assert.Contains(t, m.View(), "pathviz Help")

	// Other keys are swallowed while help is open
	m.Update(keyMsg("1"))
	assert.Equal(t, controller.StateReady, m.ctrl.State())

	m.Update(keyMsg("?"))
	assert.False(t, m.state.ShowHelp)
}

func TestAlgorithmKeys(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg("a"))
	algo, _ := m.ctrl.Algorithm()
	assert.Equal(t, "bestfirst", string(algo))

	m.Update(keyMsg("d"))
	_, opts := m.ctrl.Algorithm()
	assert.True(t, opts.AllowDiagonal)

	m.Update(keyMsg("A"))
	m.Update(keyMsg("A"))
	algo, _ = m.ctrl.Algorithm()
	assert.Equal(t, "idastar", string(algo))

	m.Update(keyMsg("+"))
	_, opts = m.ctrl.Algorithm()
	assert.Equal(t, 2.0, opts.Weight)

	m.Update(keyMsg("t"))
	_, opts = m.ctrl.Algorithm()
	assert.Equal(t, finder.DefaultTimeLimit+1, opts.TimeLimit)
	for i := 0; i < finder.DefaultTimeLimit+5; i++ {
		m.Update(keyMsg("T"))
	}
	_, opts = m.ctrl.Algorithm()
	assert.Equal(t, 1, opts.TimeLimit, "the panel never makes IDA* unbounded")
	assert.Contains(t, m.View(), "time limit")
}

func TestOptionsFrozenWhileSearching(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg("1"))
	m.Update(keyMsg("a"))
	algo, _ := m.ctrl.Algorithm()
	assert.Equal(t, "breadthfirst", string(algo))
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEventMsgUpdatesStatus(t *testing.T) {
	m := newTestModel(t)
	m.Update(EventMsg{Event: eventbus.IllegalEventEvent{Event: "pause", State: "ready"}})
	assert.Equal(t, "Cannot pause while ready", m.state.StatusMessage)
	assert.True(t, m.state.StatusIsError)

	m.Update(EventMsg{Event: eventbus.PlaybackFinishedEvent{Stats: domain.Stats{Unreachable: true}}})
	assert.Equal(t, "No path between start and end", m.state.StatusMessage)
}

func TestCanvasColorizeFlash(t *testing.T) {
	c := NewCanvas(4, 4, 2, 50*time.Millisecond)
	now := time.Unix(0, 0)
	c.now = func() time.Time { return now }

	c.SetAttributeAt(1, 1, oplog.Opened, true)
	assert.True(t, c.Cells()[1][1].Flash)
	assert.True(t, c.Flashing())

	now = now.Add(60 * time.Millisecond)
	cells := c.Cells()
	assert.False(t, cells[1][1].Flash)
	assert.True(t, cells[1][1].Opened)
	assert.False(t, c.Flashing())
}

func TestCanvasCoordinates(t *testing.T) {
	c := NewCanvas(4, 4, 2, 0)
	x, y := c.ToGridCoordinate(5, views.GridTop+2)
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)

	x, y = c.ToGridCoordinate(3, 0)
	assert.Equal(t, -1, x)
	assert.Equal(t, -1, y)

	// Out-of-range writes are dropped
	c.SetAttributeAt(9, 9, oplog.Closed, true)
	c.SetStartPos(-1, 0)
}

func TestFormatStats(t *testing.T) {
	s := domain.Stats{PathLength: 18, PathNodes: 19, TimeSpent: 1500 * time.Microsecond, OperationCount: 42}
	assert.Equal(t, "length: 18.00 | nodes: 19 | time: 1.5000ms | operations: 42", FormatStats(s))

	s.Unreachable = true
	assert.Contains(t, FormatStats(s), "No path found")
}
