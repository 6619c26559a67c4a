package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"pathviz/internal/config"
	"pathviz/internal/controller"
	"pathviz/internal/eventbus"
	"pathviz/internal/ui/commands"
	"pathviz/internal/ui/handlers"
	"pathviz/internal/ui/input"
	inputtypes "pathviz/internal/ui/input/types"
	"pathviz/internal/ui/state"
	"pathviz/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState

	width       int
	height      int
	help        help.Model
	keys        inputtypes.KeyMap
	inPagerMode bool

	ctrl   *controller.Controller
	canvas *Canvas
	sched  *teaScheduler

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	eventHandler *handlers.EventHandler
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model with the controller already in ready
func NewModel(bus eventbus.EventBus, cfg *config.Config, cfgService config.ConfigService) *Model {
	appState := state.NewAppState()
	keys := inputtypes.DefaultKeyMap()

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		help:         help.New(),
		keys:         keys,
		canvas:       NewCanvas(cfg.Grid.Cols, cfg.Grid.Rows, cfg.UI.CellWidth, cfg.Colorize()),
		sched:        newTeaScheduler(),
		renderer:     views.NewRenderer(cfg.UI.CellWidth),
		helpRenderer: NewHelpRenderer(keys),
		eventHandler: handlers.NewEventHandler(appState),
		inputHandler: input.New(keys),
	}

	m.ctrl = controller.New(controller.OptionsFromConfig(cfg), m.canvas, m.canvas, m.sched, bus)
	m.cmdExecutor = commands.NewExecutor(&commands.CommandContext{
		Controller:    m.ctrl,
		Bus:           bus,
		Config:        cfg,
		ConfigService: cfgService,
		Notify:        appState.SetStatus,
	})

	if err := m.ctrl.Init(); err != nil {
		log.Printf("Failed to initialise controller: %v", err)
	}
	if cfgService != nil {
		appState.ConfigPath = cfgService.Path()
	}

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Controller exposes the lifecycle controller
func (m *Model) Controller() *controller.Controller { return m.ctrl }

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.sched.drain())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case timerFiredMsg:
		m.sched.fire(msg.id)

	default:
		cmd = m.handleNonKeyboardMsg(msg)
	}

	// Callbacks scheduled while handling msg become ticks here
	return m, tea.Batch(cmd, m.sched.drain())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctx := &input.ModelContext{Controller: m.ctrl}
	actions := m.inputHandler.HandleKey(msg, ctx)

	var cmds []tea.Cmd
	for _, action := range actions {
		if c := m.processAction(action); c != nil {
			cmds = append(cmds, c)
		}
	}
	return tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.PressControlAction:
		return m.cmdExecutor.ExecutePress(a.ID)
	case inputtypes.FireEventAction:
		return m.cmdExecutor.ExecuteFire(a.Event)
	case inputtypes.CycleAlgorithmAction:
		return m.cmdExecutor.ExecuteCycleAlgorithm(a.Step)
	case inputtypes.CycleHeuristicAction:
		return m.cmdExecutor.ExecuteCycleHeuristic()
	case inputtypes.ToggleOptionAction:
		return m.cmdExecutor.ExecuteToggleOption(a.Option)
	case inputtypes.AdjustWeightAction:
		return m.cmdExecutor.ExecuteAdjustWeight(a.Delta)
	case inputtypes.AdjustTimeLimitAction:
		return m.cmdExecutor.ExecuteAdjustTimeLimit(a.Delta)
	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp
	case inputtypes.OpenHelpPagerAction:
		if m.program == nil {
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())
	case inputtypes.QuitAction:
		if !a.Force {
			m.cmdExecutor.ExecuteSaveConfig()
		}
		return tea.Quit
	default:
		log.Printf("Unhandled action: %s", action.Type())
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.state.ShowHelp {
		return nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if ctl, ok := m.canvas.ButtonAt(msg.X, msg.Y); ok {
			return m.cmdExecutor.ExecutePress(ctl.ID)
		}
		m.ctrl.MouseDown(msg.X, msg.Y)
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			m.ctrl.MouseMove(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		m.ctrl.MouseUp()
	}
	return nil
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case EventMsg:
		return m.eventHandler.HandleEvent(msg.Event)

	case tickMsg:
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return nil
		}
		return tick()

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false
		return tick()

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Error showing help pager: %v", msg.err)
			m.state.SetStatus(fmt.Sprintf("Help pager failed: %v", msg.err), true)
		}
	}
	return nil
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}
	return m.renderer.Render(m.viewState())
}

func (m *Model) viewState() views.ViewState {
	algo, _ := m.ctrl.Algorithm()
	vs := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		State:         m.ctrl.State(),
		Algorithm:     algo.Title(),
		Options:       m.panelOptions(),
		Controls:      m.ctrl.Controls(),
		Cells:         m.canvas.Cells(),
		Stats:         m.canvas.StatsLine(),
		StatusMessage: m.state.StatusMessage,
		StatusIsError: m.state.StatusIsError,
		ShowHelp:      m.state.ShowHelp,
		HelpModel:     m.help,
	}
	if vs.ShowHelp {
		vs.HelpContent = m.helpRenderer.RenderHelpContent()
	}
	if m.config.UI.ShowHelp {
		vs.KeyMap = m.keys
	}
	return vs
}

func (m *Model) panelOptions() []views.Option {
	algo, opts := m.ctrl.Algorithm()
	return []views.Option{
		{Key: "h", Name: "heuristic", Value: string(opts.Heuristic), Supported: algo.Supports("heuristic")},
		{Key: "d", Name: "diagonal", On: opts.AllowDiagonal, Supported: algo.Supports("diagonal")},
		{Key: "c", Name: "no corners", On: opts.DontCrossCorners, Supported: algo.Supports("corners")},
		{Key: "b", Name: "bidirectional", On: opts.Bidirectional, Supported: algo.Supports("bidirectional")},
		{Key: "r", Name: "recursion", On: opts.TrackRecursion, Supported: algo.Supports("recursion")},
		{Key: "+/-", Name: "weight", Value: fmt.Sprintf("%g", opts.Weight), Supported: algo.Supports("weight")},
		{Key: "t/T", Name: "time limit", Value: timeLimitLabel(opts.TimeLimit), Supported: algo.Supports("timelimit")},
	}
}

func timeLimitLabel(seconds int) string {
	if seconds <= 0 {
		return "none"
	}
	return fmt.Sprintf("%ds", seconds)
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
