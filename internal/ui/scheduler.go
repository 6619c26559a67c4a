package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pathviz/internal/schedule"
)

// timerFiredMsg is delivered when a scheduled callback is due
type timerFiredMsg struct {
	id uint64
}

// teaScheduler runs controller and playback callbacks on the Bubble Tea
// update loop. After queues a tea.Tick; the model hands the tick back
// through fire, so every callback runs on the same goroutine as Update.
type teaScheduler struct {
	nextID uint64
	timers map[uint64]*teaTimer
	cmds   []tea.Cmd
}

type teaTimer struct {
	s  *teaScheduler
	id uint64
	fn func()
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{timers: make(map[uint64]*teaTimer)}
}

func (s *teaScheduler) After(d time.Duration, fn func()) schedule.Timer {
	s.nextID++
	t := &teaTimer{s: s, id: s.nextID, fn: fn}
	s.timers[t.id] = t
	id := t.id
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return t
}

// Stop cancels the callback; the tick still arrives and is dropped
func (t *teaTimer) Stop() bool {
	if _, ok := t.s.timers[t.id]; !ok {
		return false
	}
	delete(t.s.timers, t.id)
	return true
}

// fire runs the callback for a delivered tick, if it is still live
func (s *teaScheduler) fire(id uint64) {
	t, ok := s.timers[id]
	if !ok {
		return
	}
	delete(s.timers, id)
	t.fn()
}

// drain returns the ticks queued since the last call
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

// pending is the number of live timers
func (s *teaScheduler) pending() int { return len(s.timers) }
