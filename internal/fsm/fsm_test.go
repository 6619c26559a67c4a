package fsm

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func door() *Machine {
	return New("closed", []Transition{
		{Event: "open", From: []State{"closed"}, To: "opened"},
		{Event: "close", From: []State{"opened"}, To: "closed"},
		{Event: "lock", From: []State{"closed"}, To: "locked"},
		{Event: "unlock", From: []State{"locked"}, To: "closed"},
		{Event: "smash", From: []State{Any}, To: "broken"},
	})
}

func TestFireFollowsTable(t *testing.T) {
	m := door()
	require.NoError(t, m.Fire("open"))
	assert.Equal(t, State("opened"), m.Current())

	err := m.Fire("lock")
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.Equal(t, State("opened"), m.Current(), "a failed event has no effect")

	require.NoError(t, m.Fire("close"))
	require.NoError(t, m.Fire("lock"))
	assert.Equal(t, State("locked"), m.Current())
	assert.False(t, m.Can("open"))
	assert.True(t, m.Can("smash"))
}

func TestWildcard(t *testing.T) {
	for _, s := range []State{"closed", "opened", "locked", "broken"} {
		m := door()
		m.Set(s)
		require.NoError(t, m.Fire("smash"))
		assert.Equal(t, State("broken"), m.Current())
	}
}

func TestEveryStateEventPair(t *testing.T) {
	m := door()
	for _, s := range []State{"closed", "opened", "locked", "broken"} {
		for _, ev := range []Event{"open", "close", "lock", "unlock", "smash"} {
			m.Set(s)
			can := m.Can(ev)
			err := m.Fire(ev)
			if can {
				assert.NoError(t, err, "%s in %s", ev, s)
			} else {
				assert.True(t, errors.Is(err, ErrIllegalTransition), "%s in %s", ev, s)
				assert.Equal(t, s, m.Current())
			}
		}
	}
}

func TestHookOrder(t *testing.T) {
	m := door()
	var calls []string
	m.OnTransition(func(ev Event, from, to State) {
		calls = append(calls, "transition:"+string(from)+">"+string(to))
	})
	m.OnEnter("opened", func(ev Event, from, to State) {
		calls = append(calls, "enter:"+string(to))
	})
	m.OnEvent("open", func(ev Event, from, to State) {
		calls = append(calls, "event:"+string(ev))
	})

	require.NoError(t, m.Fire("open"))
	assert.Equal(t, []string{"transition:closed>opened", "enter:opened", "event:open"}, calls)
}

func TestNestedFire(t *testing.T) {
	m := door()
	m.OnEnter("opened", func(Event, State, State) {
		require.NoError(t, m.Fire("close"))
	})
	require.NoError(t, m.Fire("open"))
	assert.Equal(t, State("closed"), m.Current())
}
