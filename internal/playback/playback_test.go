package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathviz/internal/oplog"
	"pathviz/internal/schedule"
)

type recordingSink struct {
	events []oplog.Event
}

func (s *recordingSink) SetAttributeAt(x, y int, attr oplog.Attribute, value bool) {
	s.events = append(s.events, oplog.Event{X: x, Y: y, Attr: attr, Value: value})
}

func fill(n int) (*oplog.Log, []oplog.Event) {
	l := oplog.New()
	var want []oplog.Event
	attrs := []oplog.Attribute{oplog.Opened, oplog.Closed, oplog.Tested}
	for i := 0; i < n; i++ {
		ev := oplog.Event{X: i % 7, Y: i / 7, Attr: attrs[i%3], Value: i%2 == 0}
		l.Push(ev)
		want = append(want, ev)
	}
	return l, want
}

func TestPlaybackPreservesOrderAndRate(t *testing.T) {
	const n, rate = 90, 300
	l, want := fill(n)
	sink := &recordingSink{}
	v := schedule.NewVirtual()

	var drainedAt time.Duration
	drained := 0
	e := New(l, sink, v, rate, func() {
		drained++
		drainedAt = v.Now()
	})
	e.Start()
	require.True(t, e.Active())

	require.True(t, v.RunUntil(func() bool { return drained > 0 }, time.Minute))
	assert.Equal(t, want, sink.events)
	assert.Equal(t, 1, drained)
	assert.False(t, e.Active())

	expected := time.Duration(n) * time.Second / rate
	assert.InDelta(t, float64(expected), float64(drainedAt), float64(e.Interval()))
	assert.Zero(t, v.Pending())
}

func TestPlaybackOneEventPerTick(t *testing.T) {
	l, _ := fill(10)
	sink := &recordingSink{}
	v := schedule.NewVirtual()
	e := New(l, sink, v, 100, nil)

	e.Start()
	v.Advance(0)
	assert.Len(t, sink.events, 1)
	v.Advance(e.Interval())
	assert.Len(t, sink.events, 2)
	v.Advance(3 * e.Interval())
	assert.Len(t, sink.events, 5)
}

func TestPlaybackSkipsUnsupported(t *testing.T) {
	l := oplog.New()
	l.Push(oplog.Event{X: 1, Y: 1, Attr: oplog.Opened, Value: true})
	l.Push(oplog.Event{X: 1, Y: 1, Attr: oplog.Parent, Value: true})
	l.Push(oplog.Event{X: 2, Y: 2, Attr: oplog.Walkable, Value: false})
	l.Push(oplog.Event{X: 1, Y: 1, Attr: oplog.Closed, Value: true})

	sink := &recordingSink{}
	v := schedule.NewVirtual()
	drained := false
	e := New(l, sink, v, 10, func() { drained = true })
	e.Start()

	v.Advance(0)
	v.Advance(e.Interval())
	assert.Equal(t, []oplog.Event{
		{X: 1, Y: 1, Attr: oplog.Opened, Value: true},
		{X: 1, Y: 1, Attr: oplog.Closed, Value: true},
	}, sink.events)
	assert.False(t, drained)

	v.Advance(e.Interval())
	assert.True(t, drained)
	assert.False(t, e.Supports(oplog.Parent))
	assert.True(t, e.Supports(oplog.Tested))
}

func TestPlaybackStopAndRestart(t *testing.T) {
	l, _ := fill(20)
	sink := &recordingSink{}
	v := schedule.NewVirtual()
	e := New(l, sink, v, 100, nil)

	e.Start()
	v.Advance(e.Interval())
	require.Len(t, sink.events, 2)

	e.Stop()
	v.Advance(10 * e.Interval())
	assert.Len(t, sink.events, 2)
	assert.Equal(t, 18, l.Len())

	// starting twice must not leave two loops running
	e.Start()
	e.Start()
	v.Advance(0)
	v.Advance(2 * e.Interval())
	assert.Len(t, sink.events, 5)
	assert.Equal(t, 1, v.Pending())
}

func TestPlaybackDefaultRate(t *testing.T) {
	e := New(oplog.New(), &recordingSink{}, schedule.NewVirtual(), 0, nil)
	assert.Equal(t, time.Second/DefaultOperationsPerSecond, e.Interval())
}
