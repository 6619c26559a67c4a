package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu     sync.Mutex
	events []DomainEvent
}

func (c *collector) handle(e DomainEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *collector) snapshot() []DomainEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]DomainEvent, len(c.events))
	copy(out, c.events)
	return out
}

func TestPublishDeliversInOrder(t *testing.T) {
	b := New()
	c := &collector{}
	b.Subscribe(EventStateChanged, c.handle)

	b.Publish(StateChangedEvent{Event: "init", From: "none", To: "ready"})
	b.Publish(GridResetEvent{Cols: 4, Rows: 4})
	b.Publish(StateChangedEvent{Event: "start", From: "ready", To: "starting"})
	b.Close()

	events := c.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, "ready", events[0].(StateChangedEvent).To)
	assert.Equal(t, "starting", events[1].(StateChangedEvent).To)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	kept, dropped := &collector{}, &collector{}
	b.Subscribe(EventGridReset, kept.handle)
	unsubscribe := b.Subscribe(EventGridReset, dropped.handle)
	unsubscribe()

	b.Publish(GridResetEvent{})
	assert.Eventually(t, func() bool { return len(kept.snapshot()) == 1 }, time.Second, time.Millisecond)
	assert.Empty(t, dropped.snapshot())
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New()
	c := &collector{}
	b.Subscribe(EventConfigSaved, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventConfigSaved, c.handle)

	b.Publish(ConfigSavedEvent{Path: "a"})
	b.Publish(ConfigSavedEvent{Path: "b"})
	b.Close()

	assert.Len(t, c.snapshot(), 2)
}

func TestPublishAfterClose(t *testing.T) {
	b := New()
	b.Close()
	b.Close()
	assert.NotPanics(t, func() { b.Publish(ConfigSavedEvent{}) })
}
