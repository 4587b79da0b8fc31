package archecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstice-games/archecs"
)

type damageEvent struct {
	Amount int
}

func TestEventQueueDoubleBuffering(t *testing.T) {
	q := archecs.NewEventQueue[damageEvent]()

	archecs.SendEvent(q, damageEvent{Amount: 5})
	assert.Equal(t, 0, archecs.EventCount(q), "events should not be visible before the next update")

	archecs.UpdateEventQueue(q)
	require.Equal(t, 1, archecs.EventCount(q))
	assert.Equal(t, 5, archecs.ReadEvents(q)[0].Amount)

	archecs.SendEvent(q, damageEvent{Amount: 7})
	assert.Equal(t, 1, archecs.EventCount(q), "the newly sent event is still write-buffered")

	archecs.UpdateEventQueue(q)
	require.Equal(t, 1, archecs.EventCount(q), "the previous frame's events are dropped on swap")
	assert.Equal(t, 7, archecs.ReadEvents(q)[0].Amount)
}

func TestPeekEventsSeesWriteBufferBeforeUpdate(t *testing.T) {
	q := archecs.NewEventQueue[damageEvent]()
	archecs.SendEvent(q, damageEvent{Amount: 3})

	peeked := archecs.PeekEvents(q)
	require.Len(t, peeked, 1)
	assert.Equal(t, 3, peeked[0].Amount)
	assert.Equal(t, 0, archecs.EventCount(q), "peek must not promote the write buffer")
}

func TestEventQueueDrainClearsReadBuffer(t *testing.T) {
	q := archecs.NewEventQueue[damageEvent]()
	archecs.SendEvent(q, damageEvent{Amount: 1})
	archecs.SendEvent(q, damageEvent{Amount: 2})
	archecs.UpdateEventQueue(q)

	drained := archecs.DrainEvents(q)
	assert.Len(t, drained, 2)
	assert.Equal(t, 0, archecs.EventCount(q))
}

func TestEventQueueClear(t *testing.T) {
	q := archecs.NewEventQueue[damageEvent]()
	archecs.SendEvent(q, damageEvent{Amount: 1})
	archecs.UpdateEventQueue(q)
	archecs.SendEvent(q, damageEvent{Amount: 2})

	archecs.ClearEventQueue(q)
	assert.Equal(t, 0, archecs.EventCount(q))
	archecs.UpdateEventQueue(q)
	assert.Equal(t, 0, archecs.EventCount(q))
}

func TestDestroyEventQueueEmptiesBuffers(t *testing.T) {
	q := archecs.NewEventQueue[damageEvent]()
	archecs.SendEvent(q, damageEvent{Amount: 1})
	archecs.UpdateEventQueue(q)
	require.Equal(t, 1, archecs.EventCount(q))

	archecs.DestroyEventQueue(q)
	assert.Equal(t, 0, archecs.EventCount(q))
	assert.Len(t, archecs.PeekEvents(q), 0)
}
