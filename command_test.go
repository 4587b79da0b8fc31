package archecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstice-games/archecs"
)

func TestCommandBufferDeferredSpawn(t *testing.T) {
	w := archecs.NewWorld(8)
	archecs.Register[Position](w)

	buf := archecs.NewCommandBuffer(w)
	buf.Spawn(Position{X: 1, Y: 1})
	buf.Spawn(Position{X: 2, Y: 2})
	require.Equal(t, 2, buf.Len())
	require.Equal(t, 0, w.EntityCount())

	buf.ApplyCommands()
	assert.Equal(t, 2, w.EntityCount())
	assert.Equal(t, 0, buf.Len())
}

func TestCommandBufferAddAndRemoveComponents(t *testing.T) {
	w := archecs.NewWorld(8)
	pBit := archecs.Register[Position](w)
	vBit := archecs.Register[Velocity](w)

	e := archecs.Spawn(w, Position{X: 1})

	buf := archecs.NewCommandBuffer(w)
	buf.AddComponents(e, Velocity{X: 9})
	buf.ApplyCommands()
	assert.True(t, archecs.HasComponent[Velocity](w, e))
	vel, ok := archecs.GetComponent[Velocity](w, e)
	require.True(t, ok)
	assert.Equal(t, float32(9), vel.X)

	buf.RemoveComponents(e, archecs.MaskOf(vBit))
	buf.ApplyCommands()
	assert.False(t, archecs.HasComponent[Velocity](w, e))
	assert.True(t, archecs.HasComponent[Position](w, e))
	_ = pBit
}

func TestCommandBufferClearDropsQueuedCommands(t *testing.T) {
	w := archecs.NewWorld(8)
	archecs.Register[Position](w)

	buf := archecs.NewCommandBuffer(w)
	buf.Spawn(Position{})
	buf.Clear()
	require.Equal(t, 0, buf.Len())

	buf.ApplyCommands()
	assert.Equal(t, 0, w.EntityCount())
}

func TestCommandBufferSkipsDeadEntitySilently(t *testing.T) {
	w := archecs.NewWorld(8)
	archecs.Register[Position](w)

	e := archecs.Spawn(w, Position{})
	w.Despawn(e)

	buf := archecs.NewCommandBuffer(w)
	buf.AddComponents(e, Velocity{X: 1})
	buf.Despawn(e)
	assert.NotPanics(t, func() { buf.ApplyCommands() })
}
