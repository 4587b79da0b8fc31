package archecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstice-games/archecs"
)

func TestScheduleRunsSystemsInOrder(t *testing.T) {
	w := archecs.NewWorld(8)
	archecs.Register[Position](w)
	e := archecs.Spawn(w, Position{X: 1})

	var order []string
	sched := archecs.NewSchedule(w)
	sched.AddSystem(func(w *archecs.World) {
		order = append(order, "move")
		pos, _ := archecs.GetComponent[Position](w, e)
		pos.X += 1
	})
	sched.AddReadSystem(func(w *archecs.World) {
		order = append(order, "log")
	})

	require.Equal(t, 2, sched.Len())
	sched.RunSchedule()

	assert.Equal(t, []string{"move", "log"}, order)
	pos, _ := archecs.GetComponent[Position](w, e)
	assert.Equal(t, float32(2), pos.X)
}

func TestDestroyScheduleClearsSystems(t *testing.T) {
	w := archecs.NewWorld(8)
	sched := archecs.NewSchedule(w)
	sched.AddSystem(func(w *archecs.World) {})
	sched.DestroySchedule()
	assert.Equal(t, 0, sched.Len())
}
