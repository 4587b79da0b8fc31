package archecs

import "reflect"

// command is one deferred mutation recorded by a CommandBuffer.
type command interface {
	apply(w *World)
}

type spawnCommand struct{ comps []any }

func (c spawnCommand) apply(w *World) {
	if len(c.comps) == 0 {
		return
	}
	w.SpawnComponents(c.comps...)
}

type despawnCommand struct{ entity Entity }

func (c despawnCommand) apply(w *World) {
	w.Despawn(c.entity)
}

type addComponentsCommand struct {
	entity Entity
	comps  []any
}

func (c addComponentsCommand) apply(w *World) {
	loc, ok := w.entities.resolve(c.entity)
	if !ok {
		return
	}
	for _, comp := range c.comps {
		t := reflect.TypeOf(comp)
		bit := w.components.register(t)
		target, row := w.addComponentBit(c.entity, loc, bit)
		col := target.columnFor(bit)
		addressable := reflect.New(t).Elem()
		addressable.Set(reflect.ValueOf(comp))
		memCopy(col.rowPtr(int(row)), addressable.Addr().UnsafePointer(), col.elemSize)
		loc, _ = w.entities.resolve(c.entity)
	}
}

type removeComponentsCommand struct {
	entity Entity
	mask   Mask
}

func (c removeComponentsCommand) apply(w *World) {
	c.mask.bitIndices(func(bit uint8) {
		loc, ok := w.entities.resolve(c.entity)
		if !ok {
			return
		}
		w.removeComponentBit(c.entity, loc, bit)
	})
}

// CommandBuffer records structural mutations for later, ordered replay —
// the deferred-write half of the query/mutate split: queries read the
// World directly, and mutations queue here until ApplyCommands runs,
// skipping failures (dead entities, components that were never present)
// silently, the way individual World mutators do.
type CommandBuffer struct {
	world *World
	cmds  []command
}

// NewCommandBuffer creates a buffer bound to w.
func NewCommandBuffer(w *World) *CommandBuffer {
	return &CommandBuffer{world: w}
}

// Spawn queues an entity creation carrying comps.
func (b *CommandBuffer) Spawn(comps ...any) {
	b.cmds = append(b.cmds, spawnCommand{comps: comps})
}

// Despawn queues e's destruction.
func (b *CommandBuffer) Despawn(e Entity) {
	b.cmds = append(b.cmds, despawnCommand{entity: e})
}

// AddComponents queues adding each of comps to e.
func (b *CommandBuffer) AddComponents(e Entity, comps ...any) {
	b.cmds = append(b.cmds, addComponentsCommand{entity: e, comps: comps})
}

// RemoveComponents queues removing every component bit set in mask from e.
func (b *CommandBuffer) RemoveComponents(e Entity, mask Mask) {
	b.cmds = append(b.cmds, removeComponentsCommand{entity: e, mask: mask})
}

// ApplyCommands replays every queued command against the bound World, in
// insertion order, then clears the buffer so it can be reused.
func (b *CommandBuffer) ApplyCommands() {
	for _, c := range b.cmds {
		c.apply(b.world)
	}
	b.cmds = b.cmds[:0]
}

// Len reports the number of commands currently queued.
func (b *CommandBuffer) Len() int {
	return len(b.cmds)
}

// Clear drops every queued command without applying them.
func (b *CommandBuffer) Clear() {
	b.cmds = b.cmds[:0]
}

// DestroyCommandBuffer drops every queued command and detaches the buffer
// from its World. Provided for symmetry with NewCommandBuffer; Go's GC
// reclaims the buffer itself once unreferenced.
func (b *CommandBuffer) DestroyCommandBuffer() {
	b.cmds = nil
	b.world = nil
}
