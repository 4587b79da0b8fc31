package archecs

import "unsafe"

// Filter is a zero-allocation, cache-friendly iterator over every entity
// carrying a component of type T. It walks the query engine's cached
// Archetype list directly and indexes straight into the component column,
// avoiding the per-call bit lookup QueryBuilder.Iter pays for generality.
type Filter[T any] struct {
	world       *World
	matching    []int32
	curBase     unsafe.Pointer
	curEntities []Entity
	curArchSize int
	curIdx      int
	curMatchIdx int
	compSize    uintptr
	bit         uint8
}

// NewFilter creates a filter over every entity that has at least a
// component of type T. T is registered as a byproduct if it was not
// already.
func NewFilter[T any](w *World) *Filter[T] {
	bit := Register[T](w)
	f := &Filter[T]{
		world:    w,
		bit:      bit,
		compSize: w.components.bitToSize[bit],
	}
	f.Reset()
	return f
}

// Reset rewinds the filter to the start of its matching set, re-resolving
// the Archetype list in case new archetypes were created since the last
// pass.
func (f *Filter[T]) Reset() {
	f.matching = f.world.GetMatchingArchetypes(bit(f.bit), 0)
	f.curMatchIdx = 0
	f.curIdx = -1
	f.loadArchetype(0)
}

func (f *Filter[T]) loadArchetype(matchIdx int) {
	if matchIdx >= len(f.matching) {
		f.curArchSize = 0
		return
	}
	a := f.world.archetypes.get(f.matching[matchIdx])
	c := a.columnFor(f.bit)
	if c != nil && len(c.data) > 0 {
		f.curBase = unsafe.Pointer(&c.data[0])
	} else {
		f.curBase = nil
	}
	f.curEntities = a.entities
	f.curArchSize = a.len()
}

// Next advances to the next matching entity, returning false once the
// iteration is exhausted.
func (f *Filter[T]) Next() bool {
	f.curIdx++
	for f.curIdx >= f.curArchSize {
		f.curMatchIdx++
		if f.curMatchIdx >= len(f.matching) {
			return false
		}
		f.loadArchetype(f.curMatchIdx)
		f.curIdx = 0
	}
	return true
}

// Entity returns the current entity. Valid only after Next returns true.
func (f *Filter[T]) Entity() Entity {
	return f.curEntities[f.curIdx]
}

// Get returns a pointer to the current entity's component. Valid only
// after Next returns true.
func (f *Filter[T]) Get() *T {
	return (*T)(unsafe.Pointer(uintptr(f.curBase) + uintptr(f.curIdx)*f.compSize))
}
