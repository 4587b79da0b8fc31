package archecs

import (
	"reflect"
	"slices"
	"unsafe"
)

// World is the registry root: it owns every Archetype, column, location,
// index, and the query cache. There is no state shared across Worlds.
type World struct {
	entities   entityAllocator
	archetypes archetypeStore
	components componentRegistry
	queries    queryEngine
	tags       *Tags
}

// NewWorld creates a fresh, self-contained World. initialCapacity is a
// hint for pre-sizing the entity table; it is floored at 64. The
// mask-0 archetype is never materialized: an entity with no components
// has nowhere to live, so spawn calls that would produce one return the
// dead sentinel instead (see spawnFromDescs).
func NewWorld(initialCapacity int) *World {
	return &World{
		entities:   newEntityAllocator(initialCapacity),
		archetypes: newArchetypeStore(),
		components: newComponentRegistry(),
		queries:    newQueryEngine(),
		tags:       newTags(),
	}
}

// DestroyWorld is a no-op placeholder matching the library surface's
// create/destroy symmetry; Go's GC reclaims a World once it is
// unreferenced, so there is nothing to release explicitly.
func (w *World) DestroyWorld() {}

// EntityCount returns the number of currently live entities.
func (w *World) EntityCount() int {
	return w.entities.count()
}

// ReserveEntities pre-grows the entity table so that count further
// allocations do not need to reallocate.
func (w *World) ReserveEntities(count int) {
	target := w.entities.nextID + uint32(count)
	w.entities.ensureCapacity(target)
}

// IsAlive reports whether e refers to a currently live entity.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// maskBitOf returns the bit registered for T, or ok=false if T was never
// registered. It never registers T; callers that need auto-registration
// use Register.
func maskBitOf[T any](w *World) (uint8, bool) {
	return TryGetBit[T](w)
}

// spawnDesc is one component payload supplied to a spawn call.
type spawnDesc struct {
	bit   uint8
	size  uintptr
	value unsafe.Pointer
}

func describeComponent[T any](w *World, v *T) (spawnDesc, bool) {
	id, ok := maskBitOf[T](w)
	if !ok {
		return spawnDesc{}, false
	}
	return spawnDesc{bit: id, size: w.components.bitToSize[id], value: unsafe.Pointer(v)}, true
}

// Spawn creates an entity carrying a single registered component value.
// For multiple components of distinct types, use World.SpawnComponents.
func Spawn[T any](w *World, v T) Entity {
	desc, ok := describeComponent(w, &v)
	if !ok {
		return deadEntity
	}
	return w.spawnFromDescs([]spawnDesc{desc})
}

// SpawnComponents creates an entity carrying every one of comps whose type
// has been registered; components of unregistered types are silently
// ignored when computing the mask. If none of comps is recognized, returns
// the dead sentinel handle without touching world state.
func (w *World) SpawnComponents(comps ...any) Entity {
	descs := make([]spawnDesc, 0, len(comps))
	for _, c := range comps {
		t := reflect.TypeOf(c)
		bit, ok := w.components.tryBit(t)
		if !ok {
			continue
		}
		addressable := reflect.New(t).Elem()
		addressable.Set(reflect.ValueOf(c))
		descs = append(descs, spawnDesc{bit: bit, size: w.components.bitToSize[bit], value: addressable.Addr().UnsafePointer()})
	}
	if len(descs) == 0 {
		return deadEntity
	}
	return w.spawnFromDescs(descs)
}

// SpawnBatch creates n entities, each carrying a copy of the same
// registered components. Equivalent to calling SpawnComponents n times but
// reserves column and entity capacity up front.
func (w *World) SpawnBatch(n int, comps ...any) []Entity {
	if n <= 0 {
		return nil
	}
	descs := make([]spawnDesc, 0, len(comps))
	var mask Mask
	for _, c := range comps {
		t := reflect.TypeOf(c)
		bit, ok := w.components.tryBit(t)
		if !ok {
			continue
		}
		addressable := reflect.New(t).Elem()
		addressable.Set(reflect.ValueOf(c))
		descs = append(descs, spawnDesc{bit: bit, size: w.components.bitToSize[bit], value: addressable.Addr().UnsafePointer()})
		mask = mask.set(bit)
	}
	if len(descs) == 0 {
		ents := make([]Entity, n)
		for i := range ents {
			ents[i] = deadEntity
		}
		return ents
	}
	infos := w.typeInfosForMask(mask)
	a := w.findOrCreateArchetype(mask, infos)
	ents := w.appendZeroRows(a, n)
	startRow := len(a.entities) - n
	for _, d := range descs {
		c := a.columnFor(d.bit)
		for i := 0; i < n; i++ {
			memCopy(c.rowPtr(startRow+i), d.value, d.size)
		}
	}
	return ents
}

// spawnFromDescs materializes an entity carrying descs. An empty-mask
// archetype is not representable, so the caller must guarantee descs is
// non-empty; callers that can't (SpawnComponents, CommandBuffer.Spawn with
// no components) return the dead sentinel before reaching here.
func (w *World) spawnFromDescs(descs []spawnDesc) Entity {
	var mask Mask
	for _, d := range descs {
		mask = mask.set(d.bit)
	}
	infos := make([]typeInfo, len(descs))
	for i, d := range descs {
		infos[i] = typeInfo{bit: d.bit, size: d.size}
	}
	a := w.findOrCreateArchetype(mask, infos)

	e := w.entities.allocate()
	row := int32(len(a.entities))
	a.entities = append(a.entities, e)
	for i := range a.columns {
		c := &a.columns[i]
		c.growBy(1)
	}
	for _, d := range descs {
		c := a.columnFor(d.bit)
		memCopy(c.rowPtr(int(row)), d.value, d.size)
	}
	loc := &w.entities.locations[e.ID]
	loc.archetypeIndex = a.index
	loc.row = row
	return e
}

// SpawnWithMask materializes n entities sharing mask with zero-initialized
// columns, for callers who will write column data directly afterward. A
// zero mask yields dead sentinel handles and touches no world state.
func (w *World) SpawnWithMask(mask Mask, n int) []Entity {
	if mask.isZero() {
		return make([]Entity, max(n, 0))
	}
	infos := w.typeInfosForMask(mask)
	a := w.findOrCreateArchetype(mask, infos)
	return w.appendZeroRows(a, n)
}

// SpawnBatchWithInit zero-allocates n rows for mask, then invokes init once
// per row index so the caller can populate column data directly. A zero
// mask yields dead sentinel handles, touches no world state, and never
// calls init.
func (w *World) SpawnBatchWithInit(mask Mask, n int, init func(w *World, a *Archetype, row int)) []Entity {
	if mask.isZero() {
		return make([]Entity, max(n, 0))
	}
	infos := w.typeInfosForMask(mask)
	a := w.findOrCreateArchetype(mask, infos)
	ents := w.appendZeroRows(a, n)
	base := len(a.entities) - n
	for i := 0; i < n; i++ {
		init(w, a, base+i)
	}
	return ents
}

func (w *World) typeInfosForMask(mask Mask) []typeInfo {
	var infos []typeInfo
	mask.bitIndices(func(id uint8) {
		infos = append(infos, typeInfo{bit: id, size: w.components.bitToSize[id]})
	})
	return infos
}

func (w *World) appendZeroRows(a *Archetype, n int) []Entity {
	if n <= 0 {
		return nil
	}
	ents := make([]Entity, n)
	startRow := len(a.entities)
	a.entities = slices.Grow(a.entities, n)
	for i := range a.columns {
		a.columns[i].growBy(n)
	}
	for i := 0; i < n; i++ {
		e := w.entities.allocate()
		a.entities = append(a.entities, e)
		loc := &w.entities.locations[e.ID]
		loc.archetypeIndex = a.index
		loc.row = int32(startRow + i)
		ents[i] = e
	}
	return ents
}

// Despawn releases e. Returns false if e was already dead or invalid.
func (w *World) Despawn(e Entity) bool {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return false
	}
	w.despawnLocated(e, loc)
	return true
}

// DespawnBatch despawns every entity in es, skipping any already dead.
func (w *World) DespawnBatch(es []Entity) {
	for _, e := range es {
		w.Despawn(e)
	}
}

// GetComponent returns a pointer to entity e's component of type T, or
// nil, false if e is dead, T was never registered, or e lacks T.
func GetComponent[T any](w *World, e Entity) (*T, bool) {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return nil, false
	}
	bit, ok := maskBitOf[T](w)
	if !ok {
		return nil, false
	}
	a := w.archetypes.get(loc.archetypeIndex)
	c := a.columnFor(bit)
	if c == nil {
		return nil, false
	}
	return (*T)(c.rowPtr(int(loc.row))), true
}

// HasComponent reports whether e currently carries a component of type T.
func HasComponent[T any](w *World, e Entity) bool {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return false
	}
	bit, ok := maskBitOf[T](w)
	if !ok {
		return false
	}
	return w.archetypes.get(loc.archetypeIndex).mask.has(bit)
}

// HasComponents reports whether e carries every component bit set in mask.
func (w *World) HasComponents(e Entity, mask Mask) bool {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return false
	}
	return w.archetypes.get(loc.archetypeIndex).mask.includesAll(mask)
}

// ComponentMask returns e's full component mask, or ok=false if e is dead.
func (w *World) ComponentMask(e Entity) (Mask, bool) {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return 0, false
	}
	return w.archetypes.get(loc.archetypeIndex).mask, true
}

// SetComponent overwrites e's component of type T if present, or adds it
// (migrating e to a new Archetype) if absent. Returns false if e is dead.
// T is registered on first use if it was not already.
func SetComponent[T any](w *World, e Entity, v T) bool {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return false
	}
	bit := Register[T](w)
	target, row := w.addComponentBit(e, loc, bit)
	c := target.columnFor(bit)
	*(*T)(c.rowPtr(int(row))) = v
	return true
}

// AddComponent adds a component of type T with value v to e. If e already
// has T, it is overwritten in place. Returns false if e is dead.
func AddComponent[T any](w *World, e Entity, v T) bool {
	return SetComponent(w, e, v)
}

// RemoveComponent removes e's component of type T. Returns false (no-op) if
// e is dead, T was never registered, or e does not have T, and despawns e
// if the resulting mask becomes empty.
func RemoveComponent[T any](w *World, e Entity) bool {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return false
	}
	bit, ok := maskBitOf[T](w)
	if !ok {
		return false
	}
	if !w.archetypes.get(loc.archetypeIndex).mask.has(bit) {
		return false
	}
	w.removeComponentBit(e, loc, bit)
	return true
}
