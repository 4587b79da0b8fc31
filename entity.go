package archecs

// minInitialCapacity is the floor applied to a World's requested initial
// entity capacity.
const minInitialCapacity = 64

// Entity is an (id, generation) handle identifying a logical object. It is
// a plain value: callers hold it, pass it around, and compare it, but never
// mutate its fields.
type Entity struct {
	ID         uint32
	Generation uint32
}

// deadEntity is the sentinel returned by spawn paths that recognize no
// registered component and therefore touch no world state.
var deadEntity = Entity{ID: 0, Generation: 0}

// entityLocation is the id→storage indirection record. One slot exists per
// allocated id, indexed by id.
type entityLocation struct {
	archetypeIndex int32
	row            int32
	generation     uint32
	alive          bool
}

// entityAllocator owns the id→location table and the free list of
// recycled ids. It never reorders or shrinks the locations table; ids are
// dense and grow only by doubling.
type entityAllocator struct {
	locations []entityLocation
	freeList  []uint32
	nextID    uint32
}

func newEntityAllocator(initialCapacity int) entityAllocator {
	if initialCapacity < minInitialCapacity {
		initialCapacity = minInitialCapacity
	}
	return entityAllocator{
		locations: make([]entityLocation, 0, initialCapacity),
	}
}

// ensureCapacity grows the locations table by doubling so that index id is
// addressable.
func (a *entityAllocator) ensureCapacity(id uint32) {
	if int(id) < len(a.locations) {
		return
	}
	newLen := int(id) + 1
	a.locations = extendSlice(a.locations, newLen-len(a.locations))
}

// allocate issues a fresh or recycled Entity handle.
func (a *entityAllocator) allocate() Entity {
	if n := len(a.freeList); n > 0 {
		id := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		loc := &a.locations[id]
		loc.alive = true
		return Entity{ID: id, Generation: loc.generation}
	}
	id := a.nextID
	a.nextID++
	a.ensureCapacity(id)
	a.locations[id] = entityLocation{archetypeIndex: -1, row: -1, generation: 0, alive: true}
	return Entity{ID: id, Generation: 0}
}

// release invalidates the handle for id, bumping its generation and
// pushing it onto the free list carrying the next generation to be issued.
func (a *entityAllocator) release(id uint32) {
	loc := &a.locations[id]
	loc.alive = false
	loc.generation++
	loc.archetypeIndex = -1
	loc.row = -1
	a.freeList = append(a.freeList, id)
}

// resolve returns the live location for e, or ok=false if the handle is
// stale, dead, or out of bounds.
func (a *entityAllocator) resolve(e Entity) (*entityLocation, bool) {
	if int(e.ID) >= len(a.locations) {
		return nil, false
	}
	loc := &a.locations[e.ID]
	if !loc.alive || loc.generation != e.Generation {
		return nil, false
	}
	return loc, true
}

// isAlive reports liveness without requiring an exact location pointer.
func (a *entityAllocator) isAlive(e Entity) bool {
	_, ok := a.resolve(e)
	return ok
}

// count returns the number of currently live entities. It is computed from
// nextID rather than len(locations): ReserveEntities grows locations ahead
// of use, so slots beyond nextID are neither alive nor free-listed yet.
func (a *entityAllocator) count() int {
	return int(a.nextID) - len(a.freeList)
}
