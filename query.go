package archecs

import "unsafe"

// queryKey identifies a cached (include, exclude) query. Each mask is a
// full 64-bit word, so the pair is kept as a two-field struct key rather
// than packed into one word as include<<0|exclude<<32.
type queryKey struct {
	include Mask
	exclude Mask
}

// cachedQuery is a live, incrementally maintained list of Archetype
// indices matching one (include, exclude) pair.
type cachedQuery struct {
	key     queryKey
	indices []int32
}

// queryEngine owns every cached query result for a World. Entries are
// appended to, never invalidated: see onArchetypeCreated.
type queryEngine struct {
	cache map[queryKey]*cachedQuery
	order []*cachedQuery
}

func newQueryEngine() queryEngine {
	return queryEngine{cache: make(map[queryKey]*cachedQuery, 8)}
}

func matches(a *Archetype, include, exclude Mask) bool {
	if !a.mask.includesAll(include) {
		return false
	}
	return exclude == 0 || !a.mask.intersects(exclude)
}

// GetMatchingArchetypes resolves (include, exclude) to the live list of
// matching Archetype indices, owned by the world and cached across calls.
func (w *World) GetMatchingArchetypes(include, exclude Mask) []int32 {
	key := queryKey{include: include, exclude: exclude}
	if cq, ok := w.queries.cache[key]; ok {
		return cq.indices
	}
	cq := &cachedQuery{key: key}
	for _, a := range w.archetypes.archetypes {
		if matches(a, include, exclude) {
			cq.indices = append(cq.indices, a.index)
		}
	}
	w.queries.cache[key] = cq
	w.queries.order = append(w.queries.order, cq)
	return cq.indices
}

// onArchetypeCreated is the query cache's maintenance hook: it walks every
// live cache entry and appends the new Archetype's index if it satisfies
// that entry's mask test, preserving outstanding result slices' validity.
func (w *World) onArchetypeCreated(a *Archetype) {
	for _, cq := range w.queries.order {
		if matches(a, cq.key.include, cq.key.exclude) {
			cq.indices = append(cq.indices, a.index)
		}
	}
}

// QueryCount sums the number of entities across every Archetype matching
// (include, exclude).
func (w *World) QueryCount(include, exclude Mask) int {
	n := 0
	for _, idx := range w.GetMatchingArchetypes(include, exclude) {
		n += w.archetypes.get(idx).len()
	}
	return n
}

// QueryEntities concatenates the entities of every matching Archetype into
// a freshly allocated slice.
func (w *World) QueryEntities(include, exclude Mask) []Entity {
	indices := w.GetMatchingArchetypes(include, exclude)
	out := make([]Entity, 0, w.QueryCount(include, exclude))
	for _, idx := range indices {
		out = append(out, w.archetypes.get(idx).entities...)
	}
	return out
}

// QueryFirst returns the first entity of the first non-empty matching
// Archetype, or the dead sentinel and false if no entity matches.
func (w *World) QueryFirst(include, exclude Mask) (Entity, bool) {
	for _, idx := range w.GetMatchingArchetypes(include, exclude) {
		a := w.archetypes.get(idx)
		if a.len() > 0 {
			return a.entities[0], true
		}
	}
	return deadEntity, false
}

// ForEach invokes fn once per entity in every Archetype matching
// (include, exclude), in Archetype-creation then insertion order.
func (w *World) ForEach(include, exclude Mask, fn func(e Entity)) {
	for _, idx := range w.GetMatchingArchetypes(include, exclude) {
		a := w.archetypes.get(idx)
		for _, e := range a.entities {
			fn(e)
		}
	}
}

// ForEachTable invokes fn once per matching Archetype, handing the
// Archetype itself to the callback for bulk column access.
func (w *World) ForEachTable(include, exclude Mask, fn func(a *Archetype)) {
	for _, idx := range w.GetMatchingArchetypes(include, exclude) {
		fn(w.archetypes.get(idx))
	}
}

// Column returns a typed, contiguous view over Archetype a's component T
// column, by registered bit. Returns an empty slice if T is unknown, the
// column is absent, or the Archetype has zero rows. The view is a borrow:
// it must not be held across any structural mutation.
func Column[T any](w *World, a *Archetype) []T {
	bit, ok := maskBitOf[T](w)
	if !ok {
		return nil
	}
	return columnByBit[T](a, bit)
}

// ColumnByType performs the same lookup as Column but by linear scan over
// the Archetype's columns — a convenience variant, not on the hot path.
func ColumnByType[T any](w *World, a *Archetype) []T {
	bit, ok := maskBitOf[T](w)
	if !ok {
		return nil
	}
	for _, c := range a.columns {
		if c.bit == bit {
			return columnBytesAsSlice[T](c)
		}
	}
	return nil
}

func columnByBit[T any](a *Archetype, bit uint8) []T {
	c := a.columnFor(bit)
	if c == nil {
		return nil
	}
	return columnBytesAsSlice[T](*c)
}

func columnBytesAsSlice[T any](c column) []T {
	n := columnLen(c)
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&c.data[0])), n)
}

func columnLen(c column) int {
	if c.elemSize == 0 {
		return 0
	}
	return len(c.data) / int(c.elemSize)
}

// ColumnUnchecked returns a typed view over bit's column in a, eliding the
// nil/bounds checks Column performs. The caller must guarantee bit is
// present in a's mask and a is non-empty; violating this is undefined
// behavior by convention, not a core contract.
func ColumnUnchecked[T any](a *Archetype, bit uint8) []T {
	c := a.columns[a.columnBits[bit]]
	return unsafe.Slice((*T)(unsafe.Pointer(&c.data[0])), len(c.data)/int(c.elemSize))
}
