package archecs

// MaxTagTypes bounds the number of distinct tag names a World can carry,
// mirroring the component mask's single-word width.
const MaxTagTypes = 64

// tagEntry holds one entity's tag mask alongside the generation it was
// last touched at, so a stale handle (an ID reused by a newer entity)
// reads back as having no tags rather than inheriting the old ones.
type tagEntry struct {
	mask       Mask
	generation uint32
}

// Tags is a sparse, name-keyed bitset store layered on top of a World's
// entities, independent of its component archetypes. Tag names are
// registered lazily, claiming the next bit index in registration order;
// there is no unregister_tag operation, so bit indices are never freed
// or reused once assigned.
type Tags struct {
	nameToBit map[string]uint8
	bitToName [MaxTagTypes]string
	nextBit   uint8
	perEntity []tagEntry
}

func newTags() *Tags {
	return &Tags{nameToBit: make(map[string]uint8, 8)}
}

// RegisterTag returns name's bit index, registering it if this is the
// first time name has been seen. Registration is idempotent: repeated
// calls with the same name return the same bit.
func (w *World) RegisterTag(name string) uint8 {
	t := w.tags
	if bit, ok := t.nameToBit[name]; ok {
		return bit
	}
	if int(t.nextBit) >= MaxTagTypes {
		panic("archecs: too many tag types registered")
	}
	bit := t.nextBit
	t.nextBit++
	t.nameToBit[name] = bit
	t.bitToName[bit] = name
	return bit
}

// TryGetTagBit returns name's bit without registering it.
func (w *World) TryGetTagBit(name string) (uint8, bool) {
	bit, ok := w.tags.nameToBit[name]
	return bit, ok
}

func (t *Tags) ensureEntity(id uint32, generation uint32) *tagEntry {
	if int(id) >= len(t.perEntity) {
		t.perEntity = extendSlice(t.perEntity, int(id)-len(t.perEntity)+1)
	}
	entry := &t.perEntity[id]
	if entry.generation != generation {
		entry.mask = 0
		entry.generation = generation
	}
	return entry
}

// AddTag registers name if necessary and sets it on e. Returns false if e
// is dead.
func (w *World) AddTag(e Entity, name string) bool {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return false
	}
	bit := w.RegisterTag(name)
	entry := w.tags.ensureEntity(e.ID, loc.generation)
	entry.mask = entry.mask.set(bit)
	return true
}

// RemoveTag clears name on e. Returns false if e is dead or name was
// never registered.
func (w *World) RemoveTag(e Entity, name string) bool {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return false
	}
	bit, ok := w.TryGetTagBit(name)
	if !ok {
		return false
	}
	entry := w.tags.ensureEntity(e.ID, loc.generation)
	entry.mask = entry.mask.unset(bit)
	return true
}

// HasTag reports whether e currently carries name. A dead or stale handle,
// or an unregistered name, reads back as false.
func (w *World) HasTag(e Entity, name string) bool {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return false
	}
	bit, ok := w.TryGetTagBit(name)
	if !ok {
		return false
	}
	t := w.tags
	if int(e.ID) >= len(t.perEntity) {
		return false
	}
	entry := &t.perEntity[e.ID]
	if entry.generation != loc.generation {
		return false
	}
	return entry.mask.has(bit)
}

// ClearEntityTags removes every tag currently set on e.
func (w *World) ClearEntityTags(e Entity) bool {
	loc, ok := w.entities.resolve(e)
	if !ok {
		return false
	}
	t := w.tags
	if int(e.ID) < len(t.perEntity) {
		t.perEntity[e.ID] = tagEntry{generation: loc.generation}
	}
	return true
}

// QueryTag returns every currently live entity carrying name.
func (w *World) QueryTag(name string) []Entity {
	bit, ok := w.TryGetTagBit(name)
	if !ok {
		return nil
	}
	var out []Entity
	t := w.tags
	for id := range t.perEntity {
		entry := &t.perEntity[id]
		if !entry.mask.has(bit) {
			continue
		}
		e := Entity{ID: uint32(id), Generation: entry.generation}
		if w.entities.isAlive(e) {
			out = append(out, e)
		}
	}
	return out
}

// TagCount returns the number of currently live entities carrying name.
func (w *World) TagCount(name string) int {
	return len(w.QueryTag(name))
}

// DestroyTags drops every registered tag and per-entity membership by
// replacing the World's Tags with an empty one. Provided for symmetry with
// RegisterTag; tag operations remain usable afterwards, and names
// registered from then on claim bits again starting at 0.
func (w *World) DestroyTags() {
	w.tags = newTags()
}
