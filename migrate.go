package archecs

import "unsafe"

// growBy appends n zero-initialized elements to the column, using the
// doubling-growth discipline shared with the entity allocator.
func (c *column) growBy(n int) {
	old := len(c.data)
	c.data = extendByteSlice(c.data, n*int(c.elemSize))
	clear(c.data[old:])
}

// rowPtr returns an unsafe pointer to row i's bytes, or nil for a
// zero-sized component (no bytes to address).
func (c *column) rowPtr(i int) unsafe.Pointer {
	if c.elemSize == 0 || len(c.data) == 0 {
		return nil
	}
	return unsafe.Pointer(uintptr(unsafe.Pointer(&c.data[0])) + uintptr(i)*c.elemSize)
}

func memCopy(dst, src unsafe.Pointer, size uintptr) {
	if size == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), size), unsafe.Slice((*byte)(src), size))
}

// moveRow implements the row migrator's *move* operation: append e's row
// to toArch (copying overlapping columns from fromArch), then swap-remove
// it from fromArch, and patch the location table. Columns present only in
// toArch are left zero-initialized; the caller overwrites them.
func (w *World) moveRow(e Entity, fromArch *Archetype, fromRow int32, toArch *Archetype) int32 {
	newRow := int32(len(toArch.entities))
	toArch.entities = append(toArch.entities, e)

	for i := range toArch.columns {
		tc := &toArch.columns[i]
		tc.growBy(1)
		if fc := fromArch.columnFor(tc.bit); fc != nil && len(fc.data) > 0 {
			memCopy(tc.rowPtr(int(newRow)), fc.rowPtr(int(fromRow)), tc.elemSize)
		}
	}

	w.removeRow(fromArch, fromRow)

	loc := &w.entities.locations[e.ID]
	loc.archetypeIndex = toArch.index
	loc.row = newRow
	loc.alive = true
	return newRow
}

// removeRow implements swap-remove: the row at index row is overwritten by
// the Archetype's last row (if it isn't already last), the moved row's
// owner has its location patched, and every column shrinks by one element.
func (w *World) removeRow(a *Archetype, row int32) {
	last := int32(len(a.entities) - 1)
	if row != last {
		movedEntity := a.entities[last]
		a.entities[row] = movedEntity
		for i := range a.columns {
			c := &a.columns[i]
			memCopy(c.rowPtr(int(row)), c.rowPtr(int(last)), c.elemSize)
		}
		w.entities.locations[movedEntity.ID].row = row
	}
	a.entities = a.entities[:last]
	for i := range a.columns {
		c := &a.columns[i]
		c.data = c.data[:len(c.data)-int(c.elemSize)]
	}
}

// typeInfosFor builds the typeInfo list for an Archetype's existing columns
// plus, optionally, one extra bit — used when find-or-create must build a
// brand new Archetype for a transition target.
func typeInfosFor(w *World, from *Archetype, extra uint8, hasExtra bool, without uint8, hasWithout bool) []typeInfo {
	infos := make([]typeInfo, 0, len(from.columns)+1)
	for _, c := range from.columns {
		if hasWithout && c.bit == without {
			continue
		}
		infos = append(infos, typeInfo{bit: c.bit, size: c.elemSize})
	}
	if hasExtra {
		infos = append(infos, typeInfo{bit: extra, size: w.components.bitToSize[extra]})
	}
	return infos
}

// addComponentBit resolves (lazily, with eager population on Archetype
// creation) the add-edge for bit and migrates e to the target Archetype; if
// e already has bit it stays where it is. No value is written here: the
// target Archetype and row are returned so the caller can write the typed
// value.
func (w *World) addComponentBit(e Entity, loc *entityLocation, bit uint8) (*Archetype, int32) {
	from := w.archetypes.get(loc.archetypeIndex)
	if from.mask.has(bit) {
		return from, loc.row
	}
	var target *Archetype
	if idx := from.addEdges[bit]; idx != noEdge {
		target = w.archetypes.get(idx)
	} else {
		newMask := from.mask.set(bit)
		infos := typeInfosFor(w, from, bit, true, 0, false)
		target = w.findOrCreateArchetype(newMask, infos)
		from.addEdges[bit] = target.index
		target.removeEdges[bit] = from.index
	}
	row := w.moveRow(e, from, loc.row, target)
	return target, row
}

// removeComponentBit resolves the remove-edge for bit and migrates e away
// from it. If the resulting mask is empty, despawns the entity instead,
// per spec contract. Returns ok=false only if e does not have the bit.
func (w *World) removeComponentBit(e Entity, loc *entityLocation, bit uint8) bool {
	from := w.archetypes.get(loc.archetypeIndex)
	if !from.mask.has(bit) {
		return false
	}
	newMask := from.mask.unset(bit)
	if newMask.isZero() {
		w.despawnLocated(e, loc)
		return true
	}
	var target *Archetype
	if idx := from.removeEdges[bit]; idx != noEdge {
		target = w.archetypes.get(idx)
	} else {
		infos := typeInfosFor(w, from, 0, false, bit, true)
		target = w.findOrCreateArchetype(newMask, infos)
		from.removeEdges[bit] = target.index
		target.addEdges[bit] = from.index
	}
	w.moveRow(e, from, loc.row, target)
	return true
}

// despawnLocated removes e's row from its Archetype and releases its
// handle. Both loc and the Archetype's entities/columns are left
// internally consistent for the swap-in neighbor.
func (w *World) despawnLocated(e Entity, loc *entityLocation) {
	a := w.archetypes.get(loc.archetypeIndex)
	w.removeRow(a, loc.row)
	w.entities.release(e.ID)
}
