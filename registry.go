package archecs

import (
	"fmt"
	"reflect"
)

// componentRegistry maps a component type to a stable bit index and
// records its byte size. It is owned by exactly one World; there is no
// package-level registry, so every World is self-contained.
type componentRegistry struct {
	typeToBit map[reflect.Type]uint8
	bitToType [MaxComponentTypes]reflect.Type
	bitToSize [MaxComponentTypes]uintptr
	nextBit   uint8
}

func newComponentRegistry() componentRegistry {
	return componentRegistry{
		typeToBit: make(map[reflect.Type]uint8, 16),
	}
}

// register is idempotent: registering the same type twice returns the bit
// assigned the first time. Registering a 65th distinct type is a fatal
// contract violation, per spec.
func (r *componentRegistry) register(t reflect.Type) uint8 {
	if id, ok := r.typeToBit[t]; ok {
		return id
	}
	if int(r.nextBit) >= MaxComponentTypes {
		panic(fmt.Sprintf("archecs: cannot register component %s: maximum of %d component types reached", t, MaxComponentTypes))
	}
	id := r.nextBit
	r.typeToBit[t] = id
	r.bitToType[id] = t
	r.bitToSize[id] = t.Size()
	r.nextBit++
	return id
}

// tryBit returns the bit assigned to t, or ok=false if t was never
// registered.
func (r *componentRegistry) tryBit(t reflect.Type) (uint8, bool) {
	id, ok := r.typeToBit[t]
	return id, ok
}

// Register interns a component type T against the world and returns its
// stable mask bit. Idempotent across repeated calls for the same T.
func Register[T any](w *World) uint8 {
	return w.components.register(typeFor[T]())
}

// TryGetBit returns the mask bit assigned to T, or ok=false if T has never
// been registered on this world.
func TryGetBit[T any](w *World) (uint8, bool) {
	return w.components.tryBit(typeFor[T]())
}

// typeFor is equivalent to reflect.TypeFor[T](), reimplemented for
// compatibility with toolchains older than go1.22.
func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
