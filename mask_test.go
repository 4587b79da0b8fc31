package archecs_test

import (
	"testing"

	"github.com/solstice-games/archecs"
)

// go test -run ^TestMaskOfGivesDistinctDisjointMasks$ . -count 1
func TestMaskOfGivesDistinctDisjointMasks(t *testing.T) {
	w := archecs.NewWorld(8)
	pBit := archecs.Register[Position](w)
	vBit := archecs.Register[Velocity](w)

	pMask := archecs.MaskOf(pBit)
	vMask := archecs.MaskOf(vBit)

	if pMask == vMask {
		t.Fatal("expected distinct component bits to produce distinct masks")
	}
	if pMask&vMask != 0 {
		t.Fatal("expected distinct component masks to not overlap")
	}
}

// go test -run ^TestRegisterIsIdempotent$ . -count 1
func TestRegisterIsIdempotent(t *testing.T) {
	w := archecs.NewWorld(8)
	a := archecs.Register[Position](w)
	b := archecs.Register[Position](w)
	if a != b {
		t.Fatalf("expected repeated Register[Position] to return the same bit, got %d and %d", a, b)
	}
}

// go test -run ^TestTryGetBitUnregistered$ . -count 1
func TestTryGetBitUnregistered(t *testing.T) {
	w := archecs.NewWorld(8)
	if _, ok := archecs.TryGetBit[Health](w); ok {
		t.Fatal("expected TryGetBit to report false for a never-registered type")
	}
}
