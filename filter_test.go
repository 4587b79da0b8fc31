package archecs_test

import (
	"testing"

	"github.com/solstice-games/archecs"
)

// go test -run ^TestFilterIteratesAllMatchingEntities$ . -count 1
func TestFilterIteratesAllMatchingEntities(t *testing.T) {
	w := archecs.NewWorld(8)
	archecs.Register[Position](w)
	archecs.Register[Velocity](w)

	archecs.Spawn(w, Position{X: 1})
	w.SpawnComponents(Position{X: 2}, Velocity{X: 20})
	w.SpawnComponents(Position{X: 3}, Velocity{X: 30})

	filter := archecs.NewFilter[Position](w)
	seen := 0
	for filter.Next() {
		seen++
		filter.Get().Y = 99
	}
	if seen != 3 {
		t.Fatalf("expected 3 entities carrying Position, got %d", seen)
	}
}

// go test -run ^TestFilterResetPicksUpNewArchetypes$ . -count 1
func TestFilterResetPicksUpNewArchetypes(t *testing.T) {
	w := archecs.NewWorld(8)
	archecs.Register[Position](w)
	archecs.Register[Health](w)

	archecs.Spawn(w, Position{})
	filter := archecs.NewFilter[Position](w)
	count := 0
	for filter.Next() {
		count++
	}
	if count != 1 {
		t.Fatalf("expected 1 match before new archetype, got %d", count)
	}

	w.SpawnComponents(Position{}, Health{})
	filter.Reset()
	count = 0
	for filter.Next() {
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 matches after a new Position-carrying archetype appeared, got %d", count)
	}
}
