// Command ecsprof drives batch-spawn, Filter-iteration and batch-despawn
// workloads against a World under github.com/pkg/profile, recording an
// allocation (memory) profile of the storage engine's hot paths.
//
// Usage:
//
//	go build ./cmd/ecsprof
//	go tool pprof -http=":8000" -nodefraction=0.001 ./ecsprof mem.pprof
package main

import (
	"github.com/pkg/profile"
	"github.com/solstice-games/archecs"
)

type position struct {
	X int64
	Y int64
}

type velocity struct {
	X int64
	Y int64
}

func main() {
	const rounds = 50
	const iters = 10000
	const entities = 1000

	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for i := 0; i < rounds; i++ {
		w := archecs.NewWorld(numEntities)
		archecs.Register[position](w)
		archecs.Register[velocity](w)
		filter := archecs.NewFilter[position](w)

		for j := 0; j < iters; j++ {
			w.SpawnBatch(numEntities, position{}, velocity{})
			var toDespawn []archecs.Entity
			filter.Reset()
			for filter.Next() {
				toDespawn = append(toDespawn, filter.Entity())
				pos := filter.Get()
				pos.X++
				pos.Y++
			}
			w.DespawnBatch(toDespawn)
		}
	}
}
