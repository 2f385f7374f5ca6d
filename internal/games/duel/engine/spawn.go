package engine

import "math/rand"

// DefaultSpawn4Prob is the chance that a spawned tile is a 4 instead of a 2.
const DefaultSpawn4Prob = 0.10

// Spawn places a 2 (or a 4 with probability p4) in a uniformly chosen empty
// cell. On a full board it does nothing and returns false.
func Spawn(b *Board, rng *rand.Rand, p4 float64) (Cell, bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return Cell{}, false
	}

	cell := empty[rng.Intn(len(empty))]

	value := 2
	if rng.Float64() < p4 {
		value = 4
	}

	b[cell.Row][cell.Col] = value
	return cell, true
}
