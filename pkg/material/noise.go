package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

const (
	noisePointCount = 256
	noiseScale      = 4.0
)

// CellNoise is a blocky value noise: space is divided into lattice cells of
// size 1/4 and every cell gets a pseudo-random value in [0, 1).
type CellNoise struct {
	randomFloats [noisePointCount]float64
	permX        [noisePointCount]int
	permY        [noisePointCount]int
	permZ        [noisePointCount]int
}

// NewCellNoise builds the lookup tables from the given generator
func NewCellNoise(random *rand.Rand) *CellNoise {
	n := &CellNoise{}
	for i := range n.randomFloats {
		n.randomFloats[i] = random.Float64()
	}
	generatePerm(&n.permX, random)
	generatePerm(&n.permY, random)
	generatePerm(&n.permZ, random)
	return n
}

// generatePerm fills perm with a shuffled identity permutation
func generatePerm(perm *[noisePointCount]int, random *rand.Rand) {
	for i := range perm {
		perm[i] = i
	}
	for i := noisePointCount - 1; i > 0; i-- {
		target := random.Intn(i + 1)
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Value returns the noise value of the lattice cell containing point
func (n *CellNoise) Value(uv core.Vec2, point core.Vec3) float64 {
	i := latticeIndex(point.X)
	j := latticeIndex(point.Y)
	k := latticeIndex(point.Z)
	return n.randomFloats[n.permX[i]^n.permY[j]^n.permZ[k]]
}

// latticeIndex wraps a coordinate into [0, noisePointCount)
func latticeIndex(x float64) int {
	v := math.Mod(noiseScale*x, noisePointCount)
	if v < 0 {
		v += noisePointCount
	}
	// NaN and Inf collapse to cell 0
	if !(v >= 0 && v < noisePointCount) {
		return 0
	}
	return int(v) & (noisePointCount - 1)
}
