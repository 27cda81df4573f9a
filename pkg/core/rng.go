package core

// RNG is a PCG-32 pseudorandom generator (O'Neill's permuted congruential
// generator: a 64-bit linear congruential state with an XSH-RR output
// permutation). Two streams constructed with the same (seed, seq) produce
// identical sequences, which is what gives the tiled renderer
// deterministic, thread-count-independent output (spec §5, §4.7).
type RNG struct {
	state uint64
	inc   uint64
}

const (
	pcgMultiplier uint64 = 6364136223846793005
	pcgDefaultInc uint64 = 1442695040888963407
)

// NewRNG constructs an independent stream selected by seed and sequence.
// Per spec §4.7, a tile's stream is seeded from (1, tileIndex).
func NewRNG(seed, seq uint64) *RNG {
	r := &RNG{state: 0, inc: (seq << 1) | 1}
	r.step()
	r.state += seed
	r.step()
	return r
}

func (r *RNG) step() {
	r.state = r.state*pcgMultiplier + r.inc
}

// Uint32 returns the next pseudorandom 32-bit value.
func (r *RNG) Uint32() uint32 {
	old := r.state
	r.step()
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Float64 returns a pseudorandom value in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

// Vec2 returns two independent uniform samples in [0, 1).
func (r *RNG) Vec2() (float64, float64) {
	return r.Float64(), r.Float64()
}

// IntN returns a pseudorandom integer in [0, n).
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Uint32() % uint32(n))
}
