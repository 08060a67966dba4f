package jdbtest

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/jdb/internal/format"
)

// RNG encapsulates a seeded random number generator for reproducible
// fixtures. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Ob returns a valid ob of a universe of obCount obs. obCount must be positive.
func (r *RNG) Ob(obCount int) format.Ob {
	return format.Ob(1 + r.Intn(obCount))
}

// Equations returns n equations over obCount obs, or nil if n is 0.
func (r *RNG) Equations(n, obCount int) []format.Eqn {
	if n == 0 {
		return nil
	}
	eqns := make([]format.Eqn, n)
	for i := range eqns {
		eqns[i] = format.Eqn{Lhs: r.Ob(obCount), Rhs: r.Ob(obCount), Result: r.Ob(obCount)}
	}
	return eqns
}

// Snapshot returns a random valid snapshot with 1..maxOb obs. Weights use
// distinct obs and names are unique.
func (r *RNG) Snapshot(maxOb int) *Snapshot {
	obCount := 1 + r.Intn(maxOb)

	s := New()
	s.Version.D = uint8(r.Intn(256))
	s.Age = uint64(r.Intn(1 << 30))
	s.ObCount = uint32(obCount)
	s.Apps = r.Equations(r.Intn(min(2*obCount, obCount*obCount)+1), obCount)
	s.Comps = r.Equations(r.Intn(obCount+1), obCount)
	s.Joins = r.Equations(r.Intn(obCount+1), obCount)

	// Three probabilities in (0.05, 0.3) leave atom_prob in (0.1, 0.85).
	s.AppProb = 0.05 + 0.25*r.Float64()
	s.CompProb = 0.05 + 0.25*r.Float64()
	s.JoinProb = 0.05 + 0.25*r.Float64()

	for ob := 1; ob <= obCount; ob++ {
		if r.Intn(2) == 0 {
			mass := float32(0.01 + 0.99*r.Float64())
			s.Weights = append(s.Weights, format.WeightRecord{Ob: uint32(ob), Mass: mass})
		}
		if r.Intn(3) == 0 {
			s.Names = append(s.Names, Name{Ob: uint32(ob), Name: fmt.Sprintf("ob%d", ob)})
		}
	}
	return s
}
