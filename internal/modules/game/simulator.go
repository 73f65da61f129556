package game

import (
	"fmt"
	"math/cmplx"
	"math/rand/v2"
	"time"
)

// Counts maps a two-bit outcome string to the number of shots that produced
// it. Outcome strings are ordered (qubit-1 bit, qubit-0 bit) per the
// simulator's register convention, so an outcome reads (Bob's bit, Alice's
// bit). Only outcomes observed at least once are present; absent keys mean
// zero and are never an error.
type Counts map[string]int

// Total returns the sum of all outcome counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Simulator executes circuits against an in-process statevector backend.
// Each Sample call works on fresh state; nothing is shared between runs
// except the random source.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator returns a time-seeded simulator. Repeated runs with the same
// parameters yield statistically similar but not identical counts.
func NewSimulator() *Simulator {
	now := uint64(time.Now().UnixNano())
	return &Simulator{rng: rand.New(rand.NewPCG(now, now>>32))}
}

// NewSeededSimulator returns a deterministic simulator for tests.
func NewSeededSimulator(seed uint64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Sample executes the circuit shots times and returns the observed outcome
// counts. The counts always sum exactly to shots.
func (s *Simulator) Sample(c *Circuit, shots int) (Counts, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("shots must be positive, got %d", shots)
	}

	// Evolve |00⟩ through the composed circuit unitary.
	u := c.Unitary()
	var state [4]complex128
	for i := 0; i < 4; i++ {
		state[i] = u.At(i, 0)
	}

	// Born rule, renormalized to absorb float drift from the composition.
	var probs [4]float64
	total := 0.0
	for i, amp := range state {
		p := cmplx.Abs(amp)
		probs[i] = p * p
		total += probs[i]
	}
	if total <= 0 {
		return nil, fmt.Errorf("degenerate statevector: zero total probability")
	}
	for i := range probs {
		probs[i] /= total
	}

	// Draw categorical samples by cumulative probability inversion.
	counts := make(Counts)
	for shot := 0; shot < shots; shot++ {
		r := s.rng.Float64()
		cumulative := 0.0
		idx := len(probs) - 1
		for i, p := range probs {
			cumulative += p
			if r < cumulative {
				idx = i
				break
			}
		}
		counts[outcomeKey(idx)]++
	}
	return counts, nil
}

// outcomeKey formats a basis index as the (q1, q0) outcome string.
func outcomeKey(idx int) string {
	return fmt.Sprintf("%d%d", (idx>>1)&1, idx&1)
}
