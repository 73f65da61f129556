package game

import (
	"fmt"
)

// PayoffPair is one cell of the classical Prisoner's Dilemma payoff matrix.
type PayoffPair struct {
	Alice float64 `json:"alice"`
	Bob   float64 `json:"bob"`
}

// payoffTable is the classical Prisoner's Dilemma matrix, keyed
// (Bob's bit, Alice's bit) with 0 = cooperate and 1 = defect. Because
// outcome strings are already ordered (qubit 1 = Bob, qubit 0 = Alice), a
// measured outcome maps onto the table key without reshuffling. The mapping
// is still always built from named bits, never by passing an outcome string
// through unexamined.
var payoffTable = map[string]PayoffPair{
	"00": {Alice: 3, Bob: 3}, // mutual cooperation
	"01": {Alice: 5, Bob: 0}, // Alice defects, Bob cooperates
	"10": {Alice: 0, Bob: 5}, // Alice cooperates, Bob defects
	"11": {Alice: 1, Bob: 1}, // mutual defection: the classical equilibrium
}

// PayoffTable returns a copy of the fixed payoff matrix.
func PayoffTable() map[string]PayoffPair {
	out := make(map[string]PayoffPair, len(payoffTable))
	for k, v := range payoffTable {
		out[k] = v
	}
	return out
}

// Payoff looks up the payoff pair for a joint action.
func Payoff(bobBit, aliceBit byte) (PayoffPair, error) {
	key := string([]byte{bobBit, aliceBit})
	pair, ok := payoffTable[key]
	if !ok {
		return PayoffPair{}, fmt.Errorf("invalid joint-action key %q", key)
	}
	return pair, nil
}

// ExpectedPayoffs computes the sampling-weighted expected payoff per player.
// The counts must sum exactly to shots; aggregation never divides by a
// total that differs from the shot count used for sampling. Outcomes absent
// from counts contribute zero.
func ExpectedPayoffs(counts Counts, shots int) (alice, bob float64, err error) {
	if shots <= 0 {
		return 0, 0, fmt.Errorf("shots must be positive, got %d", shots)
	}
	if total := counts.Total(); total != shots {
		return 0, 0, fmt.Errorf("outcome counts sum to %d, expected %d shots", total, shots)
	}

	for outcome, count := range counts {
		if len(outcome) != 2 {
			return 0, 0, fmt.Errorf("malformed outcome %q", outcome)
		}
		bobBit, aliceBit := outcome[0], outcome[1]
		pair, perr := Payoff(bobBit, aliceBit)
		if perr != nil {
			return 0, 0, fmt.Errorf("outcome %q: %w", outcome, perr)
		}
		alice += pair.Alice * float64(count)
		bob += pair.Bob * float64(count)
	}

	return alice / float64(shots), bob / float64(shots), nil
}
