package experiments

import (
	"fmt"
	"strings"

	"github.com/aristath/qdilemma/internal/modules/game"
)

// EquilibriumTable is the full strategy-vs-strategy payoff table at maximal
// entanglement. Payoffs[i][j] is Alice's expected payoff when Alice plays
// Strategies[i] against Bob's Strategies[j].
type EquilibriumTable struct {
	Strategies []string    `json:"strategies"`
	Payoffs    [][]float64 `json:"payoffs"`
	Gamma      float64     `json:"gamma"`
	Shots      int         `json:"shots"`
}

// RunEquilibrium simulates every matchup at γ = π/2.
func RunEquilibrium(svc *game.Service, shots int) (*EquilibriumTable, error) {
	strategies := game.Strategies()

	table := &EquilibriumTable{
		Strategies: strategies,
		Payoffs:    make([][]float64, len(strategies)),
		Gamma:      game.MaxGamma,
		Shots:      shots,
	}

	for i, alice := range strategies {
		table.Payoffs[i] = make([]float64, len(strategies))
		for j, bob := range strategies {
			result, err := svc.Run(alice, bob, game.MaxGamma, shots)
			if err != nil {
				return nil, fmt.Errorf("matchup %s vs %s: %w", alice, bob, err)
			}
			table.Payoffs[i][j] = result.PayoffAlice
		}
	}

	return table, nil
}

// Format renders the table for stdout in the batch driver.
func (t *EquilibriumTable) Format() string {
	var b strings.Builder
	rule := strings.Repeat("-", 56)

	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("%-12s |", "Alice \\ Bob"))
	for _, s := range t.Strategies {
		b.WriteString(fmt.Sprintf(" %-9s |", s))
	}
	b.WriteString("\n" + rule + "\n")

	for i, alice := range t.Strategies {
		b.WriteString(fmt.Sprintf("%-12s |", alice))
		for j := range t.Strategies {
			b.WriteString(fmt.Sprintf(" %9.1f |", t.Payoffs[i][j]))
		}
		b.WriteString("\n")
	}
	b.WriteString(rule)

	return b.String()
}
