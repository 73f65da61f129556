package game

import (
	"fmt"
	"strings"

	"github.com/aristath/qdilemma/internal/qmath"
	"gonum.org/v1/gonum/mat"
)

// Circuit is the fixed EWL topology over two qubits: entangle with J(γ),
// apply Alice's operator to qubit 0 and Bob's to qubit 1, disentangle with
// J†(γ), measure both qubits. Alice always plays qubit 0, Bob qubit 1.
// A circuit is built fresh per run and never mutated afterwards.
type Circuit struct {
	StrategyA string
	StrategyB string
	Gamma     float64

	unitary *mat.CDense // composed 4×4 action of the whole circuit
}

// NewCircuit validates both strategy labels and γ, then composes the
// circuit's unitary. Basis index convention: amplitude index b = 2·q1 + q0,
// so a single-qubit operator A on Alice's qubit lifts to I⊗A and Bob's B
// lifts to B⊗I.
func NewCircuit(strategyA, strategyB string, gamma float64) (*Circuit, error) {
	opA, err := StrategyOperator(strategyA)
	if err != nil {
		return nil, fmt.Errorf("alice: %w", err)
	}
	opB, err := StrategyOperator(strategyB)
	if err != nil {
		return nil, fmt.Errorf("bob: %w", err)
	}
	canonicalA, _ := NormalizeStrategy(strategyA)
	canonicalB, _ := NormalizeStrategy(strategyB)

	j, err := EntanglingGate(gamma)
	if err != nil {
		return nil, err
	}
	jDag := qmath.Adjoint(j)

	alice := qmath.Kron(qmath.Identity(2), opA)
	bob := qmath.Kron(opB, qmath.Identity(2))

	// Applied left to right: J, strategies, J†.
	unitary := qmath.Mul(jDag, qmath.Mul(bob, qmath.Mul(alice, j)))

	return &Circuit{
		StrategyA: canonicalA,
		StrategyB: canonicalB,
		Gamma:     gamma,
		unitary:   unitary,
	}, nil
}

// Unitary returns the composed 4×4 circuit unitary. Callers must not mutate
// the returned matrix.
func (c *Circuit) Unitary() *mat.CDense {
	return c.unitary
}

// Diagram renders a text drawing of the circuit for the dashboard.
func (c *Circuit) Diagram() string {
	width := len(c.StrategyA)
	if len(c.StrategyB) > width {
		width = len(c.StrategyB)
	}

	row := func(qubit, player, strategy string) string {
		return fmt.Sprintf("%s (%s): ──[ J(γ=%.3f) ]──[ %-*s ]──[ J† ]──[ M ]",
			qubit, player, c.Gamma, width, strategy)
	}

	var b strings.Builder
	b.WriteString(row("q0", "Alice", c.StrategyA))
	b.WriteString("\n")
	b.WriteString(row("q1", "Bob  ", c.StrategyB))
	return b.String()
}
