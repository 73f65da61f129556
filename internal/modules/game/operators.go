// Package game implements the Eisert-Wilkins-Lewenstein quantum extension of
// the Prisoner's Dilemma: strategy operators, the entangling gate, the
// two-qubit circuit, a statevector sampler, and payoff aggregation.
package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/aristath/qdilemma/internal/qmath"
	"gonum.org/v1/gonum/mat"
)

// Canonical strategy labels.
const (
	StrategyCooperate = "Cooperate"
	StrategyDefect    = "Defect"
	StrategyQuantum   = "Quantum"
)

// Strategies lists the canonical labels in display order.
func Strategies() []string {
	return []string{StrategyCooperate, StrategyDefect, StrategyQuantum}
}

// NormalizeStrategy resolves a label (canonical name or single-letter
// shorthand, case-insensitive) to its canonical form. Unknown labels are an
// error everywhere; there is no silent identity fallback.
func NormalizeStrategy(label string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "C", "COOPERATE":
		return StrategyCooperate, nil
	case "D", "DEFECT":
		return StrategyDefect, nil
	case "Q", "QUANTUM":
		return StrategyQuantum, nil
	default:
		return "", fmt.Errorf("unknown strategy: %q", label)
	}
}

// StrategyOperator returns the 2×2 unitary bound to a strategy label:
// Cooperate = I, Defect = i·X, Quantum = i·Z. A fresh matrix is returned on
// every call so callers can never corrupt shared state.
func StrategyOperator(label string) (*mat.CDense, error) {
	canonical, err := NormalizeStrategy(label)
	if err != nil {
		return nil, err
	}
	switch canonical {
	case StrategyCooperate:
		return mat.NewCDense(2, 2, []complex128{
			1, 0,
			0, 1,
		}), nil
	case StrategyDefect:
		return mat.NewCDense(2, 2, []complex128{
			0, complex(0, 1),
			complex(0, 1), 0,
		}), nil
	default: // StrategyQuantum
		return mat.NewCDense(2, 2, []complex128{
			complex(0, 1), 0,
			0, complex(0, -1),
		}), nil
	}
}

// MaxGamma is the upper bound of the entanglement parameter (maximal
// entanglement). Gamma 0 is the separable, classically-equivalent regime.
const MaxGamma = math.Pi / 2

// gammaSlack absorbs float rounding from UI sliders that top out at 1.57.
const gammaSlack = 1e-9

// VerifyGates rebuilds every strategy operator and the entangling gate at a
// few γ values and checks unitarity. Run once at startup; a failure means the
// matrix kernels are broken and nothing downstream can be trusted.
func VerifyGates() error {
	for _, label := range Strategies() {
		op, err := StrategyOperator(label)
		if err != nil {
			return err
		}
		if !qmath.IsUnitary(op, 1e-12) {
			return fmt.Errorf("strategy operator %s is not unitary", label)
		}
	}
	for _, gamma := range []float64{0, MaxGamma / 2, MaxGamma} {
		j, err := EntanglingGate(gamma)
		if err != nil {
			return err
		}
		if !qmath.IsUnitary(j, 1e-9) {
			return fmt.Errorf("entangling gate at gamma=%v is not unitary", gamma)
		}
	}
	return nil
}

// EntanglingGate returns J(γ) = exp(i·γ·(X⊗X)/2), the two-qubit coupling
// unitary applied before and (as its adjoint) after the players' moves.
func EntanglingGate(gamma float64) (*mat.CDense, error) {
	if gamma < -gammaSlack || gamma > MaxGamma+gammaSlack {
		return nil, fmt.Errorf("gamma %v out of range [0, π/2]", gamma)
	}

	x := mat.NewCDense(2, 2, []complex128{0, 1, 1, 0})
	xx := qmath.Kron(x, x)

	j, err := qmath.Expm(qmath.Scale(complex(0, gamma/2), xx))
	if err != nil {
		return nil, fmt.Errorf("entangling gate: %w", err)
	}
	return j, nil
}
