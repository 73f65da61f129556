package game

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *Service {
	return NewSeededService(1234, zerolog.New(nil).Level(zerolog.Disabled))
}

func TestRunClassicalEquilibrium(t *testing.T) {
	// γ=0, Defect vs Defect: the classical Nash equilibrium, payoff (1,1)
	// regardless of shot count.
	svc := testService()

	result, err := svc.Run(StrategyDefect, StrategyDefect, 0, 4096)
	require.NoError(t, err)

	assert.Equal(t, 4096, result.Counts.Total())
	assert.Equal(t, 4096, result.Counts["11"])
	assert.InDelta(t, 1.0, result.PayoffAlice, 1e-12)
	assert.InDelta(t, 1.0, result.PayoffBob, 1e-12)
}

func TestRunQuantumEquilibriumEscapesDilemma(t *testing.T) {
	// γ=π/2, Quantum vs Quantum: the EWL prediction is that both players recover
	// the cooperative payoff (3,3). The final state is deterministic, so the
	// expectation is exact even under sampling.
	svc := testService()

	result, err := svc.Run(StrategyQuantum, StrategyQuantum, math.Pi/2, 4096)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, result.PayoffAlice, 0.1)
	assert.InDelta(t, 3.0, result.PayoffBob, 0.1)
	assert.Equal(t, 4096, result.Counts.Total())
}

func TestRunQuantumBeatsDefectorAtMaxEntanglement(t *testing.T) {
	// At maximal entanglement the Quantum strategy punishes a defector:
	// Alice collects the temptation payoff.
	svc := testService()

	result, err := svc.Run(StrategyQuantum, StrategyDefect, math.Pi/2, 4096)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, result.PayoffAlice, 0.1)
	assert.InDelta(t, 0.0, result.PayoffBob, 0.1)
}

func TestRunRejectsInvalidParameters(t *testing.T) {
	svc := testService()

	_, err := svc.Run("Minimax", StrategyDefect, 0, 100)
	require.Error(t, err)

	_, err = svc.Run(StrategyDefect, StrategyDefect, 3.0, 100)
	require.Error(t, err)

	_, err = svc.Run(StrategyDefect, StrategyDefect, 0, 0)
	require.Error(t, err)
}

func TestRunAcceptsShorthandLabels(t *testing.T) {
	svc := testService()

	result, err := svc.Run("D", "d", 0, 64)
	require.NoError(t, err)
	assert.Equal(t, StrategyDefect, result.StrategyA)
	assert.Equal(t, StrategyDefect, result.StrategyB)
	assert.NotEmpty(t, result.Diagram)
}
