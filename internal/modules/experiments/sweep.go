// Package experiments provides the shared logic behind both front ends: the
// entanglement sweep, the equilibrium table, PNG plotting, and the run
// history repository.
package experiments

import (
	"fmt"
	"time"

	"github.com/aristath/qdilemma/internal/modules/game"
)

// Sweep shapes used by the two drivers. The batch experiment samples more
// points at more shots; the dashboard favors responsiveness.
const (
	BatchSweepPoints = 25
	BatchSweepShots  = 4096

	DashboardSweepPoints = 20
	DashboardSweepShots  = 1024
)

// SweepPoint holds Alice's expected payoff at one γ for the two reference
// matchups: Defect vs Defect (classical baseline) and Quantum vs Defect.
type SweepPoint struct {
	Gamma     float64 `json:"gamma"`
	Classical float64 `json:"classical"`
	Quantum   float64 `json:"quantum"`
}

// SweepResult is a completed γ-sweep over [0, π/2].
type SweepResult struct {
	Points      []SweepPoint `json:"points"`
	Shots       int          `json:"shots"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// ProgressFunc is invoked after each sweep point completes.
type ProgressFunc func(index, total int, point SweepPoint)

// RunSweep evaluates both reference matchups across an evenly spaced γ grid
// from 0 to π/2 inclusive. Iterations run sequentially; progress may be nil.
func RunSweep(svc *game.Service, points, shots int, progress ProgressFunc) (*SweepResult, error) {
	if points < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 points, got %d", points)
	}
	if shots <= 0 {
		return nil, fmt.Errorf("shots must be positive, got %d", shots)
	}

	result := &SweepResult{
		Points: make([]SweepPoint, 0, points),
		Shots:  shots,
	}

	for i := 0; i < points; i++ {
		gamma := game.MaxGamma * float64(i) / float64(points-1)

		classical, err := svc.Run(game.StrategyDefect, game.StrategyDefect, gamma, shots)
		if err != nil {
			return nil, fmt.Errorf("sweep point %d (classical): %w", i, err)
		}
		quantum, err := svc.Run(game.StrategyQuantum, game.StrategyDefect, gamma, shots)
		if err != nil {
			return nil, fmt.Errorf("sweep point %d (quantum): %w", i, err)
		}

		point := SweepPoint{
			Gamma:     gamma,
			Classical: classical.PayoffAlice,
			Quantum:   quantum.PayoffAlice,
		}
		result.Points = append(result.Points, point)

		if progress != nil {
			progress(i, points, point)
		}
	}

	result.GeneratedAt = time.Now()
	return result, nil
}
