package experiments

import (
	"fmt"
	"sync"

	"github.com/aristath/qdilemma/internal/modules/game"
	"github.com/rs/zerolog"
)

// Service ties the game runner to sweep execution and run history. It also
// caches the latest sweep so the dashboard can show a curve without waiting,
// invalidated simply by the next sweep replacing it.
type Service struct {
	game *game.Service
	repo *RunRepository // nil when history is disabled
	log  zerolog.Logger

	mu          sync.Mutex
	latestSweep *SweepResult
}

// NewService creates a new experiments service. repo may be nil.
func NewService(gameSvc *game.Service, repo *RunRepository, log zerolog.Logger) *Service {
	return &Service{
		game: gameSvc,
		repo: repo,
		log:  log.With().Str("service", "experiments").Logger(),
	}
}

// Record persists a completed run, satisfying the game handlers' Recorder.
func (s *Service) Record(result *game.Result) (string, error) {
	if s.repo == nil {
		return "", nil
	}
	return s.repo.Save(result)
}

// Sweep runs a γ-sweep and caches the result.
func (s *Service) Sweep(points, shots int, progress ProgressFunc) (*SweepResult, error) {
	result, err := RunSweep(s.game, points, shots, progress)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.latestSweep = result
	s.mu.Unlock()

	s.log.Info().Int("points", points).Int("shots", shots).Msg("Sweep completed")
	return result, nil
}

// RefreshSweep recomputes the cached sweep with the dashboard defaults.
// Used by the scheduler.
func (s *Service) RefreshSweep() error {
	_, err := s.Sweep(DashboardSweepPoints, DashboardSweepShots, nil)
	return err
}

// LatestSweep returns the most recently computed sweep, or nil.
func (s *Service) LatestSweep() *SweepResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestSweep
}

// Equilibrium simulates the full strategy table at maximal entanglement.
func (s *Service) Equilibrium(shots int) (*EquilibriumTable, error) {
	return RunEquilibrium(s.game, shots)
}

// History returns recent run records.
func (s *Service) History(limit int) ([]RunRecord, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("run history is not enabled")
	}
	return s.repo.ListRecent(limit)
}

// GetRun returns one run record by UUID.
func (s *Service) GetRun(id string) (*RunRecord, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("run history is not enabled")
	}
	return s.repo.Get(id)
}
