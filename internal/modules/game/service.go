package game

import (
	"github.com/rs/zerolog"
)

// Result holds everything a single run produces. Results are transient; the
// experiments module decides whether to persist them.
type Result struct {
	StrategyA   string  `json:"strategy_a"`
	StrategyB   string  `json:"strategy_b"`
	Gamma       float64 `json:"gamma"`
	Shots       int     `json:"shots"`
	PayoffAlice float64 `json:"payoff_alice"`
	PayoffBob   float64 `json:"payoff_bob"`
	Counts      Counts  `json:"counts"`
	Diagram     string  `json:"diagram"`
}

// Service runs EWL games end to end: circuit construction, sampling, payoff
// aggregation.
type Service struct {
	sim *Simulator
	log zerolog.Logger
}

// NewService creates a game service with a time-seeded simulator.
func NewService(log zerolog.Logger) *Service {
	return &Service{
		sim: NewSimulator(),
		log: log.With().Str("service", "game").Logger(),
	}
}

// NewSeededService creates a deterministic game service for tests.
func NewSeededService(seed uint64, log zerolog.Logger) *Service {
	return &Service{
		sim: NewSeededSimulator(seed),
		log: log.With().Str("service", "game").Logger(),
	}
}

// Run builds the circuit for the given matchup, samples it, and aggregates
// expected payoffs. Validation failures and simulator errors are per-run
// errors for the caller to report; they never take the process down.
func (s *Service) Run(strategyA, strategyB string, gamma float64, shots int) (*Result, error) {
	circuit, err := NewCircuit(strategyA, strategyB, gamma)
	if err != nil {
		return nil, err
	}

	counts, err := s.sim.Sample(circuit, shots)
	if err != nil {
		return nil, err
	}

	alice, bob, err := ExpectedPayoffs(counts, shots)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("alice", circuit.StrategyA).
		Str("bob", circuit.StrategyB).
		Float64("gamma", gamma).
		Int("shots", shots).
		Float64("payoff_alice", alice).
		Float64("payoff_bob", bob).
		Msg("Game run completed")

	return &Result{
		StrategyA:   circuit.StrategyA,
		StrategyB:   circuit.StrategyB,
		Gamma:       gamma,
		Shots:       shots,
		PayoffAlice: alice,
		PayoffBob:   bob,
		Counts:      counts,
		Diagram:     circuit.Diagram(),
	}, nil
}
