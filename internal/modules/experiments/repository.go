package experiments

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/qdilemma/internal/database"
	"github.com/aristath/qdilemma/internal/modules/game"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// RunRecord is one persisted game run.
type RunRecord struct {
	UUID        string      `json:"uuid"`
	StrategyA   string      `json:"strategy_a"`
	StrategyB   string      `json:"strategy_b"`
	Gamma       float64     `json:"gamma"`
	Shots       int         `json:"shots"`
	PayoffAlice float64     `json:"payoff_alice"`
	PayoffBob   float64     `json:"payoff_bob"`
	Counts      game.Counts `json:"counts"`
	CreatedAt   time.Time   `json:"created_at"`
}

// RunRepository stores run history in SQLite. Outcome counts are stored as a
// msgpack blob; everything queryable lives in its own column.
type RunRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRunRepository creates a new run history repository
func NewRunRepository(db *database.DB, log zerolog.Logger) *RunRepository {
	return &RunRepository{
		db:  db,
		log: log.With().Str("repository", "runs").Logger(),
	}
}

// InitSchema creates the runs table if it does not exist
func (r *RunRepository) InitSchema() error {
	_, err := r.db.Conn().Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			uuid TEXT PRIMARY KEY,
			strategy_a TEXT NOT NULL,
			strategy_b TEXT NOT NULL,
			gamma REAL NOT NULL,
			shots INTEGER NOT NULL,
			payoff_alice REAL NOT NULL,
			payoff_bob REAL NOT NULL,
			counts BLOB NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to create runs schema: %w", err)
	}
	return nil
}

// Save persists a completed run and returns its generated UUID.
func (r *RunRepository) Save(result *game.Result) (string, error) {
	blob, err := msgpack.Marshal(result.Counts)
	if err != nil {
		return "", fmt.Errorf("failed to encode counts: %w", err)
	}

	id := uuid.New().String()
	_, err = r.db.Conn().Exec(`
		INSERT INTO runs
			(uuid, strategy_a, strategy_b, gamma, shots, payoff_alice, payoff_bob, counts, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, result.StrategyA, result.StrategyB, result.Gamma, result.Shots,
		result.PayoffAlice, result.PayoffBob, blob, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	r.log.Debug().Str("uuid", id).Msg("Run saved")
	return id, nil
}

// ListRecent returns the most recent runs, newest first.
func (r *RunRepository) ListRecent(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Conn().Query(`
		SELECT uuid, strategy_a, strategy_b, gamma, shots, payoff_alice, payoff_bob, counts, created_at
		FROM runs
		ORDER BY created_at DESC, uuid
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	records := make([]RunRecord, 0, limit)
	for rows.Next() {
		record, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// Get returns a single run by UUID.
func (r *RunRepository) Get(id string) (*RunRecord, error) {
	row := r.db.Conn().QueryRow(`
		SELECT uuid, strategy_a, strategy_b, gamma, shots, payoff_alice, payoff_bob, counts, created_at
		FROM runs
		WHERE uuid = ?`, id)

	record, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found", id)
	}
	return record, err
}

func scanRun(scan func(dest ...any) error) (*RunRecord, error) {
	var (
		record    RunRecord
		blob      []byte
		createdAt int64
	)
	if err := scan(
		&record.UUID, &record.StrategyA, &record.StrategyB, &record.Gamma, &record.Shots,
		&record.PayoffAlice, &record.PayoffBob, &blob, &createdAt,
	); err != nil {
		return nil, err
	}

	if err := msgpack.Unmarshal(blob, &record.Counts); err != nil {
		return nil, fmt.Errorf("failed to decode counts for run %s: %w", record.UUID, err)
	}
	record.CreatedAt = time.Unix(createdAt, 0)
	return &record, nil
}
