package experiments

import (
	"strings"
	"testing"

	"github.com/aristath/qdilemma/internal/database"
	"github.com/aristath/qdilemma/internal/modules/game"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) *RunRepository {
	// Named shared-cache memory DB so every pooled connection sees the same
	// database; the name keeps tests isolated from each other.
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.New(database.Config{
		Path:    "file:" + name + "?mode=memory&cache=shared",
		Profile: database.ProfileCache,
		Name:    "history-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewRunRepository(db, zerolog.New(nil).Level(zerolog.Disabled))
	require.NoError(t, repo.InitSchema())
	return repo
}

func sampleResult() *game.Result {
	return &game.Result{
		StrategyA:   game.StrategyQuantum,
		StrategyB:   game.StrategyDefect,
		Gamma:       1.2,
		Shots:       1024,
		PayoffAlice: 3.8,
		PayoffBob:   0.9,
		Counts:      game.Counts{"00": 512, "01": 400, "11": 112},
		Diagram:     "q0 ...",
	}
}

func TestSaveAndGetRun(t *testing.T) {
	repo := setupTestRepository(t)

	id, err := repo.Save(sampleResult())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	record, err := repo.Get(id)
	require.NoError(t, err)

	assert.Equal(t, game.StrategyQuantum, record.StrategyA)
	assert.Equal(t, game.StrategyDefect, record.StrategyB)
	assert.InDelta(t, 1.2, record.Gamma, 1e-12)
	assert.Equal(t, 1024, record.Shots)
	assert.InDelta(t, 3.8, record.PayoffAlice, 1e-12)
	assert.InDelta(t, 0.9, record.PayoffBob, 1e-12)
	// Counts survive the msgpack round trip intact.
	assert.Equal(t, game.Counts{"00": 512, "01": 400, "11": 112}, record.Counts)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestGetMissingRun(t *testing.T) {
	repo := setupTestRepository(t)

	_, err := repo.Get("no-such-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListRecent(t *testing.T) {
	repo := setupTestRepository(t)

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		id, err := repo.Save(sampleResult())
		require.NoError(t, err)
		ids = append(ids, id)
	}

	records, err := repo.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, records, 3)

	seen := make(map[string]bool)
	for _, r := range records {
		seen[r.UUID] = true
	}
	for _, id := range ids {
		assert.True(t, seen[id], "missing run %s", id)
	}
}

func TestListRecentHonorsLimit(t *testing.T) {
	repo := setupTestRepository(t)

	for i := 0; i < 5; i++ {
		_, err := repo.Save(sampleResult())
		require.NoError(t, err)
	}

	records, err := repo.ListRecent(2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
