package metrics

import (
	"os"
	"testing"

	"github.com/pmackar/gamifyit/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary SQLite database for testing.
func setupTestDB(t *testing.T) (MetricsStore, func()) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "testdb_metrics_*.db")
	require.NoError(t, err)

	db, cleanup, err := database.InitDB(tmpfile.Name(), "", "", "../../migrations")
	require.NoError(t, err)

	store := New(db)

	teardown := func() {
		cleanup()
		os.Remove(tmpfile.Name())
	}

	return store, teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	// 1. Initially, there should be no metrics
	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, metrics)

	// 2. Increment a new key
	store.Increment("rollover_runs")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"rollover_runs": 1}, metrics)

	// 3. Increment the same key again
	store.Increment("rollover_runs")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"rollover_runs": 2}, metrics)

	// 4. Increment a different key
	store.Increment("league_joins")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"rollover_runs": 2,
		"league_joins":  1,
	}, metrics)
}
