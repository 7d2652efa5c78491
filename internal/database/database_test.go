package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_RunsMigrations(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{
		"tier_ledgers",
		"leagues",
		"league_memberships",
		"seasons",
		"season_tier_rewards",
		"season_progress",
		"season_claims",
		"metrics",
	} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_MembershipUniquePerWeek(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec("INSERT INTO leagues (id, tier, week_start, week_end, created_at) VALUES ('l1', 0, 100, 200, 1), ('l2', 0, 100, 200, 1)")
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO league_memberships (league_id, user_id, week_start, joined_at) VALUES ('l1', 'u1', 100, 1)")
	require.NoError(t, err)

	// Same user, same week, different league must violate the unique index.
	_, err = db.Exec("INSERT INTO league_memberships (league_id, user_id, week_start, joined_at) VALUES ('l2', 'u1', 100, 2)")
	assert.Error(t, err)
}
