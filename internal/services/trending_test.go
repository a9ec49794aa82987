package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botcafe/internal/db"
	"botcafe/internal/models"
	"botcafe/internal/testutil"
)

func TestSyncBotReconcilesCounters(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	db.DB = gdb

	creator := testutil.TestUser(t, gdb)
	// Stored counters drifted away from the interaction rows
	bot := testutil.TestBot(t, gdb, creator.ID, testutil.WithCounts(10, 10))

	alice := testutil.TestUser(t, gdb)
	bob := testutil.TestUser(t, gdb)
	testutil.TestInteraction(t, gdb, alice.ID, bot.ID, true, true)
	testutil.TestInteraction(t, gdb, bob.ID, bot.ID, true, false)

	SyncBotNow(bot.ID)

	var stored models.Bot
	require.NoError(t, gdb.First(&stored, bot.ID).Error)
	assert.Equal(t, 2, stored.LikesCount)
	assert.Equal(t, 1, stored.FavoritesCount)
	assert.NotZero(t, stored.TrendScore)
}

func TestSyncBotIgnoresToggledOffRows(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	db.DB = gdb

	creator := testutil.TestUser(t, gdb)
	bot := testutil.TestBot(t, gdb, creator.ID, testutil.WithCounts(5, 5))

	user := testutil.TestUser(t, gdb)
	// Row exists but both toggles are off
	testutil.TestInteraction(t, gdb, user.ID, bot.ID, false, false)

	SyncBotNow(bot.ID)

	var stored models.Bot
	require.NoError(t, gdb.First(&stored, bot.ID).Error)
	assert.Equal(t, 0, stored.LikesCount)
	assert.Equal(t, 0, stored.FavoritesCount)
}
