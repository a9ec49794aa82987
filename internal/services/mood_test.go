package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botcafe/internal/models"
	"botcafe/internal/testutil"
)

func TestMoodLog(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	svc := NewMoodService(gdb)

	user := testutil.TestUser(t, gdb)

	entry, err := svc.Log(user.ID, 4, "good coffee")
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, 4, entry.Mood)
	assert.Equal(t, "good coffee", entry.Note)
}

func TestMoodLogOutOfRange(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	svc := NewMoodService(gdb)

	user := testutil.TestUser(t, gdb)

	_, err := svc.Log(user.ID, 0, "")
	assert.ErrorIs(t, err, ErrMoodOutOfRange)

	_, err = svc.Log(user.ID, 6, "")
	assert.ErrorIs(t, err, ErrMoodOutOfRange)
}

func TestMoodLogOncePerDay(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	svc := NewMoodService(gdb)

	user := testutil.TestUser(t, gdb)

	_, err := svc.Log(user.ID, 3, "")
	require.NoError(t, err)

	_, err = svc.Log(user.ID, 5, "")
	assert.ErrorIs(t, err, ErrAlreadyLoggedToday)

	// A different user can still log
	other := testutil.TestUser(t, gdb)
	_, err = svc.Log(other.ID, 2, "")
	assert.NoError(t, err)
}

func TestMoodDeleteOwnEntryOnly(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	svc := NewMoodService(gdb)

	owner := testutil.TestUser(t, gdb)
	other := testutil.TestUser(t, gdb)

	entry, err := svc.Log(owner.ID, 3, "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(other.ID, entry.ID), ErrEntryNotFound)
	assert.NoError(t, svc.Delete(owner.ID, entry.ID))
	assert.ErrorIs(t, svc.Delete(owner.ID, entry.ID), ErrEntryNotFound)
}

func TestMoodRecentOrder(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	svc := NewMoodService(gdb)

	user := testutil.TestUser(t, gdb)

	old := models.MoodEntry{UserID: user.ID, Mood: 2, CreatedAt: time.Now().AddDate(0, 0, -3)}
	require.NoError(t, gdb.Create(&old).Error)
	recent, err := svc.Log(user.ID, 5, "today")
	require.NoError(t, err)

	entries := svc.Recent(user.ID, 10)
	require.Len(t, entries, 2)
	assert.Equal(t, recent.ID, entries[0].ID)
	assert.Equal(t, old.ID, entries[1].ID)
}

func TestMoodStats(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	svc := NewMoodService(gdb)

	user := testutil.TestUser(t, gdb)

	// Two past days plus today: a 3-day streak
	for _, daysAgo := range []int{2, 1} {
		entry := models.MoodEntry{UserID: user.ID, Mood: 3, CreatedAt: time.Now().AddDate(0, 0, -daysAgo)}
		require.NoError(t, gdb.Create(&entry).Error)
	}
	_, err := svc.Log(user.ID, 5, "")
	require.NoError(t, err)

	stats := svc.Stats(user.ID)
	assert.True(t, stats.TodayLogged)
	assert.Equal(t, 3, stats.Streak)
	assert.InDelta(t, (3.0+3.0+5.0)/3.0, stats.WeekAverage, 0.001)
}

func TestMoodStatsStreakSurvivesMissingToday(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	svc := NewMoodService(gdb)

	user := testutil.TestUser(t, gdb)

	for _, daysAgo := range []int{2, 1} {
		entry := models.MoodEntry{UserID: user.ID, Mood: 4, CreatedAt: time.Now().AddDate(0, 0, -daysAgo)}
		require.NoError(t, gdb.Create(&entry).Error)
	}

	stats := svc.Stats(user.ID)
	assert.False(t, stats.TodayLogged)
	assert.Equal(t, 2, stats.Streak)
}

func TestMoodStatsEmpty(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, gdb)
	svc := NewMoodService(gdb)

	user := testutil.TestUser(t, gdb)

	stats := svc.Stats(user.ID)
	assert.Equal(t, 0, stats.Streak)
	assert.Equal(t, 0.0, stats.WeekAverage)
	assert.False(t, stats.TodayLogged)
}
