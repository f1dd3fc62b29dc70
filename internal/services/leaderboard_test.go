package services

import (
	"context"
	"testing"
	"time"

	"github.com/arnold/defi-academy-api/internal/database"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertPoints(t *testing.T, user *models.User, points int, createdAt time.Time) {
	t.Helper()
	txn := models.PointTransaction{
		UserID:     user.ID,
		Points:     points,
		ActionType: models.ActionModuleCompletion,
		CreatedAt:  createdAt,
	}
	require.NoError(t, database.DB.Create(&txn).Error)
}

func TestGetLeaderboardDenseRanking(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")
	carol := createTestUser(t, "carol@example.com")

	now := time.Now().UTC()
	insertPoints(t, alice, 100, now)
	insertPoints(t, bob, 100, now)
	insertPoints(t, carol, 50, now)

	entries, err := GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Two tied at 100 share rank 1; the 50-point user takes rank 3, not 2.
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, 100, entries[0].TotalPoints)
	assert.Equal(t, 100, entries[1].TotalPoints)
	assert.Equal(t, carol.ID, entries[2].UserID)
}

func TestGetLeaderboardMonthWindow(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")

	now := time.Now().UTC()
	insertPoints(t, alice, 40, now)
	// Last month's earnings never count toward this month.
	insertPoints(t, alice, 500, now.AddDate(0, -1, 0))
	insertPoints(t, bob, 60, now)

	entries, err := GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, bob.ID, entries[0].UserID)
	assert.Equal(t, 60, entries[0].TotalPoints)
	assert.Equal(t, alice.ID, entries[1].UserID)
	assert.Equal(t, 40, entries[1].TotalPoints)
}

func TestGetLeaderboardLimit(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	users := []string{"a@example.com", "b@example.com", "c@example.com"}
	for i, email := range users {
		u := createTestUser(t, email)
		insertPoints(t, u, (i+1)*10, now)
	}

	entries, err := GetLeaderboard(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 30, entries[0].TotalPoints)
}

func TestGetLeaderboardExcludesZeroPointUsers(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, "alice@example.com")
	createTestUser(t, "lurker@example.com")

	insertPoints(t, alice, 10, time.Now().UTC())

	entries, err := GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, alice.ID, entries[0].UserID)
}

func TestGetUserRank(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")
	carol := createTestUser(t, "carol@example.com")
	lurker := createTestUser(t, "lurker@example.com")

	now := time.Now().UTC()
	insertPoints(t, alice, 100, now)
	insertPoints(t, bob, 100, now)
	insertPoints(t, carol, 50, now)

	t.Run("TiedTop", func(t *testing.T) {
		rank, err := GetUserRank(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, rank.TotalPoints)
		assert.Equal(t, 1, rank.Rank)
		assert.Equal(t, 4, rank.TotalUsers)
	})

	t.Run("BelowTie", func(t *testing.T) {
		rank, err := GetUserRank(ctx, carol.ID)
		require.NoError(t, err)
		assert.Equal(t, 50, rank.TotalPoints)
		assert.Equal(t, 3, rank.Rank)
	})

	t.Run("ZeroPointsThisMonth", func(t *testing.T) {
		rank, err := GetUserRank(ctx, lurker.ID)
		require.NoError(t, err)
		assert.Zero(t, rank.TotalPoints)
		assert.Equal(t, 4, rank.Rank, "zero-point users sit below every earner")
		assert.Equal(t, 4, rank.TotalUsers)
	})
}

func TestMonthWindow(t *testing.T) {
	at := time.Date(2025, time.January, 17, 15, 4, 5, 0, time.UTC)
	start, end := monthWindow(at)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), end)

	// December rolls into the next year.
	start, end = monthWindow(time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}
