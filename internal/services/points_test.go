package services

import (
	"testing"

	"github.com/arnold/defi-academy-api/internal/database"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardPointsExactlyOnce(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "learner@example.com")

	actionID := "2025-01-01"

	first, err := AwardPoints(user.ID, models.ActionDailyLogin, &actionID, nil)
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, models.PointValues[models.ActionDailyLogin], first.PointsAwarded)

	second, err := AwardPoints(user.ID, models.ActionDailyLogin, &actionID, nil)
	require.NoError(t, err)
	assert.False(t, second.Success)
	assert.Zero(t, second.PointsAwarded)

	total, err := TotalPoints(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PointValues[models.ActionDailyLogin], total)
}

func TestAwardPointsSameActionDifferentIDs(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "learner@example.com")

	day1 := "2025-01-01"
	day2 := "2025-01-02"

	first, err := AwardPoints(user.ID, models.ActionDailyLogin, &day1, nil)
	require.NoError(t, err)
	second, err := AwardPoints(user.ID, models.ActionDailyLogin, &day2, nil)
	require.NoError(t, err)

	assert.True(t, first.Success)
	assert.True(t, second.Success)
}

func TestAwardPointsSameIDDifferentUsers(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice@example.com")
	bob := createTestUser(t, "bob@example.com")

	actionID := "1_0"

	res, err := AwardPoints(alice.ID, models.ActionModuleCompletion, &actionID, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)

	res, err = AwardPoints(bob.ID, models.ActionModuleCompletion, &actionID, nil)
	require.NoError(t, err)
	assert.True(t, res.Success, "the idempotency key is scoped per user")
}

func TestAwardPointsUnknownAction(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "learner@example.com")

	_, err := AwardPoints(user.ID, "not_a_thing", nil, nil)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestCheckDailyLogin(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "learner@example.com")

	already, points, err := CheckDailyLogin(user.ID)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, models.PointValues[models.ActionDailyLogin], points)

	var notifs int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", user.ID, "streak").
		Count(&notifs)
	assert.EqualValues(t, 1, notifs)

	already, points, err = CheckDailyLogin(user.ID)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Zero(t, points)

	var count int64
	database.DB.Model(&models.PointTransaction{}).
		Where("user_id = ? AND action_type = ?", user.ID, models.ActionDailyLogin).
		Count(&count)
	assert.EqualValues(t, 1, count, "at most one daily_login row per day")
}

func TestPointHistory(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "learner@example.com")

	for _, id := range []string{"1_0", "1_1", "1_2"} {
		actionID := id
		_, err := AwardPoints(user.ID, models.ActionModuleCompletion, &actionID, nil)
		require.NoError(t, err)
	}

	txns, total, err := PointHistory(user.ID, 0, 2)
	require.NoError(t, err)
	assert.Len(t, txns, 2)
	assert.EqualValues(t, 3, total)

	sum, err := TotalPoints(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3*models.PointValues[models.ActionModuleCompletion], sum)
}
