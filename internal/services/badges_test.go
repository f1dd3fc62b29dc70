package services

import (
	"testing"

	"github.com/arnold/defi-academy-api/internal/database"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardBadge(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "learner@example.com")

	t.Run("FirstGrant", func(t *testing.T) {
		granted, err := AwardBadge(user.ID, models.BadgeFirstSteps)
		require.NoError(t, err)
		assert.True(t, granted)

		var notifs int64
		database.DB.Model(&models.Notification{}).
			Where("user_id = ? AND type = ?", user.ID, "badge_earned").
			Count(&notifs)
		assert.EqualValues(t, 1, notifs)
	})

	t.Run("RepeatGrantIsNoop", func(t *testing.T) {
		granted, err := AwardBadge(user.ID, models.BadgeFirstSteps)
		require.NoError(t, err)
		assert.False(t, granted)

		var rows int64
		database.DB.Model(&models.UserBadge{}).
			Where("user_id = ? AND badge_id = ?", user.ID, models.BadgeFirstSteps).
			Count(&rows)
		assert.EqualValues(t, 1, rows)

		var notifs int64
		database.DB.Model(&models.Notification{}).
			Where("user_id = ? AND type = ?", user.ID, "badge_earned").
			Count(&notifs)
		assert.EqualValues(t, 1, notifs, "a repeat grant must not notify again")
	})

	t.Run("UnknownBadge", func(t *testing.T) {
		_, err := AwardBadge(user.ID, "shiny_unicorn")
		assert.ErrorIs(t, err, ErrUnknownBadge)
	})

	t.Run("PerUser", func(t *testing.T) {
		other := createTestUser(t, "other@example.com")
		granted, err := AwardBadge(other.ID, models.BadgeFirstSteps)
		require.NoError(t, err)
		assert.True(t, granted, "grants are scoped per user")
	})
}

func TestUserBadges(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "learner@example.com")

	_, err := AwardBadge(user.ID, models.BadgeFirstSteps)
	require.NoError(t, err)
	_, err = AwardBadge(user.ID, models.BadgeCourseGraduate)
	require.NoError(t, err)

	badges, err := UserBadges(user.ID)
	require.NoError(t, err)
	assert.Len(t, badges, 2)
}
