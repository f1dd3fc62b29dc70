package services

import (
	"testing"

	"github.com/arnold/defi-academy-api/internal/database"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Course 2 module 2 has key [1, 1, 0] and a 66% pass threshold.

func TestSubmitQuizPerfect(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "learner@example.com")

	result, err := SubmitQuiz(user.ID, 2, 2, []int{1, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
	assert.True(t, result.Perfect)
	assert.Equal(t, models.PointValues[models.ActionQuizPerfect], result.PointsAwarded)

	// A pass also completes the module.
	progress, err := GetCourseProgress(user.ID, 2)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.True(t, progress.HasModule(2))
}

func TestSubmitQuizPassing(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "learner@example.com")

	result, err := SubmitQuiz(user.ID, 2, 2, []int{1, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, 66, result.Score)
	assert.True(t, result.Passed)
	assert.False(t, result.Perfect)
	assert.Equal(t, models.PointValues[models.ActionQuizPassed], result.PointsAwarded)
}

func TestSubmitQuizFailing(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "learner@example.com")

	result, err := SubmitQuiz(user.ID, 2, 2, []int{0, 0, 1})
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Zero(t, result.PointsAwarded)

	var txns int64
	database.DB.Model(&models.PointTransaction{}).Where("user_id = ?", user.ID).Count(&txns)
	assert.Zero(t, txns, "a failed quiz awards nothing")

	progress, err := GetCourseProgress(user.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, progress, "a failed quiz does not complete the module")
}

func TestSubmitQuizRetakeAwardsOnce(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "learner@example.com")

	first, err := SubmitQuiz(user.ID, 2, 2, []int{1, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, models.PointValues[models.ActionQuizPerfect], first.PointsAwarded)

	retake, err := SubmitQuiz(user.ID, 2, 2, []int{1, 1, 0})
	require.NoError(t, err)
	assert.True(t, retake.Passed)
	assert.Zero(t, retake.PointsAwarded, "retakes never pay twice")
}

func TestSubmitQuizValidation(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "learner@example.com")

	_, err := SubmitQuiz(user.ID, 999, 0, nil)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	// Module 0 of course 2 has no quiz.
	_, err = SubmitQuiz(user.ID, 2, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidModule)
}
