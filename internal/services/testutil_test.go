package services

import (
	"testing"

	"github.com/arnold/defi-academy-api/internal/database"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package at a fresh in-memory database.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CourseProgress{},
		&models.PointTransaction{},
		&models.UserBadge{},
		&models.Notification{},
	))

	database.DB = db
	Push = nil
}

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()

	user := models.User{Email: email, Name: "Test User"}
	require.NoError(t, database.DB.Create(&user).Error)
	return &user
}
