package services

import (
	"fmt"

	"github.com/arnold/defi-academy-api/internal/database"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// AwardBadge grants a badge at most once per user. A repeat call returns
// granted=false with no error. Like point awards, the grant is a single
// conflict-ignoring insert against the (user, badge) unique index.
func AwardBadge(userID uuid.UUID, badgeID string) (granted bool, err error) {
	def, ok := models.BadgeDefinitions[badgeID]
	if !ok {
		return false, fmt.Errorf("badge %q: %w", badgeID, ErrUnknownBadge)
	}

	badge := models.UserBadge{UserID: userID, BadgeID: badgeID}
	result := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&badge)
	if result.Error != nil {
		return false, fmt.Errorf("grant badge %q: %w", badgeID, result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	CreateNotification(userID, "badge_earned", "Badge earned: "+def.Title, def.Description,
		map[string]interface{}{"badgeId": badgeID})

	return true, nil
}

// UserBadges returns the user's grants newest first.
func UserBadges(userID uuid.UUID) ([]models.UserBadge, error) {
	var badges []models.UserBadge
	err := database.DB.
		Where("user_id = ?", userID).
		Order("granted_at DESC").
		Find(&badges).Error
	return badges, err
}
