package services

import (
	"context"
	"fmt"
	"time"

	"github.com/arnold/defi-academy-api/internal/database"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// AwardResult reports whether a call actually credited points. Success=false
// with a nil error means the action was already paid (idempotent no-op).
type AwardResult struct {
	Success       bool `json:"success"`
	PointsAwarded int  `json:"pointsAwarded"`
}

// AwardPoints credits the configured points for actionType exactly once per
// (user, actionType, actionID). The duplicate check is not a read-then-write:
// the insert runs with ON CONFLICT DO NOTHING against the unique index, so a
// concurrent double-submit cannot create two rows.
func AwardPoints(userID uuid.UUID, actionType string, actionID *string, metadata map[string]interface{}) (AwardResult, error) {
	points, ok := models.PointValues[actionType]
	if !ok {
		return AwardResult{}, fmt.Errorf("award %q: %w", actionType, ErrUnknownAction)
	}

	txn := models.PointTransaction{
		UserID:     userID,
		Points:     points,
		ActionType: actionType,
		ActionID:   actionID,
		Metadata:   metadata,
	}

	result := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&txn)
	if result.Error != nil {
		return AwardResult{}, fmt.Errorf("award %q: %w", actionType, result.Error)
	}
	if result.RowsAffected == 0 {
		// Already awarded for this action ID.
		return AwardResult{Success: false, PointsAwarded: 0}, nil
	}

	invalidateLeaderboard(context.Background())

	return AwardResult{Success: true, PointsAwarded: points}, nil
}

// CheckDailyLogin awards the daily_login points at most once per UTC day.
// Returns alreadyLoggedIn so callers only show a streak toast on a genuine
// new-day login.
func CheckDailyLogin(userID uuid.UUID) (alreadyLoggedIn bool, pointsAwarded int, err error) {
	stamp := time.Now().UTC().Format("2006-01-02")
	res, err := AwardPoints(userID, models.ActionDailyLogin, &stamp, nil)
	if err != nil {
		return false, 0, err
	}
	if res.Success {
		CreateNotification(userID, "streak", "Daily check-in",
			fmt.Sprintf("+%d points for showing up today", res.PointsAwarded),
			map[string]interface{}{"date": stamp})
	}
	return !res.Success, res.PointsAwarded, nil
}

// TotalPoints sums every transaction the user ever earned.
func TotalPoints(userID uuid.UUID) (int, error) {
	var total int64
	err := database.DB.Model(&models.PointTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return int(total), err
}

// PointHistory returns the user's transactions newest first.
func PointHistory(userID uuid.UUID, offset, limit int) ([]models.PointTransaction, int64, error) {
	var txns []models.PointTransaction
	err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	database.DB.Model(&models.PointTransaction{}).Where("user_id = ?", userID).Count(&total)

	return txns, total, nil
}
