package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BadgeFirstSteps     = "first_steps"
	BadgeCourseGraduate = "course_graduate"
	BadgeScholar        = "scholar"
	BadgeDefiMaster     = "defi_master"
)

// BadgeDefinition is static display data for a badge; the grant itself lives
// in UserBadge.
type BadgeDefinition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var BadgeDefinitions = map[string]BadgeDefinition{
	BadgeFirstSteps: {
		ID:          BadgeFirstSteps,
		Title:       "First Steps",
		Description: "Completed your first lesson",
		Icon:        "footprints",
	},
	BadgeCourseGraduate: {
		ID:          BadgeCourseGraduate,
		Title:       "Course Graduate",
		Description: "Finished a course from start to end",
		Icon:        "graduation-cap",
	},
	BadgeScholar: {
		ID:          BadgeScholar,
		Title:       "Scholar",
		Description: "Finished three courses",
		Icon:        "book",
	},
	BadgeDefiMaster: {
		ID:          BadgeDefiMaster,
		Title:       "DeFi Master",
		Description: "Finished every course in the academy",
		Icon:        "trophy",
	},
}

// UserBadge records a one-time grant. The (user_id, badge_id) unique index
// makes the grant idempotent at the store layer.
type UserBadge struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;index;uniqueIndex:idx_user_badge;not null"`
	BadgeID   string    `json:"badgeId" gorm:"uniqueIndex:idx_user_badge;not null"`
	GrantedAt time.Time `json:"grantedAt" gorm:"autoCreateTime"`
}

func (b *UserBadge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
