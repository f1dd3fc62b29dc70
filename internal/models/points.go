package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Point-earning action types.
const (
	ActionModuleCompletion   = "module_completion"
	ActionCourseCompletion   = "course_completion"
	ActionFirstCourseStarted = "first_course_started"
	ActionQuizPassed         = "quiz_passed"
	ActionQuizPerfect        = "quiz_perfect"
	ActionDailyLogin         = "daily_login"
	ActionReferralSignup     = "referral_signup"
	ActionProfileCompleted   = "profile_completed"
)

// PointValues maps each action type to the points it awards. Unknown action
// types are a caller bug, not user input.
var PointValues = map[string]int{
	ActionModuleCompletion:   10,
	ActionCourseCompletion:   50,
	ActionFirstCourseStarted: 20,
	ActionQuizPassed:         15,
	ActionQuizPerfect:        25,
	ActionDailyLogin:         5,
	ActionReferralSignup:     30,
	ActionProfileCompleted:   10,
}

// PointTransaction is an append-only audit row. The unique index over
// (user_id, action_type, action_id) is the idempotency key: the same discrete
// accomplishment can never be paid twice, even under concurrent double-submit.
type PointTransaction struct {
	ID         uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID         `json:"userId" gorm:"type:uuid;index;uniqueIndex:idx_user_action;not null"`
	Points     int               `json:"points" gorm:"not null"`
	ActionType string            `json:"actionType" gorm:"uniqueIndex:idx_user_action;not null"`
	ActionID   *string           `json:"actionId" gorm:"uniqueIndex:idx_user_action"`
	Metadata   datatypes.JSONMap `json:"metadata"`
	CreatedAt  time.Time         `json:"createdAt" gorm:"index"`
}

func (t *PointTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// LeaderboardEntry is derived at query time, never stored.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl"`
	TotalPoints int       `json:"totalPoints"`
}

type UserRank struct {
	UserID      uuid.UUID `json:"userId"`
	TotalPoints int       `json:"totalPoints"`
	Rank        int       `json:"rank"`
	TotalUsers  int       `json:"totalUsers"`
}
