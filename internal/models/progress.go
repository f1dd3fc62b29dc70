package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseProgress is the per-user, per-course progress row. CompletedModules
// only ever grows and CompletionPercentage is recomputed server-side on every
// write; values sent by clients are never trusted.
type CourseProgress struct {
	ID                   uuid.UUID                `json:"id" gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID                `json:"userId" gorm:"type:uuid;uniqueIndex:idx_user_course;not null"`
	CourseID             int                      `json:"courseId" gorm:"uniqueIndex:idx_user_course;not null"`
	CompletedModules     datatypes.JSONSlice[int] `json:"completedModules"`
	CompletionPercentage float64                  `json:"completionPercentage"`
	StartedAt            time.Time                `json:"startedAt"`
	LastAccessedAt       time.Time                `json:"lastAccessedAt"`
	CreatedAt            time.Time                `json:"createdAt"`
	UpdatedAt            time.Time                `json:"updatedAt"`
}

func (p *CourseProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// HasModule reports whether moduleIndex is already in the completed set.
func (p *CourseProgress) HasModule(moduleIndex int) bool {
	for _, m := range p.CompletedModules {
		if m == moduleIndex {
			return true
		}
	}
	return false
}
