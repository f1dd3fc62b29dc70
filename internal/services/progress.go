package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/arnold/defi-academy-api/internal/catalog"
	"github.com/arnold/defi-academy-api/internal/database"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StartCourse creates the progress row for (user, course) if none exists.
// Calling it again is a no-op returning the existing row.
func StartCourse(userID uuid.UUID, courseID int) (*models.CourseProgress, error) {
	if _, ok := catalog.ByID(courseID); !ok {
		return nil, ErrCourseNotFound
	}

	now := time.Now()
	progress := models.CourseProgress{UserID: userID, CourseID: courseID}
	err := database.DB.
		Where(models.CourseProgress{UserID: userID, CourseID: courseID}).
		Attrs(models.CourseProgress{
			StartedAt:      now,
			LastAccessedAt: now,
		}).
		FirstOrCreate(&progress).Error
	if err != nil {
		return nil, fmt.Errorf("start course %d: %w", courseID, err)
	}
	return &progress, nil
}

// CompleteModule records a finished module and recomputes the completion
// percentage. Repeating a module index is an idempotent no-op: the stored set
// never shrinks and no points are re-awarded. Point and badge side effects
// are best-effort; their failure is logged and never blocks the progress
// write itself.
func CompleteModule(userID uuid.UUID, courseID, moduleIndex int) (*models.CourseProgress, error) {
	total := catalog.TotalModules(courseID)
	if total == 0 {
		return nil, ErrCourseNotFound
	}
	if moduleIndex < 0 || moduleIndex >= total {
		return nil, ErrInvalidModule
	}

	progress, err := StartCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	if progress.HasModule(moduleIndex) {
		return progress, nil
	}

	firstModuleInCourse := len(progress.CompletedModules) == 0

	modules := append([]int(progress.CompletedModules), moduleIndex)
	sort.Ints(modules)
	progress.CompletedModules = modules
	progress.CompletionPercentage = float64(len(modules)) / float64(total) * 100
	progress.LastAccessedAt = time.Now()

	if err := database.DB.Save(progress).Error; err != nil {
		return nil, fmt.Errorf("save progress for course %d: %w", courseID, err)
	}

	awardModuleSideEffects(userID, courseID, moduleIndex, firstModuleInCourse, progress.CompletionPercentage == 100)

	return progress, nil
}

// awardModuleSideEffects runs the points/badges cascade after a fresh module
// completion. Every step logs and continues on failure: a learner's recorded
// progress must never be lost over a points hiccup.
func awardModuleSideEffects(userID uuid.UUID, courseID, moduleIndex int, firstModuleInCourse, courseComplete bool) {
	moduleAction := fmt.Sprintf("%d_%d", courseID, moduleIndex)
	if _, err := AwardPoints(userID, models.ActionModuleCompletion, &moduleAction, nil); err != nil {
		log.Printf("points: module_completion for %s failed: %v", moduleAction, err)
	}

	if firstModuleInCourse {
		courseAction := fmt.Sprintf("%d", courseID)
		if _, err := AwardPoints(userID, models.ActionFirstCourseStarted, &courseAction, nil); err != nil {
			log.Printf("points: first_course_started for course %d failed: %v", courseID, err)
		}
		if _, err := AwardBadge(userID, models.BadgeFirstSteps); err != nil {
			log.Printf("badges: first_steps for %s failed: %v", userID, err)
		}
	}

	if !courseComplete {
		return
	}

	completionAction := fmt.Sprintf("course_%d", courseID)
	if _, err := AwardPoints(userID, models.ActionCourseCompletion, &completionAction, nil); err != nil {
		log.Printf("points: course_completion for course %d failed: %v", courseID, err)
	}
	if _, err := AwardBadge(userID, models.BadgeCourseGraduate); err != nil {
		log.Printf("badges: course_graduate for %s failed: %v", userID, err)
	}

	course, _ := catalog.ByID(courseID)
	CreateNotification(userID, "course_completed", "Course completed!",
		fmt.Sprintf("You finished %s", course.Title),
		map[string]interface{}{"courseId": courseID})

	completed, err := CompletedCourseCount(userID)
	if err != nil {
		log.Printf("badges: counting completed courses for %s failed: %v", userID, err)
		return
	}
	if completed >= 3 {
		if _, err := AwardBadge(userID, models.BadgeScholar); err != nil {
			log.Printf("badges: scholar for %s failed: %v", userID, err)
		}
	}
	if completed >= len(catalog.AllCourseIDs()) {
		if _, err := AwardBadge(userID, models.BadgeDefiMaster); err != nil {
			log.Printf("badges: defi_master for %s failed: %v", userID, err)
		}
	}
}

// GetCourseProgress returns the progress row, or nil if the user never
// touched the course.
func GetCourseProgress(userID uuid.UUID, courseID int) (*models.CourseProgress, error) {
	var progress models.CourseProgress
	err := database.DB.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

// AllProgress returns every course the user has started, most recent first.
func AllProgress(userID uuid.UUID) ([]models.CourseProgress, error) {
	var rows []models.CourseProgress
	err := database.DB.
		Where("user_id = ?", userID).
		Order("last_accessed_at DESC").
		Find(&rows).Error
	return rows, err
}

// IsCourseCompleted reports whether the user has every module of the course.
func IsCourseCompleted(userID uuid.UUID, courseID int) (bool, error) {
	progress, err := GetCourseProgress(userID, courseID)
	if err != nil || progress == nil {
		return false, err
	}
	return progress.CompletionPercentage == 100, nil
}

// CompletedCourseCount counts courses the user finished end to end.
func CompletedCourseCount(userID uuid.UUID) (int, error) {
	var count int64
	err := database.DB.Model(&models.CourseProgress{}).
		Where("user_id = ? AND completion_percentage >= 100", userID).
		Count(&count).Error
	return int(count), err
}

// CompletionBadgeLabel maps a completion percentage to the label shown on
// course cards.
func CompletionBadgeLabel(percentage float64) string {
	switch {
	case percentage >= 100:
		return "Completed"
	case percentage >= 75:
		return "Almost There"
	case percentage >= 50:
		return "Making Progress"
	case percentage >= 25:
		return "Getting Started"
	default:
		return "Just Started"
	}
}
