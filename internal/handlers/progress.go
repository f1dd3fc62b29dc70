package handlers

import (
	"errors"
	"strconv"

	"github.com/arnold/defi-academy-api/internal/middleware"
	"github.com/arnold/defi-academy-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// StartCourse creates the progress row for a course. Repeat calls are no-ops.
func StartCourse(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	progress, err := services.StartCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start course",
		})
	}

	return c.JSON(progress)
}

// CompleteModule marks a module finished and returns the updated progress
// alongside the badge label shown on course cards.
func CompleteModule(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}
	moduleIndex, err := strconv.Atoi(c.Params("moduleIndex"))
	if err != nil || moduleIndex < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid module index",
		})
	}

	progress, err := services.CompleteModule(userID, courseID, moduleIndex)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		case errors.Is(err, services.ErrInvalidModule):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid module index for this course",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save progress, please try again",
			})
		}
	}

	return c.JSON(fiber.Map{
		"progress":   progress,
		"badgeLabel": services.CompletionBadgeLabel(progress.CompletionPercentage),
	})
}

// GetCourseProgress returns progress for one course, zero-valued if the user
// never started it.
func GetCourseProgress(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	progress, err := services.GetCourseProgress(userID, courseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load progress",
		})
	}
	if progress == nil {
		return c.JSON(fiber.Map{
			"courseId":             courseID,
			"completedModules":     []int{},
			"completionPercentage": 0,
			"badgeLabel":           services.CompletionBadgeLabel(0),
		})
	}

	return c.JSON(fiber.Map{
		"progress":   progress,
		"badgeLabel": services.CompletionBadgeLabel(progress.CompletionPercentage),
	})
}

// GetAllProgress returns every started course, most recently touched first.
func GetAllProgress(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	rows, err := services.AllProgress(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load progress",
		})
	}

	return c.JSON(fiber.Map{
		"progress": rows,
		"total":    len(rows),
	})
}
