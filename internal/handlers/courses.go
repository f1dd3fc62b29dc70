package handlers

import (
	"errors"
	"strconv"

	"github.com/arnold/defi-academy-api/internal/catalog"
	"github.com/arnold/defi-academy-api/internal/middleware"
	"github.com/arnold/defi-academy-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetCourses lists the catalog with the caller's completion overlay.
func GetCourses(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	progressByID := map[int]float64{}
	if rows, err := services.AllProgress(userID); err == nil {
		for _, row := range rows {
			progressByID[row.CourseID] = row.CompletionPercentage
		}
	}

	type courseView struct {
		catalog.Course
		CompletionPercentage float64 `json:"completionPercentage"`
		BadgeLabel           string  `json:"badgeLabel"`
	}

	courses := catalog.All()
	views := make([]courseView, len(courses))
	for i, course := range courses {
		pct := progressByID[course.ID]
		views[i] = courseView{
			Course:               course,
			CompletionPercentage: pct,
			BadgeLabel:           services.CompletionBadgeLabel(pct),
		}
	}

	return c.JSON(fiber.Map{
		"courses": views,
		"total":   len(views),
	})
}

// GetCourse returns one catalog course plus the caller's progress row.
func GetCourse(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	courseID, err := strconv.Atoi(c.Params("courseId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	course, ok := catalog.ByID(courseID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	progress, err := services.GetCourseProgress(userID, courseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load progress",
		})
	}

	return c.JSON(fiber.Map{
		"course":   course,
		"progress": progress,
	})
}

// SubmitQuiz grades a module quiz; a pass completes the module.
func SubmitQuiz(c *fiber.Ctx) error {
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

	var req struct {
		Answers []int `json:"answers"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := services.SubmitQuiz(userID, courseID, moduleIndex, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCourseNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		case errors.Is(err, services.ErrInvalidModule):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No quiz for this module",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to submit quiz, please try again",
			})
		}
	}

	return c.JSON(result)
}
