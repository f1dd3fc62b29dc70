package handlers

import (
	"strconv"

	"github.com/arnold/defi-academy-api/internal/middleware"
	"github.com/arnold/defi-academy-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetPoints returns the user's lifetime total and paginated history.
func GetPoints(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	offset := (page - 1) * limit

	txns, total, err := services.PointHistory(userID, offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load point history",
		})
	}

	totalPoints, err := services.TotalPoints(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load point total",
		})
	}

	return c.JSON(fiber.Map{
		"totalPoints":  totalPoints,
		"transactions": txns,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// DailyLogin claims today's check-in points. Safe to call any number of
// times per day; only the first claim pays out.
func DailyLogin(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	alreadyLoggedIn, pointsAwarded, err := services.CheckDailyLogin(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record check-in, please try again",
		})
	}

	return c.JSON(fiber.Map{
		"alreadyLoggedIn": alreadyLoggedIn,
		"pointsAwarded":   pointsAwarded,
	})
}
