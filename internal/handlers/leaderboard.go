package handlers

import (
	"strconv"

	"github.com/arnold/defi-academy-api/internal/middleware"
	"github.com/arnold/defi-academy-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard returns the current month's top point earners.
func GetLeaderboard(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	entries, err := services.GetLeaderboard(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load leaderboard",
		})
	}

	return c.JSON(fiber.Map{
		"leaderboard": entries,
		"total":       len(entries),
	})
}

// GetMyRank returns the caller's standing, including users who earned
// nothing this month (they share the bottom of the table).
func GetMyRank(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	rank, err := services.GetUserRank(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load rank",
		})
	}

	return c.JSON(rank)
}
