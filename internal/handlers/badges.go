package handlers

import (
	"github.com/arnold/defi-academy-api/internal/middleware"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/arnold/defi-academy-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetBadges returns every badge definition with the caller's earned state.
func GetBadges(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	earned, err := services.UserBadges(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load badges",
		})
	}

	earnedAt := make(map[string]*models.UserBadge, len(earned))
	for i := range earned {
		earnedAt[earned[i].BadgeID] = &earned[i]
	}

	type badgeView struct {
		models.BadgeDefinition
		Earned    bool        `json:"earned"`
		GrantedAt interface{} `json:"grantedAt,omitempty"`
	}

	badges := make([]badgeView, 0, len(models.BadgeDefinitions))
	for _, id := range []string{
		models.BadgeFirstSteps,
		models.BadgeCourseGraduate,
		models.BadgeScholar,
		models.BadgeDefiMaster,
	} {
		view := badgeView{BadgeDefinition: models.BadgeDefinitions[id]}
		if grant, ok := earnedAt[id]; ok {
			view.Earned = true
			view.GrantedAt = grant.GrantedAt
		}
		badges = append(badges, view)
	}

	return c.JSON(fiber.Map{
		"badges": badges,
		"earned": len(earned),
	})
}
