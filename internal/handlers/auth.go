package handlers

import (
	"log"

	"github.com/arnold/defi-academy-api/internal/database"
	"github.com/arnold/defi-academy-api/internal/middleware"
	"github.com/arnold/defi-academy-api/internal/models"
	"github.com/arnold/defi-academy-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	// Check if user exists
	var existingUser models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email already registered",
		})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	// Pay the referrer, keyed by the new user's ID so a referral can only
	// ever be credited once. Best-effort: signup never fails over this.
	if req.ReferralCode != "" {
		var referrer models.User
		if err := database.DB.Where("referral_code = ?", req.ReferralCode).First(&referrer).Error; err == nil {
			refID := user.ID.String()
			if _, err := services.AwardPoints(referrer.ID, models.ActionReferralSignup, &refID,
				map[string]interface{}{"referredEmail": user.Email}); err != nil {
				log.Printf("points: referral_signup for %s failed: %v", referrer.ID, err)
			}
		}
	}

	token, err := middleware.GenerateToken(user.ID, user.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.AuthResponse{
		Token: token,
		User:  user,
	})
}

func Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	// Stamp the daily check-in; a login must still succeed if this fails.
	if _, _, err := services.CheckDailyLogin(user.ID); err != nil {
		log.Printf("points: daily_login on login for %s failed: %v", user.ID, err)
	}

	token, err := middleware.GenerateToken(user.ID, user.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(models.AuthResponse{
		Token: token,
		User:  user,
	})
}

func GetMe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	totalPoints, _ := services.TotalPoints(userID)
	badges, _ := services.UserBadges(userID)
	completedCourses, _ := services.CompletedCourseCount(userID)

	return c.JSON(fiber.Map{
		"id":               user.ID,
		"email":            user.Email,
		"name":             user.Name,
		"displayName":      user.DisplayName,
		"avatarUrl":        user.AvatarURL,
		"bio":              user.Bio,
		"referralCode":     user.ReferralCode,
		"totalPoints":      totalPoints,
		"badgeCount":       len(badges),
		"completedCourses": completedCourses,
		"createdAt":        user.CreatedAt,
		"updatedAt":        user.UpdatedAt,
	})
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Name != nil {
		user.Name = *req.Name
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	// A filled-out profile is worth a one-time award.
	if user.DisplayName != "" && user.AvatarURL != "" && user.Bio != "" {
		profileAction := "profile"
		if _, err := services.AwardPoints(userID, models.ActionProfileCompleted, &profileAction, nil); err != nil {
			log.Printf("points: profile_completed for %s failed: %v", userID, err)
		}
	}

	return c.JSON(user)
}
