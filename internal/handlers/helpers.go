package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/petra/fitsquad/internal/database"
	"github.com/petra/fitsquad/internal/middleware"
	"github.com/petra/fitsquad/internal/models"
	"gorm.io/gorm"
)

// render wraps c.Render so every page gets the layout plus the session
// bits the navigation and flash area need.
func render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Email"] = middleware.GetEmail(c)
	data["IsAdmin"] = middleware.GetRole(c) == models.RoleAdmin
	data["Flashes"] = middleware.TakeFlashes(c)
	return c.Render(name, data, "layout")
}

// flashRedirect is the standard failure (and success) path: queue one
// message, send the browser somewhere sensible.
func flashRedirect(c *fiber.Ctx, kind, message, location string) error {
	middleware.Flash(c, kind, message)
	return c.Redirect(location, fiber.StatusSeeOther)
}

func currentUser(c *fiber.Ctx) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", middleware.GetUserID(c)).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func isParticipant(challengeID, userID uuid.UUID) bool {
	var count int64
	database.DB.Model(&models.ChallengeParticipant{}).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Count(&count)
	return count > 0
}

func findChallenge(c *fiber.Ctx) (*models.Challenge, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// parseDate accepts the browser's date-input format and falls back to now.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Now()
	}
	return t
}
