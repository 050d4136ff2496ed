package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/petra/fitsquad/internal/database"
	"github.com/petra/fitsquad/internal/middleware"
	"github.com/petra/fitsquad/internal/models"
	"gorm.io/gorm"
)

// LogActivity records one activity into a single challenge.
func LogActivity(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	challenge, err := findChallenge(c)
	if err != nil {
		return flashRedirect(c, "error", "Challenge not found.", "/")
	}
	page := "/challenges/" + challenge.ID.String()

	if !isParticipant(challenge.ID, userID) {
		return flashRedirect(c, "error", "You are not part of that challenge.", "/")
	}
	if !challenge.IsActive() {
		return flashRedirect(c, "error", "This challenge is closed. New activity no longer counts.", page)
	}

	var form models.LogForm
	if err := c.BodyParser(&form); err != nil {
		return flashRedirect(c, "error", "Could not read the form.", page)
	}

	form.Activity = strings.TrimSpace(form.Activity)
	if form.Activity == "" {
		return flashRedirect(c, "error", "Tell us what you did.", page)
	}

	entry := models.ExerciseLog{
		UserID:      userID,
		ChallengeID: challenge.ID,
		Activity:    form.Activity,
		LoggedOn:    parseDate(form.LoggedOn),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return flashRedirect(c, "error", "Could not save the activity.", page)
	}

	return flashRedirect(c, "success", "Activity logged. Keep it up!", page)
}

// QuickLog fans one activity out to every active challenge the user has
// joined, one log row each, all or nothing.
func QuickLog(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var form models.LogForm
	if err := c.BodyParser(&form); err != nil {
		return flashRedirect(c, "error", "Could not read the form.", "/")
	}

	form.Activity = strings.TrimSpace(form.Activity)
	if form.Activity == "" {
		return flashRedirect(c, "error", "Tell us what you did.", "/")
	}

	ids := participantChallengeIDs(userID)

	var active []models.Challenge
	if len(ids) > 0 {
		database.DB.Where("id IN ? AND status = ?", ids, models.StatusActive).Find(&active)
	}
	if len(active) == 0 {
		return flashRedirect(c, "info", "You have no active challenges to log into.", "/")
	}

	loggedOn := parseDate(form.LoggedOn)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, challenge := range active {
			entry := models.ExerciseLog{
				UserID:      userID,
				ChallengeID: challenge.ID,
				Activity:    form.Activity,
				LoggedOn:    loggedOn,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return flashRedirect(c, "error", "Could not save the activity.", "/")
	}

	if len(active) == 1 {
		return flashRedirect(c, "success", "Activity logged to 1 challenge.", "/")
	}
	return flashRedirect(c, "success", "Activity logged to "+strconv.Itoa(len(active))+" challenges.", "/")
}
