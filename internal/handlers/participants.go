package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/petra/fitsquad/internal/database"
	"github.com/petra/fitsquad/internal/middleware"
	"github.com/petra/fitsquad/internal/models"
)

// JoinByCode handles the dashboard's join form.
func JoinByCode(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.FormValue("code"))
	if code == "" {
		return flashRedirect(c, "error", "Enter an invite code to join.", "/")
	}
	return joinWithCode(c, code)
}

// JoinByLink redeems a shared invite link. Unauthenticated visitors bounce
// through login and land back here via ?next=.
func JoinByLink(c *fiber.Ctx) error {
	return joinWithCode(c, c.Params("code"))
}

func joinWithCode(c *fiber.Ctx, code string) error {
	userID := middleware.GetUserID(c)

	var challenge models.Challenge
	if err := database.DB.Where("invite_code = ?", code).First(&challenge).Error; err != nil {
		return flashRedirect(c, "error", "That invite code does not match any challenge.", "/")
	}

	if !challenge.IsActive() {
		return flashRedirect(c, "error", "This challenge has been closed to new participants.", "/")
	}

	// Joining twice is a no-op, not an error
	if isParticipant(challenge.ID, userID) {
		return flashRedirect(c, "info", "You are already in this challenge.", "/challenges/"+challenge.ID.String())
	}

	participant := models.ChallengeParticipant{
		ChallengeID: challenge.ID,
		UserID:      userID,
	}
	if err := database.DB.Create(&participant).Error; err != nil {
		return flashRedirect(c, "error", "Could not join the challenge.", "/")
	}

	return flashRedirect(c, "success", "You joined "+challenge.Title+". Time to move!",
		"/challenges/"+challenge.ID.String())
}

// AddParticipant lets the creator enroll a user by email.
func AddParticipant(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	challenge, err := findChallenge(c)
	if err != nil {
		return flashRedirect(c, "error", "Challenge not found.", "/")
	}
	page := "/challenges/" + challenge.ID.String()

	if challenge.CreatorID != userID {
		return flashRedirect(c, "error", "Only the creator can add participants.", page)
	}
	if !challenge.IsActive() {
		return flashRedirect(c, "error", "This challenge is closed.", page)
	}

	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	if email == "" {
		return flashRedirect(c, "error", "Enter an email address.", page)
	}

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return flashRedirect(c, "error", "No account found for "+email+".", page)
	}

	if isParticipant(challenge.ID, user.ID) {
		return flashRedirect(c, "error", user.Name+" is already participating.", page)
	}

	participant := models.ChallengeParticipant{
		ChallengeID: challenge.ID,
		UserID:      user.ID,
	}
	if err := database.DB.Create(&participant).Error; err != nil {
		return flashRedirect(c, "error", "Could not add the participant.", page)
	}

	return flashRedirect(c, "success", user.Name+" was added to the challenge.", page)
}

func participantChallengeIDs(userID uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID
	database.DB.Model(&models.ChallengeParticipant{}).
		Where("user_id = ?", userID).
		Pluck("challenge_id", &ids)
	return ids
}
