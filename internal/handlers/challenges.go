package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/petra/fitsquad/internal/database"
	"github.com/petra/fitsquad/internal/middleware"
	"github.com/petra/fitsquad/internal/models"
	"gorm.io/gorm"
)

func NewChallenge(c *fiber.Ctx) error {
	return render(c, "challenge_new", fiber.Map{
		"Title": "New challenge",
		"Today": today(),
	})
}

func CreateChallenge(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var form models.CreateChallengeForm
	if err := c.BodyParser(&form); err != nil {
		return flashRedirect(c, "error", "Could not read the form.", "/challenges/new")
	}

	form.Title = strings.TrimSpace(form.Title)
	if form.Title == "" {
		return flashRedirect(c, "error", "A title is required.", "/challenges/new")
	}

	start := parseDate(form.StartDate)
	end := parseDate(form.EndDate)
	if end.Before(start) {
		return flashRedirect(c, "error", "The end date cannot be before the start date.", "/challenges/new")
	}

	goalCount, err := strconv.Atoi(form.GoalCount)
	if err != nil || goalCount < 1 {
		return flashRedirect(c, "error", "The goal count must be at least 1.", "/challenges/new")
	}

	var groupGoal *int
	if form.GroupGoal != "" {
		g, err := strconv.Atoi(form.GroupGoal)
		if err != nil || g < 1 {
			return flashRedirect(c, "error", "The group goal must be at least 1.", "/challenges/new")
		}
		groupGoal = &g
	}

	challenge := models.Challenge{
		CreatorID:   userID,
		Title:       form.Title,
		Description: strings.TrimSpace(form.Description),
		StartDate:   start,
		EndDate:     end,
		GoalCount:   goalCount,
		GroupGoal:   groupGoal,
		Prize:       strings.TrimSpace(form.Prize),
		Penalty:     strings.TrimSpace(form.Penalty),
	}

	// The creator joins their own challenge in the same transaction
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&challenge).Error; err != nil {
			return err
		}
		return tx.Create(&models.ChallengeParticipant{
			ChallengeID: challenge.ID,
			UserID:      userID,
		}).Error
	})
	if err != nil {
		return flashRedirect(c, "error", "Could not create the challenge.", "/challenges/new")
	}

	return flashRedirect(c, "success", "Challenge created. Share the invite link to get your squad in.",
		"/challenges/"+challenge.ID.String())
}

// ShowChallenge renders the challenge page: header, leaderboard, group
// progress, activity feed and the owner controls. Owner or participant only.
func ShowChallenge(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	challenge, err := findChallenge(c)
	if err != nil {
		return flashRedirect(c, "error", "Challenge not found.", "/")
	}

	if !isParticipant(challenge.ID, userID) && challenge.CreatorID != userID {
		return flashRedirect(c, "error", "You are not part of that challenge.", "/")
	}

	// Rows created before invite codes existed get one on first view
	if challenge.InviteCode == "" {
		challenge.InviteCode = models.NewInviteCode()
		database.DB.Model(challenge).Update("invite_code", challenge.InviteCode)
	}

	database.DB.Preload("Creator").First(challenge, "id = ?", challenge.ID)

	entries := leaderboard(challenge)

	groupTotal := 0
	for _, e := range entries {
		groupTotal += e.Total
	}
	groupPercent := 0
	if challenge.GroupGoal != nil {
		groupPercent = models.ProgressPercent(groupTotal, *challenge.GroupGoal)
	}

	return render(c, "challenge", fiber.Map{
		"Title":         challenge.Title,
		"Challenge":     challenge,
		"IsCreator":     challenge.CreatorID == userID,
		"Leaderboard":   entries,
		"GroupTotal":    groupTotal,
		"GroupPercent":  groupPercent,
		"DaysRemaining": challenge.DaysRemaining(),
		"Activity":      recentActivity(challenge.ID, 20),
		"InviteURL":     "/join/" + challenge.InviteCode,
		"Today":         today(),
	})
}

// leaderboard ranks every participant, zero totals included. Ties on total
// break by name so the order is stable between refreshes.
func leaderboard(challenge *models.Challenge) []models.LeaderboardEntry {
	var entries []models.LeaderboardEntry
	database.DB.Model(&models.ChallengeParticipant{}).
		Select("challenge_participants.user_id AS user_id, users.name AS name, COUNT(exercise_logs.id) AS total").
		Joins("JOIN users ON users.id = challenge_participants.user_id").
		Joins("LEFT JOIN exercise_logs ON exercise_logs.challenge_id = challenge_participants.challenge_id"+
			" AND exercise_logs.user_id = challenge_participants.user_id").
		Where("challenge_participants.challenge_id = ?", challenge.ID).
		Group("challenge_participants.user_id, users.name").
		Order("total DESC, users.name ASC").
		Scan(&entries)

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Percent = models.ProgressPercent(entries[i].Total, challenge.GoalCount)
	}
	return entries
}

// ActivityEntry is one line in a challenge's recent-activity feed.
type ActivityEntry struct {
	UserName  string
	Activity  string
	LoggedOn  time.Time
	CreatedAt time.Time
}

func recentActivity(challengeID uuid.UUID, limit int) []ActivityEntry {
	var entries []ActivityEntry
	database.DB.Model(&models.ExerciseLog{}).
		Select("users.name AS user_name, exercise_logs.activity, exercise_logs.logged_on, exercise_logs.created_at").
		Joins("JOIN users ON users.id = exercise_logs.user_id").
		Where("exercise_logs.challenge_id = ?", challengeID).
		Order("exercise_logs.created_at DESC").
		Limit(limit).
		Scan(&entries)
	return entries
}

func CloseChallenge(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	challenge, err := findChallenge(c)
	if err != nil {
		return flashRedirect(c, "error", "Challenge not found.", "/")
	}
	if challenge.CreatorID != userID {
		return flashRedirect(c, "error", "Only the creator can close a challenge.", "/challenges/"+challenge.ID.String())
	}
	if !challenge.IsActive() {
		return flashRedirect(c, "info", "This challenge is already closed.", "/challenges/"+challenge.ID.String())
	}

	if err := database.DB.Model(challenge).Update("status", models.StatusClosed).Error; err != nil {
		return flashRedirect(c, "error", "Could not close the challenge.", "/challenges/"+challenge.ID.String())
	}

	return flashRedirect(c, "success", "Challenge closed. Final standings are in.", "/challenges/"+challenge.ID.String())
}

func DeleteChallenge(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	challenge, err := findChallenge(c)
	if err != nil {
		return flashRedirect(c, "error", "Challenge not found.", "/")
	}
	if challenge.CreatorID != userID {
		return flashRedirect(c, "error", "Only the creator can delete a challenge.", "/challenges/"+challenge.ID.String())
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("challenge_id = ?", challenge.ID).Delete(&models.ExerciseLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("challenge_id = ?", challenge.ID).Delete(&models.ChallengeParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(challenge).Error
	})
	if err != nil {
		return flashRedirect(c, "error", "Could not delete the challenge.", "/challenges/"+challenge.ID.String())
	}

	return flashRedirect(c, "success", "Challenge deleted.", "/")
}
