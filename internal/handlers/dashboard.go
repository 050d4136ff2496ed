package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/petra/fitsquad/internal/database"
	"github.com/petra/fitsquad/internal/middleware"
	"github.com/petra/fitsquad/internal/models"
)

// Dashboard lists every challenge the user participates in, with their own
// standing in each, plus the weekly-goal widget and the quick-log and
// join-by-code forms.
func Dashboard(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		middleware.ClearAuthCookie(c)
		return flashRedirect(c, "error", "Please log in to continue.", "/login")
	}

	var participations []models.ChallengeParticipant
	database.DB.Where("user_id = ?", user.ID).Find(&participations)

	summaries := make([]models.ChallengeSummary, 0, len(participations))
	for _, p := range participations {
		var challenge models.Challenge
		if err := database.DB.First(&challenge, "id = ?", p.ChallengeID).Error; err != nil {
			continue
		}

		total := userLogTotal(challenge.ID, user.ID)

		var participants int64
		database.DB.Model(&models.ChallengeParticipant{}).
			Where("challenge_id = ?", challenge.ID).
			Count(&participants)

		summaries = append(summaries, models.ChallengeSummary{
			Challenge:     challenge,
			Total:         total,
			Percent:       models.ProgressPercent(total, challenge.GoalCount),
			DaysRemaining: challenge.DaysRemaining(),
			Participants:  int(participants),
		})
	}

	weekDays, weekPercent := weeklyProgress(user)

	return render(c, "dashboard", fiber.Map{
		"Title":       "Dashboard",
		"User":        user,
		"Summaries":   summaries,
		"WeekDays":    weekDays,
		"WeekPercent": weekPercent,
		"Today":       today(),
	})
}

// weeklyProgress counts distinct active days since Monday against the
// user's weekly goal. Quick-log fan-out writes one row per challenge, so
// the distinct-day count is what keeps the widget honest.
func weeklyProgress(user *models.User) (int, int) {
	if user.WeeklyGoal == nil {
		return 0, 0
	}

	weekStart := models.StartOfWeek(time.Now())

	var days []time.Time
	database.DB.Model(&models.ExerciseLog{}).
		Where("user_id = ? AND logged_on >= ?", user.ID, weekStart).
		Distinct("logged_on").
		Pluck("logged_on", &days)

	return len(days), models.ProgressPercent(len(days), *user.WeeklyGoal)
}

func userLogTotal(challengeID, userID uuid.UUID) int {
	var total int64
	database.DB.Model(&models.ExerciseLog{}).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Count(&total)
	return int(total)
}
