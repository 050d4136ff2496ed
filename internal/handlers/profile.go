package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/petra/fitsquad/internal/database"
	"github.com/petra/fitsquad/internal/middleware"
	"github.com/petra/fitsquad/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ProfileEntry is one timeline item on the profile page: a logged activity
// tagged with the challenge it went into.
type ProfileEntry struct {
	Activity       string
	ChallengeTitle string
	LoggedOn       time.Time
	CreatedAt      time.Time
}

func Profile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		middleware.ClearAuthCookie(c)
		return flashRedirect(c, "error", "Please log in to continue.", "/login")
	}

	var recent []ProfileEntry
	database.DB.Model(&models.ExerciseLog{}).
		Select("exercise_logs.activity, challenges.title AS challenge_title, exercise_logs.logged_on, exercise_logs.created_at").
		Joins("JOIN challenges ON challenges.id = exercise_logs.challenge_id").
		Where("exercise_logs.user_id = ?", user.ID).
		Order("exercise_logs.created_at DESC").
		Limit(30).
		Scan(&recent)

	var totalLogs int64
	database.DB.Model(&models.ExerciseLog{}).Where("user_id = ?", user.ID).Count(&totalLogs)

	return render(c, "profile", fiber.Map{
		"Title":     "Profile",
		"User":      user,
		"Recent":    recent,
		"TotalLogs": int(totalLogs),
	})
}

// UpdateGoal sets or clears the weekly active-days target.
func UpdateGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	raw := strings.TrimSpace(c.FormValue("weekly_goal"))
	if raw == "" {
		if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
			Update("weekly_goal", nil).Error; err != nil {
			return flashRedirect(c, "error", "Could not update your goal.", "/profile")
		}
		return flashRedirect(c, "info", "Weekly goal cleared.", "/profile")
	}

	goal, err := strconv.Atoi(raw)
	if err != nil || goal < 1 || goal > 7 {
		return flashRedirect(c, "error", "The weekly goal must be between 1 and 7 days.", "/profile")
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("weekly_goal", goal).Error; err != nil {
		return flashRedirect(c, "error", "Could not update your goal.", "/profile")
	}

	return flashRedirect(c, "success", "Weekly goal set to "+raw+" active days.", "/profile")
}

func UpdatePassword(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		middleware.ClearAuthCookie(c)
		return flashRedirect(c, "error", "Please log in to continue.", "/login")
	}

	var form models.PasswordForm
	if err := c.BodyParser(&form); err != nil {
		return flashRedirect(c, "error", "Could not read the form.", "/profile")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Current)); err != nil {
		return flashRedirect(c, "error", "Your current password is incorrect.", "/profile")
	}
	if len(form.New) < 6 {
		return flashRedirect(c, "error", "The new password must be at least 6 characters.", "/profile")
	}
	if form.New != form.Confirm {
		return flashRedirect(c, "error", "The new passwords do not match.", "/profile")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.New), bcrypt.DefaultCost)
	if err != nil {
		return flashRedirect(c, "error", "Something went wrong. Please try again.", "/profile")
	}

	if err := database.DB.Model(user).Update("password", string(hashed)).Error; err != nil {
		return flashRedirect(c, "error", "Could not update your password.", "/profile")
	}

	return flashRedirect(c, "success", "Password updated.", "/profile")
}
