package handlers

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/petra/fitsquad/internal/database"
	"github.com/petra/fitsquad/internal/middleware"
	"github.com/petra/fitsquad/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminUserRow is one line in the admin user table.
type AdminUserRow struct {
	User           models.User
	Created        int64
	Participations int64
}

func AdminUsers(c *fiber.Ctx) error {
	var users []models.User
	database.DB.Order("created_at ASC").Find(&users)

	rows := make([]AdminUserRow, len(users))
	for i, u := range users {
		var created, participations int64
		database.DB.Model(&models.Challenge{}).Where("creator_id = ?", u.ID).Count(&created)
		database.DB.Model(&models.ChallengeParticipant{}).Where("user_id = ?", u.ID).Count(&participations)
		rows[i] = AdminUserRow{User: u, Created: created, Participations: participations}
	}

	return render(c, "admin_users", fiber.Map{
		"Title": "Users",
		"Rows":  rows,
	})
}

// AdminResetPassword sets a random temporary password and flashes it so the
// admin can hand it over out of band.
func AdminResetPassword(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return flashRedirect(c, "error", "User not found.", "/admin/users")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		return flashRedirect(c, "error", "User not found.", "/admin/users")
	}

	temp := tempPassword()
	hashed, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
	if err != nil {
		return flashRedirect(c, "error", "Could not reset the password.", "/admin/users")
	}

	if err := database.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		return flashRedirect(c, "error", "Could not reset the password.", "/admin/users")
	}

	return flashRedirect(c, "success",
		"Temporary password for "+user.Email+": "+temp, "/admin/users")
}

// AdminDeleteUser removes a user and everything they own: each challenge
// they created (with its logs and participants), then their own
// participations and logs, then the account. One transaction.
func AdminDeleteUser(c *fiber.Ctx) error {
	adminID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return flashRedirect(c, "error", "User not found.", "/admin/users")
	}
	if id == adminID {
		return flashRedirect(c, "error", "You cannot delete your own account.", "/admin/users")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		return flashRedirect(c, "error", "User not found.", "/admin/users")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var challengeIDs []uuid.UUID
		if err := tx.Model(&models.Challenge{}).Where("creator_id = ?", user.ID).
			Pluck("id", &challengeIDs).Error; err != nil {
			return err
		}

		if len(challengeIDs) > 0 {
			if err := tx.Where("challenge_id IN ?", challengeIDs).Delete(&models.ExerciseLog{}).Error; err != nil {
				return err
			}
			if err := tx.Where("challenge_id IN ?", challengeIDs).Delete(&models.ChallengeParticipant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", challengeIDs).Delete(&models.Challenge{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.ChallengeParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.ExerciseLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return flashRedirect(c, "error", "Could not delete the user.", "/admin/users")
	}

	return flashRedirect(c, "success", user.Email+" and all their data has been deleted.", "/admin/users")
}

func tempPassword() string {
	b := make([]byte, 9)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
