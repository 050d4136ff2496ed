package handlers_test

import (
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petra/fitsquad/internal/database"
	"github.com/petra/fitsquad/internal/models"
)

func registerAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	t.Setenv("ADMIN_EMAIL", "root@example.com")
	return register(t, app, "Root", "root@example.com")
}

func adminUserID(t *testing.T, email string) string {
	t.Helper()
	var user models.User
	require.NoError(t, database.DB.First(&user, "email = ?", email).Error)
	return user.ID.String()
}

func TestBootstrapAdminRole(t *testing.T) {
	app := newTestApp(t)
	registerAdmin(t, app)

	var user models.User
	require.NoError(t, database.DB.First(&user, "email = ?", "root@example.com").Error)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestAdminPagesRequireAdminRole(t *testing.T) {
	app := newTestApp(t)
	cookie := register(t, app, "Alex", "alex@example.com")

	resp := get(t, app, "/admin/users", cookie)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	admin := registerAdmin(t, app)
	resp = get(t, app, "/admin/users", admin)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminResetPassword(t *testing.T) {
	app := newTestApp(t)
	admin := registerAdmin(t, app)
	register(t, app, "Alex", "alex@example.com")

	var before models.User
	require.NoError(t, database.DB.First(&before, "email = ?", "alex@example.com").Error)

	resp := postForm(t, app, "/admin/users/"+adminUserID(t, "alex@example.com")+"/reset", admin, url.Values{})
	assert.Equal(t, "/admin/users", resp.Header.Get("Location"))

	var after models.User
	require.NoError(t, database.DB.First(&after, "email = ?", "alex@example.com").Error)
	assert.NotEqual(t, before.Password, after.Password)

	// The old password no longer works
	resp = postForm(t, app, "/login", "", url.Values{
		"email": {"alex@example.com"}, "password": {"hunter22"},
	})
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestAdminDeleteUserCascades(t *testing.T) {
	app := newTestApp(t)
	admin := registerAdmin(t, app)

	alex := register(t, app, "Alex", "alex@example.com")
	owned := createChallenge(t, app, alex, url.Values{"title": {"Alex's"}})

	blake := register(t, app, "Blake", "blake@example.com")
	postForm(t, app, "/challenges/join", blake, url.Values{"code": {owned.InviteCode}})
	logActivity(t, app, blake, owned, "pushups")

	other := createChallenge(t, app, blake, url.Values{"title": {"Blake's"}})
	postForm(t, app, "/challenges/join", alex, url.Values{"code": {other.InviteCode}})
	logActivity(t, app, alex, owned, "situps")
	logActivity(t, app, alex, other, "plank")

	resp := postForm(t, app, "/admin/users/"+adminUserID(t, "alex@example.com")+"/delete", admin, url.Values{})
	assert.Equal(t, "/admin/users", resp.Header.Get("Location"))

	var users int64
	database.DB.Model(&models.User{}).Where("email = ?", "alex@example.com").Count(&users)
	assert.EqualValues(t, 0, users)

	// Alex's challenge is gone with everything inside it, Blake's logs included
	var challenges int64
	database.DB.Model(&models.Challenge{}).Where("id = ?", owned.ID).Count(&challenges)
	assert.EqualValues(t, 0, challenges)

	var orphanLogs int64
	database.DB.Model(&models.ExerciseLog{}).Where("challenge_id = ?", owned.ID).Count(&orphanLogs)
	assert.EqualValues(t, 0, orphanLogs)

	var orphanParticipants int64
	database.DB.Model(&models.ChallengeParticipant{}).Where("challenge_id = ?", owned.ID).Count(&orphanParticipants)
	assert.EqualValues(t, 0, orphanParticipants)

	// Blake's challenge survives, minus Alex's membership and logs
	var remaining models.Challenge
	require.NoError(t, database.DB.First(&remaining, "id = ?", other.ID).Error)

	var alexRows int64
	database.DB.Model(&models.ChallengeParticipant{}).Where("challenge_id = ?", other.ID).Count(&alexRows)
	assert.EqualValues(t, 1, alexRows, "only Blake remains")

	var alexLogs int64
	database.DB.Model(&models.ExerciseLog{}).Where("challenge_id = ?", other.ID).Count(&alexLogs)
	assert.EqualValues(t, 0, alexLogs)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	app := newTestApp(t)
	admin := registerAdmin(t, app)

	resp := postForm(t, app, "/admin/users/"+adminUserID(t, "root@example.com")+"/delete", admin, url.Values{})
	assert.Equal(t, "/admin/users", resp.Header.Get("Location"))

	var users int64
	database.DB.Model(&models.User{}).Where("email = ?", "root@example.com").Count(&users)
	assert.EqualValues(t, 1, users)
}
