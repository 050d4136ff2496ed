package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/petra/fitsquad/internal/config"
	"github.com/petra/fitsquad/internal/database"
	"github.com/petra/fitsquad/internal/middleware"
	"github.com/petra/fitsquad/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func ShowRegister(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Title": "Register"})
}

func Register(c *fiber.Ctx) error {
	var form models.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return flashRedirect(c, "error", "Could not read the form.", "/register")
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))

	if form.Name == "" || form.Email == "" {
		return flashRedirect(c, "error", "Name and email are required.", "/register")
	}
	if len(form.Password) < 6 {
		return flashRedirect(c, "error", "Password must be at least 6 characters.", "/register")
	}
	if form.Password != form.Confirm {
		return flashRedirect(c, "error", "Passwords do not match.", "/register")
	}

	// Check if user exists
	var existing models.User
	if err := database.DB.Where("email = ?", form.Email).First(&existing).Error; err == nil {
		return flashRedirect(c, "error", "That email is already registered.", "/register")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return flashRedirect(c, "error", "Something went wrong. Please try again.", "/register")
	}

	role := models.RoleUser
	if admin := config.Load().AdminEmail; admin != "" && strings.EqualFold(admin, form.Email) {
		role = models.RoleAdmin
	}

	user := models.User{
		Name:     form.Name,
		Email:    form.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return flashRedirect(c, "error", "That email is already registered.", "/register")
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return flashRedirect(c, "error", "Account created, but login failed. Please log in.", "/login")
	}
	middleware.SetAuthCookie(c, token)

	return flashRedirect(c, "success", "Welcome to FitSquad, "+user.Name+"!", "/")
}

func ShowLogin(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{
		"Title": "Log in",
		"Next":  safeNext(c.Query("next")),
	})
}

func Login(c *fiber.Ctx) error {
	var form models.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return flashRedirect(c, "error", "Could not read the form.", "/login")
	}

	email := strings.ToLower(strings.TrimSpace(form.Email))

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return flashRedirect(c, "error", "Invalid email or password.", "/login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		return flashRedirect(c, "error", "Invalid email or password.", "/login")
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return flashRedirect(c, "error", "Something went wrong. Please try again.", "/login")
	}
	middleware.SetAuthCookie(c, token)

	next := safeNext(c.FormValue("next"))
	if next == "" {
		next = "/"
	}
	return c.Redirect(next, fiber.StatusSeeOther)
}

func Logout(c *fiber.Ctx) error {
	middleware.ClearAuthCookie(c)
	return flashRedirect(c, "info", "You have been logged out.", "/login")
}

// safeNext keeps post-login redirects on this site. Only a single leading
// slash is allowed; "//host" would be treated as scheme-relative.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}
