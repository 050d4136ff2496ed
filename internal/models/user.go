package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Password   string    `json:"-"`
	Role       string    `json:"role" gorm:"not null;default:user"`
	WeeklyGoal *int      `json:"weeklyGoal"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Challenges []Challenge `json:"challenges,omitempty" gorm:"foreignKey:CreatorID"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// Auth and profile forms
type RegisterForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Confirm  string `form:"confirm"`
}

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type PasswordForm struct {
	Current string `form:"current"`
	New     string `form:"new"`
	Confirm string `form:"confirm"`
}
