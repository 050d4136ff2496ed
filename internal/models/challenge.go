package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive = "active"
	StatusClosed = "closed"
)

type Challenge struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatorID   uuid.UUID `json:"creatorId" gorm:"type:uuid;index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate" gorm:"not null"`
	EndDate     time.Time `json:"endDate" gorm:"not null"`
	GoalCount   int       `json:"goalCount" gorm:"not null"`
	GroupGoal   *int      `json:"groupGoal"`
	Status      string    `json:"status" gorm:"not null;default:active"`
	Prize       string    `json:"prize"`
	Penalty     string    `json:"penalty"`
	InviteCode  string    `json:"inviteCode" gorm:"uniqueIndex"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Creator User `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
}

func (ch *Challenge) BeforeCreate(tx *gorm.DB) error {
	if ch.ID == uuid.Nil {
		ch.ID = uuid.New()
	}
	if ch.InviteCode == "" {
		ch.InviteCode = NewInviteCode()
	}
	if ch.Status == "" {
		ch.Status = StatusActive
	}
	return nil
}

func (ch Challenge) IsActive() bool {
	return ch.Status == StatusActive
}

// DaysRemaining is the calendar-day distance to the end date, floored at zero.
func (ch Challenge) DaysRemaining() int {
	return ch.DaysRemainingAt(time.Now())
}

func (ch Challenge) DaysRemainingAt(now time.Time) int {
	days := int(dateOf(ch.EndDate).Sub(dateOf(now)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// NewInviteCode returns a 12-hex-char opaque join token.
func NewInviteCode() string {
	b := make([]byte, 6)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type CreateChallengeForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	GoalCount   string `form:"goal_count"`
	GroupGoal   string `form:"group_goal"`
	Prize       string `form:"prize"`
	Penalty     string `form:"penalty"`
}
