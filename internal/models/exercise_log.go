package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExerciseLog struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	ChallengeID uuid.UUID `json:"challengeId" gorm:"type:uuid;index;not null"`
	Count       int       `json:"count" gorm:"not null;default:1"`
	Activity    string    `json:"activity" gorm:"not null"`
	LoggedOn    time.Time `json:"loggedOn" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (el *ExerciseLog) BeforeCreate(tx *gorm.DB) error {
	if el.ID == uuid.Nil {
		el.ID = uuid.New()
	}
	if el.Count == 0 {
		el.Count = 1
	}
	if el.LoggedOn.IsZero() {
		el.LoggedOn = time.Now()
	}
	// Keep one value per calendar day so distinct-day counts stay exact
	el.LoggedOn = dateOf(el.LoggedOn)
	return nil
}

// StartOfWeek truncates to the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	day := dateOf(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

type LogForm struct {
	Activity string `form:"activity"`
	LoggedOn string `form:"logged_on"`
}
