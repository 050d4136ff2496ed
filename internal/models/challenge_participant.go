package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChallengeParticipant struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ChallengeID uuid.UUID `json:"challengeId" gorm:"type:uuid;not null;uniqueIndex:idx_challenge_user"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_challenge_user"`
	JoinedAt    time.Time `json:"joinedAt"`
	CreatedAt   time.Time `json:"createdAt"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (cp *ChallengeParticipant) BeforeCreate(tx *gorm.DB) error {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	if cp.JoinedAt.IsZero() {
		cp.JoinedAt = time.Now()
	}
	return nil
}
