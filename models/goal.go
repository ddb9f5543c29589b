package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal is a user-defined target. Exactly one of the three target fields is
// set: a commit count, a savings amount, or a free-text custom condition
// that only an explicit external confirmation can satisfy.
// Achieved flips false -> true exactly once and never reverts, even if the
// external total later drops below the target again.
type Goal struct {
	ID            uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        uint           `gorm:"index;not null" json:"user_id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	TargetCommits *int           `json:"target_commits,omitempty"`
	TargetSavings *float64       `json:"target_savings,omitempty"`
	TargetCustom  *string        `gorm:"size:512" json:"target_custom,omitempty"`
	Achieved      bool           `gorm:"default:false" json:"achieved"`
	AchievedAt    *time.Time     `json:"achieved_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Goal) TableName() string {
	return "gamification_goals"
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
