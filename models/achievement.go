package models

import "time"

// UnlockedAchievement records a one-time achievement unlock. At most one row
// exists per (user, code); the unique index makes re-unlocking impossible
// even if two evaluations race. BonusPoints snapshot the catalogue value at
// unlock time so later tuning never rewrites granted bonuses.
type UnlockedAchievement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:uniq_user_achievement;not null" json:"user_id"`
	Code        string    `gorm:"size:64;uniqueIndex:uniq_user_achievement;not null" json:"code"`
	Name        string    `gorm:"size:128" json:"name"`
	BonusPoints int       `gorm:"default:0" json:"bonus_points"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

func (UnlockedAchievement) TableName() string {
	return "gamification_achievements"
}
