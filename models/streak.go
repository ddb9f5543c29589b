package models

import "time"

// StreakState tracks consecutive active days for one user. A day counts as
// active when it contains at least one recorded action, measured against
// the user's reference timezone.
//
// Invariants: LongestStreak >= CurrentStreak, LastActiveDay never moves
// backwards. The row doubles as the per-user serialization point: the
// record pipeline locks it for the duration of its transaction.
type StreakState struct {
	UserID        uint       `gorm:"primaryKey" json:"user_id"`
	CurrentStreak int        `gorm:"default:0" json:"current_streak"`
	LongestStreak int        `gorm:"default:0" json:"longest_streak"`
	LastActiveDay *time.Time `json:"last_active_day"`
	// One-shot markers for the synthetic streak awards. Guarded here
	// instead of re-derived from the streak value because the streak can
	// cycle through 3 and 7 repeatedly after resets.
	Streak3Awarded bool      `gorm:"default:false" json:"-"`
	Streak7Awarded bool      `gorm:"default:false" json:"-"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (StreakState) TableName() string {
	return "gamification_streaks"
}
