package models

import "time"

// ActionLogEntry is one scored user action. Rows are append-only and never
// mutated; the log is the canonical source of truth for point totals.
// Points carry the schedule value in force at record time, so later tuning
// never rewrites history.
type ActionLogEntry struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"index;uniqueIndex:uniq_user_action_day;not null" json:"user_id"`
	ActionType string `gorm:"size:32;uniqueIndex:uniq_user_action_day;not null" json:"action_type"`
	Points     int    `gorm:"not null" json:"points"`
	Meta       string `gorm:"size:512" json:"meta,omitempty"`
	// ActiveDay is set only for once-per-day action types and holds the
	// day-start instant of the calendar day (user's reference timezone)
	// the action was credited to. The unique index backs the
	// DAILY_FIRST_ACCESS once-per-day guarantee even under races; for
	// repeatable actions the column stays NULL and never collides.
	ActiveDay *time.Time `gorm:"uniqueIndex:uniq_user_action_day" json:"-"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

// TableName keeps the gamification tables grouped in the schema.
func (ActionLogEntry) TableName() string {
	return "gamification_actions"
}
