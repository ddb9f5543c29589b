package gamification

import (
	"time"

	"gorm.io/gorm"

	"github.com/organizai/organizai/config"
	"github.com/organizai/organizai/models"
)

// advanceStreak applies the day-streak state machine for an action credited
// to today (day-start instant in the user's reference timezone).
//
//	first action ever        -> streak 1
//	last active == today     -> already credited, no change
//	last active == yesterday -> streak continues
//	older gap                -> streak resets to 1, longest is kept
func (s *Service) advanceStreak(st *models.StreakState, today time.Time, loc *time.Location) {
	switch {
	case st.LastActiveDay == nil:
		st.CurrentStreak = 1
	case sameDay(*st.LastActiveDay, today, loc):
		return
	case sameDay(*st.LastActiveDay, today.AddDate(0, 0, -1), loc):
		st.CurrentStreak++
	default:
		st.CurrentStreak = 1
	}
	st.LastActiveDay = &today
	if st.CurrentStreak > st.LongestStreak {
		st.LongestStreak = st.CurrentStreak
	}
}

// awardStreakMilestones emits the synthetic STREAK_3/STREAK_7 actions the
// first time the streak reaches those lengths. Each fires at most once per
// user, guarded by the awarded markers rather than the streak value, since
// the streak can cycle through 3 and 7 repeatedly after resets.
func (s *Service) awardStreakMilestones(tx *gorm.DB, st *models.StreakState) error {
	type milestone struct {
		length     int
		actionType string
		awarded    *bool
	}
	milestones := []milestone{
		{3, config.ActionStreak3, &st.Streak3Awarded},
		{7, config.ActionStreak7, &st.Streak7Awarded},
	}
	for _, m := range milestones {
		if *m.awarded || st.CurrentStreak < m.length {
			continue
		}
		entry := models.ActionLogEntry{
			UserID:     st.UserID,
			ActionType: m.actionType,
			Points:     s.cfg.ActionPoints[m.actionType],
			CreatedAt:  s.clock.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		*m.awarded = true
	}
	return nil
}
