package gamification

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/organizai/organizai/config"
	"github.com/organizai/organizai/models"
	"github.com/organizai/organizai/utils"
)

// RecordResult is what one recorded action produced: the log entry, the
// streak state after the update, and any achievements the action unlocked.
// Duplicate marks an idempotent repeat of a once-per-day action; nothing
// was scored and Entry is the existing row.
type RecordResult struct {
	Entry     models.ActionLogEntry        `json:"entry"`
	Streak    models.StreakState           `json:"streak"`
	Unlocked  []models.UnlockedAchievement `json:"unlocked"`
	Duplicate bool                         `json:"duplicate"`
}

// Record validates and appends one scored action for a user, then updates
// the streak and re-evaluates achievements inside the same transaction.
// Either the whole record+derive pipeline commits or none of it does; a
// persisted action never exists without consistent streak/achievement
// state.
//
// DAILY_FIRST_ACCESS is idempotent per calendar day in the user's reference
// timezone: repeats return the existing entry as a no-op. Other action
// types score independently on every call. The synthetic STREAK_3/STREAK_7
// types are emitted by the engine itself and are rejected here.
func (s *Service) Record(userID uint, actionType, meta string) (*RecordResult, error) {
	points, ok := s.cfg.ActionPoints[actionType]
	if !ok {
		return nil, ErrInvalidAction
	}
	if actionType == config.ActionStreak3 || actionType == config.ActionStreak7 {
		// Streak milestones are awarded internally, once, guarded by the
		// markers on the streak row.
		return nil, ErrInvalidAction
	}
	meta = strings.TrimSpace(utils.Sanitize(meta))

	result := &RecordResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.loadUser(tx, userID)
		if err != nil {
			return err
		}
		loc := s.userLocation(user)

		st, err := s.lockStreakState(tx, userID)
		if err != nil {
			return err
		}
		today := dayStart(s.clock.Now(), loc)

		if actionType == config.ActionDailyFirstAccess {
			var existing models.ActionLogEntry
			err := tx.Where("user_id = ? AND action_type = ? AND active_day = ?",
				userID, actionType, today).First(&existing).Error
			if err == nil {
				result.Entry = existing
				result.Streak = *st
				result.Duplicate = true
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		entry := models.ActionLogEntry{
			UserID:     userID,
			ActionType: actionType,
			Points:     points,
			Meta:       meta,
			CreatedAt:  s.clock.Now(),
		}
		if actionType == config.ActionDailyFirstAccess {
			entry.ActiveDay = &today
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		s.advanceStreak(st, today, loc)
		if err := s.awardStreakMilestones(tx, st); err != nil {
			return err
		}
		if err := tx.Save(st).Error; err != nil {
			return err
		}

		unlocked, total, err := s.evaluateTx(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("points", total).Error; err != nil {
			return err
		}

		result.Entry = entry
		result.Streak = *st
		result.Unlocked = unlocked
		return nil
	})
	if err != nil {
		return nil, translateErr(err)
	}

	if !result.Duplicate {
		utils.Sugar.Debugw("action recorded",
			"user_id", userID,
			"action_type", actionType,
			"points", result.Entry.Points,
			"streak", result.Streak.CurrentStreak,
			"unlocked", len(result.Unlocked),
		)
	}
	return result, nil
}
