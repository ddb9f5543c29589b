package gamification

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/organizai/organizai/models"
	"github.com/organizai/organizai/utils"
)

// GoalTarget is the polymorphic goal condition: exactly one field must be
// set. Custom targets have no closed-form check inside the engine and are
// satisfied only through ConfirmGoal.
type GoalTarget struct {
	Commits *int     `json:"commits,omitempty"`
	Savings *float64 `json:"savings,omitempty"`
	Custom  *string  `json:"custom,omitempty"`
}

// ExternalTotals carries the current counters owned by the finance and
// agenda modules; the engine never computes them itself.
type ExternalTotals struct {
	Commits int     `json:"commits"`
	Savings float64 `json:"savings"`
}

// CreateGoal registers a user-defined goal.
func (s *Service) CreateGoal(userID uint, title string, target GoalTarget) (*models.Goal, error) {
	title = strings.TrimSpace(utils.Sanitize(title))
	if title == "" {
		return nil, ErrInvalidGoal
	}
	set := 0
	if target.Commits != nil {
		set++
	}
	if target.Savings != nil {
		set++
	}
	if target.Custom != nil {
		set++
	}
	if set != 1 {
		return nil, ErrInvalidGoal
	}
	if target.Custom != nil {
		clean := strings.TrimSpace(utils.Sanitize(*target.Custom))
		if clean == "" {
			return nil, ErrInvalidGoal
		}
		target.Custom = &clean
	}

	goal := models.Goal{
		UserID:        userID,
		Title:         title,
		TargetCommits: target.Commits,
		TargetSavings: target.Savings,
		TargetCustom:  target.Custom,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadUser(tx, userID); err != nil {
			return err
		}
		return tx.Create(&goal).Error
	})
	if err != nil {
		return nil, translateErr(err)
	}
	return &goal, nil
}

// ListGoals returns all goals of a user, newest first.
func (s *Service) ListGoals(userID uint) ([]models.Goal, error) {
	if _, err := s.loadUser(s.db, userID); err != nil {
		return nil, translateErr(err)
	}
	var goals []models.Goal
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return goals, nil
}

// CheckGoals evaluates the user's numeric goals against the supplied
// external totals and flips achieved on every goal whose target is met.
// The flip is irreversible: goals already achieved are never re-examined,
// even if the totals later drop below target. Returns the goals newly
// marked achieved.
func (s *Service) CheckGoals(userID uint, totals ExternalTotals) ([]models.Goal, error) {
	var flipped []models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadUser(tx, userID); err != nil {
			return err
		}
		var open []models.Goal
		if err := lockForUpdate(tx).
			Where("user_id = ? AND achieved = ? AND target_custom IS NULL", userID, false).
			Find(&open).Error; err != nil {
			return err
		}
		now := s.clock.Now()
		for i := range open {
			goal := &open[i]
			met := false
			switch {
			case goal.TargetCommits != nil:
				met = totals.Commits >= *goal.TargetCommits
			case goal.TargetSavings != nil:
				met = totals.Savings >= *goal.TargetSavings
			}
			if !met {
				continue
			}
			goal.Achieved = true
			goal.AchievedAt = &now
			if err := tx.Save(goal).Error; err != nil {
				return err
			}
			flipped = append(flipped, *goal)
		}
		return nil
	})
	if err != nil {
		return nil, translateErr(err)
	}
	return flipped, nil
}

// ConfirmGoal marks a custom goal achieved on explicit external
// confirmation. Confirming an already achieved goal is a no-op; numeric
// goals cannot be confirmed by hand.
func (s *Service) ConfirmGoal(userID uint, goalID uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Where("id = ? AND user_id = ?", goalID, userID).
			First(&goal).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if goal.TargetCustom == nil {
			return ErrInvalidGoal
		}
		if goal.Achieved {
			return nil
		}
		now := s.clock.Now()
		goal.Achieved = true
		goal.AchievedAt = &now
		return tx.Save(&goal).Error
	})
	if err != nil {
		return nil, translateErr(err)
	}
	return &goal, nil
}
