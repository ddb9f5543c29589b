package gamification

import (
	"gorm.io/gorm"

	"github.com/organizai/organizai/models"
)

// Evaluate re-checks the achievement catalogue for a user and unlocks every
// definition whose threshold the running total has crossed. It is invoked
// automatically after every point-affecting change; calling it again with
// no new points is a no-op. The newly unlocked set is returned in ascending
// threshold order.
func (s *Service) Evaluate(userID uint) ([]models.UnlockedAchievement, error) {
	var newly []models.UnlockedAchievement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadUser(tx, userID); err != nil {
			return err
		}
		// Serialize with the record pipeline.
		if _, err := s.lockStreakState(tx, userID); err != nil {
			return err
		}
		var total int
		var err error
		newly, total, err = s.evaluateTx(tx, userID)
		if err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("points", total).Error
	})
	if err != nil {
		return nil, translateErr(err)
	}
	return newly, nil
}

// evaluateTx runs one bounded cascade pass inside the caller's transaction.
// Definitions are walked in ascending threshold order; each unlock adds its
// bonus to the running total before the next threshold check, so a bonus
// can push the total past the next tier within the same call. The loop is
// finite: every definition unlocks at most once and the catalogue is fixed.
// Returns the newly unlocked rows and the resulting total.
func (s *Service) evaluateTx(tx *gorm.DB, userID uint) ([]models.UnlockedAchievement, int, error) {
	total, err := s.totalPoints(tx, userID)
	if err != nil {
		return nil, 0, err
	}

	var codes []string
	if err := tx.Model(&models.UnlockedAchievement{}).
		Where("user_id = ?", userID).
		Pluck("code", &codes).Error; err != nil {
		return nil, 0, err
	}
	unlocked := make(map[string]bool, len(codes))
	for _, c := range codes {
		unlocked[c] = true
	}

	var newly []models.UnlockedAchievement
	for _, def := range s.cfg.Achievements {
		if unlocked[def.Code] || total < def.PointThreshold {
			continue
		}
		row := models.UnlockedAchievement{
			UserID:      userID,
			Code:        def.Code,
			Name:        def.Name,
			BonusPoints: def.BonusPoints,
			UnlockedAt:  s.clock.Now(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return nil, 0, err
		}
		unlocked[def.Code] = true
		total += def.BonusPoints
		newly = append(newly, row)
	}
	return newly, total, nil
}
