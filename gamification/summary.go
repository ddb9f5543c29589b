package gamification

import (
	"github.com/organizai/organizai/models"
)

// Summary is the read-only aggregated snapshot consumed by the dashboard.
// It is recomputed from the action log, streak state and unlocked set on
// every call and is never an independent source of truth.
type Summary struct {
	UserID        uint                         `json:"user_id"`
	TotalPoints   int                          `json:"total_points"`
	CurrentStreak int                          `json:"current_streak"`
	LongestStreak int                          `json:"longest_streak"`
	UnlockedCount int                          `json:"unlocked_count"`
	Achievements  []models.UnlockedAchievement `json:"achievements"`
	Recent        []models.ActionLogEntry      `json:"recent"`
}

// Summarize composes the user's gamification state. Pure projection: it
// never mutates anything and is safe to call concurrently with records.
func (s *Service) Summarize(userID uint) (*Summary, error) {
	if _, err := s.loadUser(s.db, userID); err != nil {
		return nil, translateErr(err)
	}

	total, err := s.totalPoints(s.db, userID)
	if err != nil {
		return nil, translateErr(err)
	}

	var st models.StreakState
	if err := s.db.Where("user_id = ?", userID).Limit(1).Find(&st).Error; err != nil {
		return nil, translateErr(err)
	}

	var achievements []models.UnlockedAchievement
	if err := s.db.Where("user_id = ?", userID).
		Order("unlocked_at ASC, id ASC").
		Find(&achievements).Error; err != nil {
		return nil, translateErr(err)
	}

	// Newest first; same-instant entries keep insertion order for
	// deterministic output.
	var recent []models.ActionLogEntry
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Limit(s.cfg.SummaryRecentLimit).
		Find(&recent).Error; err != nil {
		return nil, translateErr(err)
	}

	return &Summary{
		UserID:        userID,
		TotalPoints:   total,
		CurrentStreak: st.CurrentStreak,
		LongestStreak: st.LongestStreak,
		UnlockedCount: len(achievements),
		Achievements:  achievements,
		Recent:        recent,
	}, nil
}
