package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/organizai/organizai/config"
	"github.com/organizai/organizai/models"
)

func TestRecordUnknownActionType(t *testing.T) {
	svc, _ := newTestService(t)
	seedUser(t, svc, 1, "UTC")

	_, err := svc.Record(1, "SOMETHING_ELSE", "")
	require.ErrorIs(t, err, ErrInvalidAction)

	// Synthetic streak actions are engine-internal.
	_, err = svc.Record(1, config.ActionStreak3, "")
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestRecordUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Record(42, config.ActionFinanceCreated, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecordScoresSchedule(t *testing.T) {
	svc, _ := newTestService(t)
	seedUser(t, svc, 1, "UTC")

	res, err := svc.Record(1, config.ActionFinanceCreated, "conta de luz")
	require.NoError(t, err)
	require.False(t, res.Duplicate)
	require.Equal(t, 20, res.Entry.Points)
	require.Equal(t, 1, res.Streak.CurrentStreak)

	res, err = svc.Record(1, config.ActionContentFavorited, "")
	require.NoError(t, err)
	require.Equal(t, 5, res.Entry.Points)

	summary, err := svc.Summarize(1)
	require.NoError(t, err)
	require.Equal(t, 25, summary.TotalPoints)
}

// Fresh user records FINANCE_CREATED then AGENDA_COMPLETED on day 1: the
// second call pushes the total to 50 and unlocks Primeiros Passos in the
// same call.
func TestRecordFirstStepsUnlock(t *testing.T) {
	svc, _ := newTestService(t)
	seedUser(t, svc, 1, "UTC")

	res, err := svc.Record(1, config.ActionFinanceCreated, "")
	require.NoError(t, err)
	require.Empty(t, res.Unlocked)

	res, err = svc.Record(1, config.ActionAgendaCompleted, "")
	require.NoError(t, err)
	require.Len(t, res.Unlocked, 1)
	require.Equal(t, config.AchievementPrimeirosPassos, res.Unlocked[0].Code)

	summary, err := svc.Summarize(1)
	require.NoError(t, err)
	require.Equal(t, 50, summary.TotalPoints)
	require.Equal(t, 1, summary.UnlockedCount)
}

func TestDailyFirstAccessIdempotentPerDay(t *testing.T) {
	svc, clock := newTestService(t)
	seedUser(t, svc, 1, "UTC")

	first, err := svc.Record(1, config.ActionDailyFirstAccess, "")
	require.NoError(t, err)
	require.False(t, first.Duplicate)

	clock.Advance(4 * time.Hour)
	second, err := svc.Record(1, config.ActionDailyFirstAccess, "")
	require.NoError(t, err)
	require.True(t, second.Duplicate)
	require.Equal(t, first.Entry.ID, second.Entry.ID)
	require.Equal(t, first.Streak.CurrentStreak, second.Streak.CurrentStreak)

	var count int64
	require.NoError(t, svc.db.Model(&models.ActionLogEntry{}).
		Where("user_id = ? AND action_type = ?", 1, config.ActionDailyFirstAccess).
		Count(&count).Error)
	require.EqualValues(t, 1, count)

	summary, err := svc.Summarize(1)
	require.NoError(t, err)
	require.Equal(t, 10, summary.TotalPoints)

	// Next day it scores again.
	clock.Advance(24 * time.Hour)
	third, err := svc.Record(1, config.ActionDailyFirstAccess, "")
	require.NoError(t, err)
	require.False(t, third.Duplicate)
	require.Equal(t, 2, third.Streak.CurrentStreak)
}

func TestRepeatableActionsScoreEveryTime(t *testing.T) {
	svc, _ := newTestService(t)
	seedUser(t, svc, 1, "UTC")

	for i := 0; i < 3; i++ {
		_, err := svc.Record(1, config.ActionAgendaCreated, "")
		require.NoError(t, err)
	}

	summary, err := svc.Summarize(1)
	require.NoError(t, err)
	require.Equal(t, 45, summary.TotalPoints)
}

// totalPoints == sum of log entries + sum of granted bonuses, and the
// denormalized mirror on the user row follows.
func TestTotalsProperty(t *testing.T) {
	svc, clock := newTestService(t)
	seedUser(t, svc, 1, "UTC")

	actions := []string{
		config.ActionDailyFirstAccess,
		config.ActionFinanceCreated,
		config.ActionAgendaCompleted,
		config.ActionContentCreated,
	}
	for _, a := range actions {
		_, err := svc.Record(1, a, "")
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}

	var logSum, bonusSum int64
	require.NoError(t, svc.db.Model(&models.ActionLogEntry{}).
		Where("user_id = ?", 1).Select("COALESCE(SUM(points),0)").Scan(&logSum).Error)
	require.NoError(t, svc.db.Model(&models.UnlockedAchievement{}).
		Where("user_id = ?", 1).Select("COALESCE(SUM(bonus_points),0)").Scan(&bonusSum).Error)

	summary, err := svc.Summarize(1)
	require.NoError(t, err)
	require.EqualValues(t, logSum+bonusSum, summary.TotalPoints)

	var user models.User
	require.NoError(t, svc.db.First(&user, 1).Error)
	require.Equal(t, summary.TotalPoints, user.Points)
}

func TestRecordSanitizesMeta(t *testing.T) {
	svc, _ := newTestService(t)
	seedUser(t, svc, 1, "UTC")

	res, err := svc.Record(1, config.ActionContentCreated, `<script>alert(1)</script>receita`)
	require.NoError(t, err)
	require.Equal(t, "receita", res.Entry.Meta)
}
