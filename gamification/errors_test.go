package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/organizai/organizai/config"
	"github.com/organizai/organizai/models"
)

func TestRecordRollsBackOnStorageFailure(t *testing.T) {
	svc, _ := newTestService(t)
	seedUser(t, svc, 1, "UTC")

	_, err := svc.Record(1, config.ActionFinanceCreated, "")
	require.NoError(t, err)

	// Break the achievement step so the pipeline fails after the entry
	// and streak writes.
	require.NoError(t, svc.db.Migrator().DropTable(&models.UnlockedAchievement{}))

	_, err = svc.Record(1, config.ActionAgendaCompleted, "")
	require.ErrorIs(t, err, ErrStorage)

	// Nothing partial committed: the triggering entry is gone and the
	// points mirror kept its pre-call value.
	var count int64
	require.NoError(t, svc.db.Model(&models.ActionLogEntry{}).
		Where("user_id = ?", 1).Count(&count).Error)
	require.EqualValues(t, 1, count)

	var user models.User
	require.NoError(t, svc.db.First(&user, 1).Error)
	require.Equal(t, 20, user.Points)
}

func TestDuplicateKeyRaceSurfacesConflict(t *testing.T) {
	svc, clock := newTestService(t)
	seedUser(t, svc, 1, "UTC")

	// A second writer slipping past the daily-access pre-check hits the
	// (user, action, day) unique index; the failure comes back retryable.
	day := dayStart(clock.Now(), time.UTC)
	first := models.ActionLogEntry{
		UserID:     1,
		ActionType: config.ActionDailyFirstAccess,
		Points:     10,
		ActiveDay:  &day,
		CreatedAt:  clock.Now(),
	}
	require.NoError(t, svc.db.Create(&first).Error)

	dup := first
	dup.ID = 0
	err := svc.db.Create(&dup).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	require.ErrorIs(t, translateErr(err), ErrConflict)

	// Same for a doubled unlock racing past the code guard.
	unlock := models.UnlockedAchievement{
		UserID:     1,
		Code:       config.AchievementPrimeirosPassos,
		Name:       "Primeiros Passos",
		UnlockedAt: clock.Now(),
	}
	require.NoError(t, svc.db.Create(&unlock).Error)

	again := unlock
	again.ID = 0
	err = svc.db.Create(&again).Error
	require.ErrorIs(t, translateErr(err), ErrConflict)
}
