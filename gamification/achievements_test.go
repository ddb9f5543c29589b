package gamification

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/organizai/organizai/config"
	"github.com/organizai/organizai/models"
)

// Catalogue where bonuses are large enough to cascade: unlocking the first
// tier pushes the total past the second.
func cascadeConfig() config.AppConfig {
	cfg := testConfig()
	cfg.Achievements = []config.AchievementDefinition{
		{Code: "bronze", Name: "Bronze", PointThreshold: 50, BonusPoints: 60},
		{Code: "prata", Name: "Prata", PointThreshold: 100, BonusPoints: 50},
		{Code: "ouro", Name: "Ouro", PointThreshold: 160, BonusPoints: 0},
		{Code: config.AchievementLendario, Name: "Lendário(a)", PointThreshold: 10000},
	}
	return cfg
}

func TestEvaluateCascade(t *testing.T) {
	clock := &fakeClock{now: testTime()}
	svc := NewService(newTestDB(t), cascadeConfig(), WithClock(clock))
	seedUser(t, svc, 1, "UTC")

	// 20 + 30 = 50: bronze unlocks, its +60 bonus carries the total to 110
	// past prata, whose +50 carries it to 160, past ouro. One call, three
	// unlocks, ascending threshold order.
	_, err := svc.Record(1, config.ActionFinanceCreated, "")
	require.NoError(t, err)
	res, err := svc.Record(1, config.ActionAgendaCompleted, "")
	require.NoError(t, err)

	require.Len(t, res.Unlocked, 3)
	require.Equal(t, "bronze", res.Unlocked[0].Code)
	require.Equal(t, "prata", res.Unlocked[1].Code)
	require.Equal(t, "ouro", res.Unlocked[2].Code)

	summary, err := svc.Summarize(1)
	require.NoError(t, err)
	require.Equal(t, 160, summary.TotalPoints)
}

func TestEvaluateIdempotent(t *testing.T) {
	clock := &fakeClock{now: testTime()}
	svc := NewService(newTestDB(t), cascadeConfig(), WithClock(clock))
	seedUser(t, svc, 1, "UTC")

	_, err := svc.Record(1, config.ActionFinanceCreated, "")
	require.NoError(t, err)
	_, err = svc.Record(1, config.ActionAgendaCompleted, "")
	require.NoError(t, err)

	before, err := svc.Summarize(1)
	require.NoError(t, err)

	// No new points: nothing re-unlocks, no bonus re-applies.
	unlocked, err := svc.Evaluate(1)
	require.NoError(t, err)
	require.Empty(t, unlocked)

	after, err := svc.Summarize(1)
	require.NoError(t, err)
	require.Equal(t, before.TotalPoints, after.TotalPoints)
	require.Equal(t, before.UnlockedCount, after.UnlockedCount)
}

func TestAchievementUnlocksAtMostOnce(t *testing.T) {
	svc, _ := newTestService(t)
	seedUser(t, svc, 1, "UTC")

	for i := 0; i < 12; i++ {
		_, err := svc.Record(1, config.ActionAgendaCompleted, "")
		require.NoError(t, err)
	}

	var rows []models.UnlockedAchievement
	require.NoError(t, svc.db.Where("user_id = ?", 1).Find(&rows).Error)
	seen := map[string]int{}
	for _, row := range rows {
		seen[row.Code]++
	}
	for code, n := range seen {
		require.Equalf(t, 1, n, "achievement %s unlocked %d times", code, n)
	}
	// 12 * 30 = 360 crosses every default threshold below the ceiling.
	require.Len(t, rows, 5)
}

func TestEvaluateUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Evaluate(7)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLegendaryUsesConfiguredCeiling(t *testing.T) {
	cfg := testConfig()
	cfg.Achievements = []config.AchievementDefinition{
		{Code: config.AchievementLendario, Name: "Lendário(a)", PointThreshold: 60},
	}
	clock := &fakeClock{now: testTime()}
	svc := NewService(newTestDB(t), cfg, WithClock(clock))
	seedUser(t, svc, 1, "UTC")

	res, err := svc.Record(1, config.ActionAgendaCompleted, "")
	require.NoError(t, err)
	require.Empty(t, res.Unlocked)

	res, err = svc.Record(1, config.ActionAgendaCompleted, "")
	require.NoError(t, err)
	require.Len(t, res.Unlocked, 1)
	require.Equal(t, config.AchievementLendario, res.Unlocked[0].Code)
}
