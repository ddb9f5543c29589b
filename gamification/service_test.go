package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/organizai/organizai/config"
	"github.com/organizai/organizai/models"
)

// fakeClock steers day boundaries in tests.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every in-memory SQLite connection is its own database; pin the pool
	// to one connection so all queries see the same schema.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ActionLogEntry{},
		&models.StreakState{},
		&models.UnlockedAchievement{},
		&models.Goal{},
	))
	return db
}

func testConfig() config.AppConfig {
	return config.AppConfig{
		ActionPoints: map[string]int{
			config.ActionDailyFirstAccess: 10,
			config.ActionFinanceCreated:   20,
			config.ActionAgendaCreated:    15,
			config.ActionAgendaCompleted:  30,
			config.ActionAgendaAgent:      25,
			config.ActionContentCreated:   25,
			config.ActionContentFavorited: 5,
			config.ActionStreak3:          50,
			config.ActionStreak7:          100,
		},
		Achievements: []config.AchievementDefinition{
			{Code: config.AchievementPrimeirosPassos, Name: "Primeiros Passos", PointThreshold: 50},
			{Code: config.AchievementOrganizado, Name: "Organizado(a)", PointThreshold: 150},
			{Code: config.AchievementPontual, Name: "Pontual", PointThreshold: 200},
			{Code: config.AchievementControlado, Name: "Controlado(a)", PointThreshold: 200},
			{Code: config.AchievementCriador, Name: "Criador(a)", PointThreshold: 250},
			{Code: config.AchievementLendario, Name: "Lendário(a)", PointThreshold: 10000},
		},
		DefaultTimezone:    "UTC",
		SummaryRecentLimit: 5,
	}
}

func testTime() time.Time {
	return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, opts ...Option) (*Service, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: testTime()}
	all := append([]Option{WithClock(clock)}, opts...)
	svc := NewService(newTestDB(t), testConfig(), all...)
	return svc, clock
}

func seedUser(t *testing.T, svc *Service, id uint, tz string) {
	t.Helper()
	user := models.User{ID: id, Username: "maria", Timezone: tz}
	require.NoError(t, svc.db.Create(&user).Error)
}

func TestUpsertProfile(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.UpsertProfile(1, "joao", "America/Sao_Paulo")
	require.NoError(t, err)
	require.Equal(t, "joao", user.Username)
	require.Equal(t, "America/Sao_Paulo", user.Timezone)

	// Partial update keeps the existing timezone.
	user, err = svc.UpsertProfile(1, "joao2", "")
	require.NoError(t, err)
	require.Equal(t, "joao2", user.Username)
	require.Equal(t, "America/Sao_Paulo", user.Timezone)

	_, err = svc.UpsertProfile(2, "ana", "Not/AZone")
	require.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetProfile(99)
	require.ErrorIs(t, err, ErrNotFound)
}
