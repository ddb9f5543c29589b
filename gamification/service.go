package gamification

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/organizai/organizai/config"
	"github.com/organizai/organizai/models"
	"github.com/organizai/organizai/utils"
)

// Service is the gamification engine: it turns discrete user actions into a
// running score, a daily streak, one-time achievement unlocks, and goal
// tracking. All state lives in storage; one Service can be shared across
// requests.
type Service struct {
	db    *gorm.DB
	cfg   config.AppConfig
	clock Clock
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock, used by tests to steer day boundaries.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

// NewService creates the engine on top of an initialized database.
func NewService(db *gorm.DB, cfg config.AppConfig, opts ...Option) *Service {
	s := &Service{db: db, cfg: cfg, clock: SystemClock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lockForUpdate applies pessimistic row locking where the dialect supports
// it. SQLite (tests) has no FOR UPDATE syntax and a single writer already
// serializes transactions.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// loadUser fetches the profile row that carries the reference timezone.
func (s *Service) loadUser(tx *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// userLocation resolves the profile timezone, falling back to the configured
// default when the stored name does not load.
func (s *Service) userLocation(user *models.User) *time.Location {
	name := user.Timezone
	if name == "" {
		name = s.cfg.DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		utils.Sugar.Warnf("invalid timezone %q for user %d, falling back to UTC", name, user.ID)
		return time.UTC
	}
	return loc
}

// lockStreakState loads the per-user streak row under lock, creating it on
// first contact. The row is the serialization point for the whole
// record+derive pipeline.
func (s *Service) lockStreakState(tx *gorm.DB, userID uint) (*models.StreakState, error) {
	var st models.StreakState
	err := lockForUpdate(tx).First(&st, "user_id = ?", userID).Error
	if err == nil {
		return &st, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	st = models.StreakState{UserID: userID}
	if err := tx.Create(&st).Error; err != nil {
		// Lost the creation race; the conflict is retryable.
		return nil, err
	}
	if err := lockForUpdate(tx).First(&st, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// totalPoints computes the canonical running total: the action log sum plus
// all bonuses granted by prior unlocks.
func (s *Service) totalPoints(tx *gorm.DB, userID uint) (int, error) {
	var logSum int64
	if err := tx.Model(&models.ActionLogEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points),0)").
		Scan(&logSum).Error; err != nil {
		return 0, err
	}
	var bonusSum int64
	if err := tx.Model(&models.UnlockedAchievement{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(bonus_points),0)").
		Scan(&bonusSum).Error; err != nil {
		return 0, err
	}
	return int(logSum + bonusSum), nil
}

// UpsertProfile creates or updates the engine-side user profile. The
// surrounding product owns identity; the engine only needs the reference
// timezone.
func (s *Service) UpsertProfile(userID uint, username, timezone string) (*models.User, error) {
	username = strings.TrimSpace(utils.Sanitize(username))
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&user, userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{ID: userID, Username: username, Timezone: timezone}
			if user.Timezone == "" {
				user.Timezone = s.cfg.DefaultTimezone
			}
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}
		if username != "" {
			user.Username = username
		}
		if timezone != "" {
			user.Timezone = timezone
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

// GetProfile returns the engine-side profile for a user.
func (s *Service) GetProfile(userID uint) (*models.User, error) {
	user, err := s.loadUser(s.db, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	return user, nil
}
