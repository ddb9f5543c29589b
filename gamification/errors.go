package gamification

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Engine error taxonomy. Callers match with errors.Is; the HTTP layer maps
// these onto response codes.
var (
	// ErrInvalidAction rejects action types outside the closed enumeration.
	ErrInvalidAction = errors.New("unknown action type")
	// ErrInvalidGoal rejects goals that do not set exactly one target, or
	// confirmations against the wrong goal kind.
	ErrInvalidGoal = errors.New("invalid goal target")
	// ErrInvalidTimezone rejects profile timezones that are not valid IANA names.
	ErrInvalidTimezone = errors.New("invalid timezone")
	// ErrNotFound signals a missing user or goal reference.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a concurrent write collision; the caller may retry
	// the whole operation.
	ErrConflict = errors.New("concurrent update conflict")
	// ErrStorage signals a failed storage commit. Nothing partial was
	// persisted; the caller may retry.
	ErrStorage = errors.New("storage failure")
)

// translateErr maps storage-level failures onto the engine taxonomy.
// Duplicate keys mean two writers raced past the same guard, which the
// unique indexes turn into a retryable conflict instead of a double award.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidAction), errors.Is(err, ErrInvalidGoal), errors.Is(err, ErrInvalidTimezone),
		errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict), errors.Is(err, ErrStorage):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}
