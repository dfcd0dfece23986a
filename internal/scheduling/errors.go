package scheduling

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidScheduleInput = errors.New("invalid schedule input")
	ErrInvalidPauseDuration = errors.New("invalid pause duration")
	ErrOrderNotFound        = errors.New("order not found")
	ErrDeliveryNotFound     = errors.New("delivery not found, not yet due or already delivered")
	ErrDeliveryConflict     = errors.New("order already has a delivery on that date")
	ErrAlreadyPaused        = errors.New("subscription is already paused")
	ErrPauseLimitExceeded   = errors.New("subscription has already used its pause")
	ErrPauseNotEligible     = errors.New("next delivery is too close to pause")
	ErrNotPaused            = errors.New("subscription is not paused")
	ErrResumeTooSoon        = errors.New("resume date is too soon")
	ErrScheduleLocked       = errors.New("schedule has delivered items and cannot be regenerated")
	ErrSubscriptionClosed   = errors.New("subscription is closed")
	ErrStorage              = errors.New("storage failure")
)

// PauseNotEligibleError is returned when the next pending delivery is inside
// the pause notice window.
type PauseNotEligibleError struct {
	NextDelivery *time.Time // nil when nothing is left to deliver
	EligibleAt   time.Time
}

func (e *PauseNotEligibleError) Error() string {
	if e.NextDelivery == nil {
		return ErrPauseNotEligible.Error() + ": no upcoming delivery"
	}
	return fmt.Sprintf("%s: next delivery on %s", ErrPauseNotEligible, e.NextDelivery.Format("2006-01-02"))
}

func (e *PauseNotEligibleError) Is(target error) bool {
	return target == ErrPauseNotEligible
}

// StorageError wraps a failure of the underlying store. It is retryable.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// storageErr wraps err as a StorageError. Date conflicts are not retryable
// and keep their own kind.
func storageErr(op string, err error) error {
	if errors.Is(err, ErrDeliveryConflict) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &StorageError{Op: op, Err: err}
}

var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidScheduleInput, "invalid_schedule_input"},
	{ErrInvalidPauseDuration, "invalid_pause_duration"},
	{ErrOrderNotFound, "order_not_found"},
	{ErrDeliveryNotFound, "delivery_not_found"},
	{ErrAlreadyPaused, "already_paused"},
	{ErrPauseLimitExceeded, "pause_limit_exceeded"},
	{ErrPauseNotEligible, "pause_not_eligible"},
	{ErrNotPaused, "not_paused"},
	{ErrResumeTooSoon, "resume_too_soon"},
	{ErrScheduleLocked, "schedule_locked"},
	{ErrSubscriptionClosed, "subscription_closed"},
	{ErrDeliveryConflict, "delivery_conflict"},
	{ErrStorage, "storage"},
}

// Kind returns a stable label for err: "ok" for nil, the error kind for
// known failures and "internal" for anything else.
func Kind(err error) string {
	if err == nil {
		return "ok"
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "internal"
}
