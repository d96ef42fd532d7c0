package auth

import "time"

// LockPolicy decides when repeated login failures lock an account and when
// a lock has run out. It holds no state; the counters live on the account
// row and are only mutated by the login flow.
type LockPolicy struct {
	Threshold    int
	LockDuration time.Duration
}

// IsLocked reports whether the account is still inside its lock window.
func (p LockPolicy) IsLocked(lockedUntil *time.Time, now time.Time) bool {
	return lockedUntil != nil && now.Before(*lockedUntil)
}

// LockExpired reports whether a past lock should be cleared before the
// password check proceeds.
func (p LockPolicy) LockExpired(lockedUntil *time.Time, now time.Time) bool {
	return lockedUntil != nil && !now.Before(*lockedUntil)
}

// ShouldLock reports whether the given failure count triggers a lock.
func (p LockPolicy) ShouldLock(failures int) bool {
	return failures >= p.Threshold
}

// LockUntil returns the lock expiry for a lock starting now.
func (p LockPolicy) LockUntil(now time.Time) time.Time {
	return now.Add(p.LockDuration)
}
