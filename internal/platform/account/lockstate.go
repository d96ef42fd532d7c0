package account

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fellowship/internal/auth"
)

// Lock counters are shared between the member and admin namespaces; both
// tables carry the same failed_login_attempts / account_locked_until
// columns and only the login flow touches them.

// checkLock rejects the attempt while a lock is active and clears a lock
// that has run out. Runs before any password work so a locked account
// costs no hashing and leaks no timing signal.
func checkLock(db *gorm.DB, table string, policy auth.LockPolicy, id uuid.UUID, lockedUntil *time.Time, now time.Time) error {
	if policy.IsLocked(lockedUntil, now) {
		return ErrAccountLocked
	}

	if policy.LockExpired(lockedUntil, now) {
		db.Exec(fmt.Sprintf("UPDATE %s SET failed_login_attempts = 0, account_locked_until = NULL WHERE id = ?", table), id)
	}

	return nil
}

// recordFailure bumps the failure counter with a single UPDATE so
// concurrent failed attempts cannot lose increments, then locks the
// account once the threshold is reached.
func recordFailure(db *gorm.DB, table string, policy auth.LockPolicy, id uuid.UUID) {
	db.Exec(fmt.Sprintf("UPDATE %s SET failed_login_attempts = failed_login_attempts + 1 WHERE id = ?", table), id)

	var failures int
	db.Table(table).Select("failed_login_attempts").Where("id = ?", id).Scan(&failures)

	if policy.ShouldLock(failures) {
		db.Exec(fmt.Sprintf("UPDATE %s SET account_locked_until = ? WHERE id = ?", table), policy.LockUntil(time.Now()), id)
	}
}

// resetLockState zeroes the counters after a successful password check.
func resetLockState(db *gorm.DB, table string, id uuid.UUID) {
	db.Exec(fmt.Sprintf("UPDATE %s SET failed_login_attempts = 0, account_locked_until = NULL WHERE id = ?", table), id)
}

// touchLastLogin records the login timestamp. Callers fire it in a
// goroutine; the response does not wait for it and a lost update is an
// accepted eventual-consistency gap.
func touchLastLogin(db *gorm.DB, table string, id uuid.UUID) {
	db.Exec(fmt.Sprintf("UPDATE %s SET last_login = ? WHERE id = ?", table), time.Now().UTC(), id)
}
