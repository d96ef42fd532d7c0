package auth

import (
	"testing"
	"time"
)

func TestLockPolicy(t *testing.T) {
	policy := LockPolicy{Threshold: 5, LockDuration: 15 * time.Minute}
	now := time.Now()

	future := now.Add(time.Minute)
	past := now.Add(-time.Minute)

	testCases := []struct {
		name        string
		lockedUntil *time.Time
		isLocked    bool
		lockExpired bool
	}{
		{"never locked", nil, false, false},
		{"active lock", &future, true, false},
		{"expired lock", &past, false, true},
		{"lock boundary", &now, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if actual := policy.IsLocked(tc.lockedUntil, now); actual != tc.isLocked {
				t.Errorf("IsLocked = %v; want %v", actual, tc.isLocked)
			}
			if actual := policy.LockExpired(tc.lockedUntil, now); actual != tc.lockExpired {
				t.Errorf("LockExpired = %v; want %v", actual, tc.lockExpired)
			}
		})
	}
}

func TestLockPolicyThreshold(t *testing.T) {
	policy := LockPolicy{Threshold: 5, LockDuration: 15 * time.Minute}

	for failures := 0; failures < 5; failures++ {
		if policy.ShouldLock(failures) {
			t.Errorf("ShouldLock(%d) = true before the threshold", failures)
		}
	}

	if !policy.ShouldLock(5) {
		t.Error("ShouldLock(5) = false at the threshold")
	}
	if !policy.ShouldLock(6) {
		t.Error("ShouldLock(6) = false past the threshold")
	}
}

func TestLockUntil(t *testing.T) {
	policy := LockPolicy{Threshold: 5, LockDuration: 15 * time.Minute}
	now := time.Now()

	until := policy.LockUntil(now)
	if until.Sub(now) != 15*time.Minute {
		t.Errorf("LockUntil = %v; want now+15m", until)
	}
}
