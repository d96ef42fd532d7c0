package account

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fellowship/internal/auth"
	"fellowship/internal/database"
)

const testSecret = "0123456789abcdef0123456789abcdef0123456789abcdef"

type stubVerifier struct {
	identity *auth.GoogleIdentity
	err      error
}

func (s stubVerifier) Verify(ctx context.Context, idToken string) (*auth.GoogleIdentity, error) {
	return s.identity, s.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&database.User{}, &database.AdminUser{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func newTestService(t *testing.T, db *gorm.DB, policy auth.LockPolicy, google auth.GoogleVerifier) *Service {
	t.Helper()

	tokens, err := auth.NewTokenIssuer(testSecret, "fellowship", "fellowship-clients")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	return NewService(db, tokens, policy, google)
}

func defaultPolicy() auth.LockPolicy {
	return auth.LockPolicy{Threshold: 5, LockDuration: 15 * time.Minute}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, defaultPolicy(), nil)

	registered, err := svc.Register(RegisterInput{
		FirstName: "A",
		LastName:  "B",
		Email:     "a@x.com",
		Password:  "Secret123!",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.Token == "" {
		t.Error("expected a token on registration")
	}
	if registered.Role != auth.RoleMember.String() {
		t.Errorf("role = %q; want Member", registered.Role)
	}

	loggedIn, err := svc.Login("a@x.com", "Secret123!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.Token == "" {
		t.Error("expected a token on login")
	}
	if loggedIn.UserID != registered.UserID {
		t.Errorf("user id = %s; want %s", loggedIn.UserID, registered.UserID)
	}

	if _, err := svc.Login("a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v; want ErrInvalidCredentials", err)
	}

	var user database.User
	db.First(&user, "email = ?", "a@x.com")
	if user.FailedLoginAttempts != 1 {
		t.Errorf("failed attempts = %d; want 1", user.FailedLoginAttempts)
	}
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, defaultPolicy(), nil)

	testCases := []struct {
		name  string
		input RegisterInput
	}{
		{"blank email", RegisterInput{Email: "  ", Password: "Secret123!"}},
		{"blank password", RegisterInput{Email: "a@x.com", Password: " "}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(tc.input); !errors.Is(err, ErrValidation) {
				t.Errorf("got %v; want ErrValidation", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, defaultPolicy(), nil)

	input := RegisterInput{FirstName: "A", LastName: "B", Email: "dup@x.com", Password: "Secret123!"}
	if _, err := svc.Register(input); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	if _, err := svc.Register(input); !errors.Is(err, ErrEmailExists) {
		t.Errorf("second Register: got %v; want ErrEmailExists", err)
	}

	// Uniqueness is case-insensitive.
	input.Email = "DUP@X.COM"
	if _, err := svc.Register(input); !errors.Is(err, ErrEmailExists) {
		t.Errorf("case variant Register: got %v; want ErrEmailExists", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, defaultPolicy(), nil)

	if _, err := svc.Login("nobody@x.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("got %v; want ErrInvalidCredentials", err)
	}
}

func TestLoginCaseInsensitiveEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, defaultPolicy(), nil)

	if _, err := svc.Register(RegisterInput{FirstName: "A", LastName: "B", Email: "Mixed@Case.com", Password: "Secret123!"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login("mixed@case.com", "Secret123!"); err != nil {
		t.Errorf("lowercase login: %v", err)
	}
	if _, err := svc.Login("MIXED@CASE.COM", "Secret123!"); err != nil {
		t.Errorf("uppercase login: %v", err)
	}
}

func TestLockoutThresholdAndRecovery(t *testing.T) {
	db := newTestDB(t)
	policy := auth.LockPolicy{Threshold: 3, LockDuration: 100 * time.Millisecond}
	svc := newTestService(t, db, policy, nil)

	if _, err := svc.Register(RegisterInput{FirstName: "A", LastName: "B", Email: "lock@x.com", Password: "Secret123!"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Login("lock@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: got %v; want ErrInvalidCredentials", i+1, err)
		}
	}

	// At the threshold even the correct password is refused.
	if _, err := svc.Login("lock@x.com", "Secret123!"); !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("locked login: got %v; want ErrAccountLocked", err)
	}

	time.Sleep(150 * time.Millisecond)

	if _, err := svc.Login("lock@x.com", "Secret123!"); err != nil {
		t.Fatalf("login after lock expiry: %v", err)
	}

	var user database.User
	db.First(&user, "email = ?", "lock@x.com")
	if user.FailedLoginAttempts != 0 {
		t.Errorf("failed attempts = %d; want 0 after successful login", user.FailedLoginAttempts)
	}
	if user.AccountLockedUntil != nil {
		t.Errorf("lock timestamp should be cleared, got %v", user.AccountLockedUntil)
	}
}

func TestGoogleRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	verifier := stubVerifier{identity: &auth.GoogleIdentity{Subject: "google-sub-1", Email: "fed@x.com"}}
	svc := newTestService(t, db, defaultPolicy(), verifier)

	registered, err := svc.GoogleRegister(context.Background(), GoogleRegisterInput{
		IDToken:   "stub-token",
		Email:     "fed@x.com",
		FirstName: "Fed",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("GoogleRegister: %v", err)
	}
	if registered.Token == "" {
		t.Error("expected a token")
	}

	var user database.User
	db.First(&user, "email = ?", "fed@x.com")
	if user.PasswordHash != nil {
		t.Error("federated account must have no password hash")
	}

	// The password path never matches a federated account.
	if _, err := svc.Login("fed@x.com", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("password login: got %v; want ErrInvalidCredentials", err)
	}

	if _, err := svc.GoogleLogin(context.Background(), "stub-token", "google-sub-1", "fed@x.com"); err != nil {
		t.Fatalf("GoogleLogin: %v", err)
	}
}

func TestGoogleRegisterRejectsExistingPasswordAccount(t *testing.T) {
	db := newTestDB(t)
	verifier := stubVerifier{identity: &auth.GoogleIdentity{Subject: "google-sub-2", Email: "pw@x.com"}}
	svc := newTestService(t, db, defaultPolicy(), verifier)

	if _, err := svc.Register(RegisterInput{FirstName: "A", LastName: "B", Email: "pw@x.com", Password: "Secret123!"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.GoogleRegister(context.Background(), GoogleRegisterInput{
		IDToken: "stub-token", Email: "pw@x.com", FirstName: "A", LastName: "B",
	})
	if !errors.Is(err, ErrPasswordAccount) {
		t.Errorf("got %v; want ErrPasswordAccount", err)
	}
}

func TestGoogleLoginBindsGoogleIDOnce(t *testing.T) {
	db := newTestDB(t)
	verifier := stubVerifier{identity: &auth.GoogleIdentity{Subject: "google-sub-3", Email: "bind@x.com"}}
	svc := newTestService(t, db, defaultPolicy(), verifier)

	if _, err := svc.Register(RegisterInput{FirstName: "A", LastName: "B", Email: "bind@x.com", Password: "Secret123!"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.GoogleLogin(context.Background(), "stub-token", "google-sub-3", "bind@x.com"); err != nil {
		t.Fatalf("GoogleLogin: %v", err)
	}

	var user database.User
	db.First(&user, "email = ?", "bind@x.com")
	if user.GoogleID == nil || *user.GoogleID != "google-sub-3" {
		t.Errorf("google id = %v; want google-sub-3", user.GoogleID)
	}
}

func TestGoogleLoginNeverAutoRegisters(t *testing.T) {
	db := newTestDB(t)
	verifier := stubVerifier{identity: &auth.GoogleIdentity{Subject: "google-sub-4", Email: "ghost@x.com"}}
	svc := newTestService(t, db, defaultPolicy(), verifier)

	if _, err := svc.GoogleLogin(context.Background(), "stub-token", "google-sub-4", "ghost@x.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v; want ErrNotFound", err)
	}
}

func TestGoogleFlowsRejectEmailMismatch(t *testing.T) {
	db := newTestDB(t)
	verifier := stubVerifier{identity: &auth.GoogleIdentity{Subject: "google-sub-5", Email: "real@x.com"}}
	svc := newTestService(t, db, defaultPolicy(), verifier)

	_, err := svc.GoogleRegister(context.Background(), GoogleRegisterInput{
		IDToken: "stub-token", Email: "claimed@x.com", FirstName: "A", LastName: "B",
	})
	if !errors.Is(err, ErrInvalidGoogleToken) {
		t.Errorf("GoogleRegister: got %v; want ErrInvalidGoogleToken", err)
	}

	if _, err := svc.GoogleLogin(context.Background(), "stub-token", "google-sub-5", "claimed@x.com"); !errors.Is(err, ErrInvalidGoogleToken) {
		t.Errorf("GoogleLogin: got %v; want ErrInvalidGoogleToken", err)
	}
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, defaultPolicy(), nil)

	registered, err := svc.Register(RegisterInput{FirstName: "A", LastName: "B", Email: "cp@x.com", Password: "OldSecret1!"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ChangePassword(registered.UserID, "wrong", "NewSecret1!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong current password: got %v; want ErrInvalidCredentials", err)
	}

	if err := svc.ChangePassword(registered.UserID, "OldSecret1!", "NewSecret1!"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Login("cp@x.com", "OldSecret1!"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password still accepted")
	}
	if _, err := svc.Login("cp@x.com", "NewSecret1!"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}
