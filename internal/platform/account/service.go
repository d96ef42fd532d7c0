package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fellowship/internal/auth"
	"fellowship/internal/database"
)

const userTable = "users"

// AuthResponse is returned by every flow that authenticates a member.
type AuthResponse struct {
	Token       string     `json:"token"`
	UserID      uuid.UUID  `json:"user_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	PhoneNumber *string    `json:"phone_number"`
	AvatarURL   *string    `json:"avatar_url"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLogin   *time.Time `json:"last_login"`
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type GoogleRegisterInput struct {
	IDToken   string
	Email     string
	FirstName string
	LastName  string
	AvatarURL *string
}

// Service handles member registration and authentication.
type Service struct {
	db     *gorm.DB
	tokens *auth.TokenIssuer
	policy auth.LockPolicy
	google auth.GoogleVerifier
}

func NewService(db *gorm.DB, tokens *auth.TokenIssuer, policy auth.LockPolicy, google auth.GoogleVerifier) *Service {
	return &Service{db: db, tokens: tokens, policy: policy, google: google}
}

// Register creates a password-based member account and signs it in.
func (s *Service) Register(input RegisterInput) (*AuthResponse, error) {
	email := normalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrValidation
	}

	var count int64
	s.db.Model(&database.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, ErrEmailExists
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := database.User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: &hash,
		Role:         auth.RoleMember.String(),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return s.respond(&user)
}

// GoogleRegister creates a federated member account with no password.
func (s *Service) GoogleRegister(ctx context.Context, input GoogleRegisterInput) (*AuthResponse, error) {
	identity, err := s.google.Verify(ctx, input.IDToken)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	email := normalizeEmail(input.Email)
	if !strings.EqualFold(identity.Email, email) {
		return nil, ErrInvalidGoogleToken
	}

	var existing database.User
	result := s.db.First(&existing, "email = ?", email)
	if result.Error == nil {
		return nil, ErrPasswordAccount
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	user := database.User{
		ID:        uuid.New(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		AvatarURL: input.AvatarURL,
		GoogleID:  &identity.Subject,
		Role:      auth.RoleMember.String(),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return s.respond(&user)
}

// Login authenticates a member by email and password. The lock check runs
// before any password verification; the lastLogin update happens after
// the response-critical path.
func (s *Service) Login(email, password string) (*AuthResponse, error) {
	var user database.User
	result := s.db.First(&user, "email = ?", normalizeEmail(email))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, result.Error
	}

	if err := checkLock(s.db, userTable, s.policy, user.ID, user.AccountLockedUntil, time.Now()); err != nil {
		return nil, err
	}

	if user.PasswordHash == nil {
		// Federated account; the password path never matches.
		return nil, ErrInvalidCredentials
	}

	if !auth.VerifyPassword(password, *user.PasswordHash) {
		recordFailure(s.db, userTable, s.policy, user.ID)
		return nil, ErrInvalidCredentials
	}

	resetLockState(s.db, userTable, user.ID)
	go touchLastLogin(s.db, userTable, user.ID)

	return s.respond(&user)
}

// GoogleLogin authenticates a federated member. It never auto-registers;
// a first login for a known email binds the Google id once.
func (s *Service) GoogleLogin(ctx context.Context, idToken, googleID, email string) (*AuthResponse, error) {
	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	email = normalizeEmail(email)
	if !strings.EqualFold(identity.Email, email) {
		return nil, ErrInvalidGoogleToken
	}

	var user database.User
	result := s.db.First(&user, "google_id = ? OR email = ?", googleID, email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}

	if user.GoogleID == nil {
		user.GoogleID = &googleID
		s.db.Model(&user).Update("google_id", googleID)
	}

	go touchLastLogin(s.db, userTable, user.ID)

	return s.respond(&user)
}

// GetUser returns a member by id.
func (s *Service) GetUser(id uuid.UUID) (*database.User, error) {
	var user database.User
	result := s.db.First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

type ProfileUpdateInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

// UpdateProfile mutates the mutable profile fields. Ownership is enforced
// at the route; this only touches the given account.
func (s *Service) UpdateProfile(id uuid.UUID, input ProfileUpdateInput) (*database.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.PhoneNumber != nil {
		updates["phone_number"] = *input.PhoneNumber
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetUser(id)
}

// ChangePassword verifies the current password under the lock policy and
// stores a new hash. Counters reset like a successful login.
func (s *Service) ChangePassword(id uuid.UUID, current, next string) error {
	if strings.TrimSpace(next) == "" {
		return ErrValidation
	}

	user, err := s.GetUser(id)
	if err != nil {
		return err
	}

	if err := checkLock(s.db, userTable, s.policy, user.ID, user.AccountLockedUntil, time.Now()); err != nil {
		return err
	}

	if user.PasswordHash == nil || !auth.VerifyPassword(current, *user.PasswordHash) {
		recordFailure(s.db, userTable, s.policy, user.ID)
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}

	s.db.Exec("UPDATE users SET password_hash = ?, failed_login_attempts = 0, account_locked_until = NULL WHERE id = ?", hash, user.ID)

	return nil
}

// SetAvatar stores the avatar URL after an upload.
func (s *Service) SetAvatar(id uuid.UUID, url string) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}

	return s.db.Model(user).Update("avatar_url", url).Error
}

func (s *Service) respond(user *database.User) (*AuthResponse, error) {
	role, ok := auth.ParseRole(user.Role)
	if !ok {
		role = auth.RoleMember
	}

	token, err := s.tokens.Issue(user.ID, user.FirstName+" "+user.LastName, user.Email, role)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:       token,
		UserID:      user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		AvatarURL:   user.AvatarURL,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
		LastLogin:   user.LastLogin,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
