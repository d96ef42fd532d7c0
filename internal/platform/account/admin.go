package account

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fellowship/internal/auth"
	"fellowship/internal/database"
	"fellowship/internal/mail"
)

const adminTable = "admins"

type AdminRegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber *string
	Country     *string
	State       *string
	Address     *string
	Role        string
}

// AdminAuthResponse is returned by admin login; admin creation returns
// the profile without a token.
type AdminAuthResponse struct {
	Token     string     `json:"token"`
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

// AdminService handles the administrator namespace. Admins live in their
// own table, so a member and an admin may share an email.
type AdminService struct {
	db     *gorm.DB
	tokens *auth.TokenIssuer
	policy auth.LockPolicy
	mailer mail.Mailer
	from   string
}

func NewAdminService(db *gorm.DB, tokens *auth.TokenIssuer, policy auth.LockPolicy) *AdminService {
	return &AdminService{db: db, tokens: tokens, policy: policy}
}

// WithMailer enables the best-effort credentials mail on admin creation.
func (s *AdminService) WithMailer(m mail.Mailer, from string) *AdminService {
	s.mailer = m
	s.from = from
	return s
}

// CreateAdmin provisions a new administrator. Only an active super admin
// may call it, and the super admin role itself is never assignable.
func (s *AdminService) CreateAdmin(callerID uuid.UUID, input AdminRegisterInput) (*database.AdminUser, error) {
	var caller database.AdminUser
	result := s.db.First(&caller, "id = ? AND is_active = ?", callerID, true)
	if result.Error != nil || !auth.RoleSuperAdmin.Equals(caller.Role) {
		return nil, ErrForbidden
	}

	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrValidation
	}

	role, ok := auth.ParseRole(input.Role)
	if !ok || !auth.AssignableAdminRoles.Contains(role.String()) {
		return nil, ErrInvalidAdminRole
	}

	var count int64
	s.db.Model(&database.AdminUser{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, ErrEmailExists
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	admin := database.AdminUser{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PhoneNumber:  input.PhoneNumber,
		Country:      input.Country,
		State:        input.State,
		Address:      input.Address,
		PasswordHash: &hash,
		Role:         role.String(),
		IsActive:     false,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}

	s.sendCredentialsMail(&admin)

	return &admin, nil
}

// AdminLogin mirrors the member login flow and additionally activates the
// admin account on every successful login.
func (s *AdminService) AdminLogin(email, password string) (*AdminAuthResponse, error) {
	var admin database.AdminUser
	result := s.db.First(&admin, "email = ?", normalizeEmail(email))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, result.Error
	}

	if err := checkLock(s.db, adminTable, s.policy, admin.ID, admin.AccountLockedUntil, time.Now()); err != nil {
		return nil, err
	}

	if admin.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.VerifyPassword(password, *admin.PasswordHash) {
		recordFailure(s.db, adminTable, s.policy, admin.ID)
		return nil, ErrInvalidCredentials
	}

	s.db.Exec("UPDATE admins SET failed_login_attempts = 0, account_locked_until = NULL, is_active = ? WHERE id = ?", true, admin.ID)
	go touchLastLogin(s.db, adminTable, admin.ID)

	role, _ := auth.ParseRole(admin.Role)
	token, err := s.tokens.Issue(admin.ID, admin.FirstName+" "+admin.LastName, admin.Email, role)
	if err != nil {
		return nil, err
	}

	return &AdminAuthResponse{
		Token:     token,
		ID:        admin.ID,
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		Email:     admin.Email,
		Role:      admin.Role,
		IsActive:  true,
		CreatedAt: admin.CreatedAt,
		LastLogin: admin.LastLogin,
	}, nil
}

// GetAdmin returns an administrator by id.
func (s *AdminService) GetAdmin(id uuid.UUID) (*database.AdminUser, error) {
	var admin database.AdminUser
	result := s.db.First(&admin, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &admin, nil
}

type AdminFilter struct {
	FirstName string
	LastName  string
	Email     string
	State     string
}

type Pagination struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

func (p *Pagination) normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

type AdminPage struct {
	Items      []database.AdminUser `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int64                `json:"total_pages"`
}

// ListAdmins returns a filtered page of administrators.
func (s *AdminService) ListAdmins(p Pagination, filter AdminFilter) (*AdminPage, error) {
	p.normalize()

	query := s.db.Model(&database.AdminUser{})
	if filter.FirstName != "" {
		query = query.Where("first_name LIKE ?", "%"+filter.FirstName+"%")
	}
	if filter.LastName != "" {
		query = query.Where("last_name LIKE ?", "%"+filter.LastName+"%")
	}
	if filter.Email != "" {
		query = query.Where("email LIKE ?", "%"+normalizeEmail(filter.Email)+"%")
	}
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var admins []database.AdminUser
	result := query.Order("created_at DESC").
		Offset((p.Page - 1) * p.PageSize).
		Limit(p.PageSize).
		Find(&admins)
	if result.Error != nil {
		return nil, result.Error
	}

	totalPages := (total + int64(p.PageSize) - 1) / int64(p.PageSize)

	return &AdminPage{
		Items:      admins,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
	}, nil
}

// DeleteAdmin removes an administrator. Super admin only; self-deletion
// is rejected.
func (s *AdminService) DeleteAdmin(callerID, id uuid.UUID) error {
	var caller database.AdminUser
	result := s.db.First(&caller, "id = ? AND is_active = ?", callerID, true)
	if result.Error != nil || !auth.RoleSuperAdmin.Equals(caller.Role) {
		return ErrForbidden
	}

	if callerID == id {
		return ErrSelfDeletion
	}

	res := s.db.Delete(&database.AdminUser{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *AdminService) sendCredentialsMail(admin *database.AdminUser) {
	if s.mailer == nil {
		return
	}

	message := mail.Email{
		Subject: "Your administrator account",
		Body:    fmt.Sprintf("Hello %s, an administrator account with role %s was created for %s. Sign in to activate it.", admin.FirstName, admin.Role, admin.Email),
		From:    s.from,
		To:      []string{admin.Email},
	}

	go func() {
		if err := s.mailer.SendMail(&message); err != nil {
			log.Warnf("credentials mail to %s failed: %v", admin.Email, err)
		}
	}()
}
