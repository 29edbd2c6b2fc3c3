package services

import (
	"context"
	"strings"
	"time"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"gorm.io/gorm"
)

// IdentityService registers users and issues and checks bearer tokens
type IdentityService struct {
	db     *gorm.DB
	secret string
	ttl    time.Duration
}

func NewIdentityService(db *gorm.DB, secret string, ttl time.Duration) *IdentityService {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &IdentityService{db: db, secret: secret, ttl: ttl}
}

// LoginInput are a user's credentials
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a vendor or driver account. Admin accounts are created
// by an admin.
func (s *IdentityService) Register(ctx context.Context, in UserInput) (*AuthResult, error) {
	if in.Role == models.RoleAdmin {
		return nil, utils.ForbiddenError("Admin accounts cannot be self registered")
	}
	user, err := newUser(in)
	if err != nil {
		return nil, err
	}
	if err := insertUser(s.db.WithContext(ctx), user); err != nil {
		return nil, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	utils.LogInfo("User registered: %s (%s)", user.Email, user.Role)
	return &AuthResult{Token: token, User: user}, nil
}

// Login checks the credentials and returns a fresh token
func (s *IdentityService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if utils.IsKind(storeError(err, ""), utils.KindNotFound) {
			utils.LogDebug("Login failed: unknown email %s", email)
			return nil, utils.UnauthorizedError("Invalid credentials", nil)
		}
		return nil, storeError(err, "")
	}
	if !utils.CheckPassword(in.Password, user.Password) {
		utils.LogDebug("Login failed: wrong password for %s", email)
		return nil, utils.UnauthorizedError("Invalid credentials", nil)
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}
	utils.LogInfo("User logged in: %s", user.Email)
	return &AuthResult{Token: token, User: &user}, nil
}

// IssueToken signs a token carrying the user's id and role
func (s *IdentityService) IssueToken(user *models.User) (string, error) {
	token, err := utils.GenerateToken(user, s.secret, s.ttl)
	if err != nil {
		return "", utils.UnexpectedError("Failed to generate token", err)
	}
	return token, nil
}

// Authenticate resolves a bearer token to a live account. The role comes
// from the account, not the token, so a role change applies immediately.
func (s *IdentityService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, utils.UnauthorizedError("Authorization token required", nil)
	}
	principal, err := utils.ValidateToken(token, s.secret)
	if err != nil {
		return nil, utils.UnauthorizedError("Invalid or expired token", err)
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, principal.ID).Error; err != nil {
		if utils.IsKind(storeError(err, ""), utils.KindNotFound) {
			return nil, utils.UnauthorizedError("User not found", nil)
		}
		return nil, storeError(err, "")
	}
	return &user, nil
}
