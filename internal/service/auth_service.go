package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CamiloCastellanos/drop-sub000/internal/domain"
	"github.com/CamiloCastellanos/drop-sub000/internal/dto"
	"github.com/CamiloCastellanos/drop-sub000/internal/repository"
	"github.com/CamiloCastellanos/drop-sub000/internal/utils"
)

// authService implements AuthService interface
type authService struct {
	userRepo         repository.UserRepository
	jwtManager       *utils.JWTManager
	blacklistService TokenBlacklist
	bcryptCost       int
	resetTokenExpiry time.Duration
	now              func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	blacklistService TokenBlacklist,
	bcryptCost int,
	resetTokenExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		jwtManager:       jwtManager,
		blacklistService: blacklistService,
		bcryptCost:       bcryptCost,
		resetTokenExpiry: resetTokenExpiry,
		now:              time.Now,
	}
}

// Register creates a new user and returns its id
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (string, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.CountryCode = strings.TrimSpace(req.CountryCode)
	req.Email = utils.SanitizeEmail(req.Email)

	if req.FirstName == "" || req.LastName == "" || req.Phone == "" || req.CountryCode == "" {
		return "", fmt.Errorf("all fields are required: %w", ErrValidation)
	}

	if !utils.ValidateEmail(req.Email) {
		return "", fmt.Errorf("invalid email format: %w", ErrValidation)
	}

	if !utils.ValidatePassword(req.Password) {
		return "", fmt.Errorf("password must be at least 6 characters long: %w", ErrValidation)
	}

	roleID := domain.RoleID(req.Role)
	if roleID != domain.RoleDropshipper && roleID != domain.RoleProvider {
		return "", fmt.Errorf("role must be DROPSHIPPER or PROVIDER: %w", ErrValidation)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
		CountryCode:  req.CountryCode,
		RoleID:       roleID,
		Status:       domain.StatusOff,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", fmt.Errorf("email %s is taken: %w", req.Email, ErrDuplicateEmail)
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return user.ID, nil
}

// Login authenticates a user and mints a session token. Unknown email and
// wrong password produce the same error.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Re-login while already ON is idempotent
	if err := s.userRepo.UpdateStatus(ctx, user.ID, domain.StatusOn); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Last-login is advisory, do not fail the login
		_ = err
	}

	return &dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.jwtManager.TokenExpiry(),
		User: dto.UserInfo{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      domain.RoleName(user.RoleID),
		},
	}, nil
}

// Logout blacklists the presented token for its remaining lifetime and sets
// status OFF. Logging out twice is not an error.
func (s *authService) Logout(ctx context.Context, claims *domain.TokenClaims, token string) error {
	remaining := claims.RemainingLifetime(s.now())
	if remaining > 0 {
		if err := s.blacklistService.AddToken(ctx, token, remaining); err != nil {
			return fmt.Errorf("failed to blacklist token: %w", err)
		}
	}

	if err := s.userRepo.UpdateStatus(ctx, claims.UserID, domain.StatusOff); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}

// ForgotPassword stores a fresh reset token for the account, when it exists.
// The returned token is handed to the delivery channel; callers answer the
// client identically whether or not the email was known.
func (s *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return "", err
	}

	expiresAt := s.now().Add(s.resetTokenExpiry)
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	return token, nil
}

// ResetPassword consumes a reset token and replaces the password
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !utils.ValidatePassword(newPassword) {
		return fmt.Errorf("password must be at least 6 characters long: %w", ErrValidation)
	}

	user, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to get user by reset token: %w", err)
	}

	if user.ResetTokenExpiresAt == nil || s.now().After(*user.ResetTokenExpiresAt) {
		return ErrInvalidToken
	}

	passwordHash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// UpdatePassword clears the reset token in the same statement
	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// ChangePassword replaces the password after verifying the current one
func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if !utils.ValidatePassword(newPassword) {
		return fmt.Errorf("password must be at least 6 characters long: %w", ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	passwordHash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// GetUser gets user profile information
func (s *authService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	response := &dto.UserResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		CountryCode: user.CountryCode,
		Role:        domain.RoleName(user.RoleID),
		Status:      user.Status,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   user.UpdatedAt.Format(time.RFC3339),
	}

	if user.LastLoginAt != nil {
		lastLogin := user.LastLoginAt.Format(time.RFC3339)
		response.LastLoginAt = &lastLogin
	}

	return response, nil
}

// ValidateToken validates a session token against the blacklist and signature
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	isBlacklisted, err := s.blacklistService.IsTokenBlacklisted(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if isBlacklisted {
		return nil, fmt.Errorf("token is revoked: %w", utils.ErrExpiredToken)
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	return claims, nil
}
