package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"wheelhub-backend/internal/domain"
	"wheelhub-backend/internal/logger"
	"wheelhub-backend/internal/repository"
	"wheelhub-backend/internal/security"
)

const minPasswordLength = 8

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, error) {
	logger.EnterMethod("authService.Register", "email", email, "role", role)

	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return nil, "", fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	switch role {
	case "":
		role = domain.UserRoleCustomer
	case domain.UserRoleCustomer, domain.UserRoleVendor:
	default:
		// admins are provisioned out of band
		return nil, "", fmt.Errorf("%w: role %q cannot self-register", domain.ErrValidation, role)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := &domain.User{
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.Register", err)
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	logger.ExitMethod("authService.Register", "user_id", user.ID)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("Login lookup failed", "error", err)
		}
		return nil, "", domain.ErrInvalidCredentials
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) UpdateDeviceToken(ctx context.Context, userID int32, token string) error {
	return s.userRepo.UpdateDeviceToken(ctx, userID, strings.TrimSpace(token))
}
