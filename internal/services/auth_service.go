package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/security"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthUserRepository interface {
	FindByID(ctx context.Context, userID uint) (models.User, error)
	FindByNormalizedEmail(ctx context.Context, email string) (models.User, error)
	UpdatePasswordHash(ctx context.Context, userID uint, passwordHash string) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// Authenticate checks email and password. Unknown email and wrong password are indistinguishable.
func (service *AuthService) Authenticate(ctx context.Context, email string, password string) (models.User, error) {
	normalized := NormalizeAuthEmail(email)
	if normalized == "" || strings.TrimSpace(password) == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(ctx, normalized)
	if err != nil {
		if isRecordNotFound(err) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(ctx context.Context, userID uint) (models.User, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		if isRecordNotFound(err) {
			return models.User{}, ErrUnauthenticated
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// ResetPassword replaces the user's password with a generated temporary one and returns it.
func (service *AuthService) ResetPassword(ctx context.Context, email string) (string, error) {
	normalized := NormalizeAuthEmail(email)
	if normalized == "" {
		return "", invalidInput("email", "Invalid email address")
	}

	user, err := service.users.FindByNormalizedEmail(ctx, normalized)
	if err != nil {
		if isRecordNotFound(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	temporary, err := security.TemporaryPassword(12)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(temporary), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash temporary password: %w", err)
	}
	if err := service.users.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return "", fmt.Errorf("update password: %w", err)
	}
	return temporary, nil
}

// SetPassword replaces the password of the user with the given email.
func (service *AuthService) SetPassword(ctx context.Context, email string, password string) error {
	normalized := NormalizeAuthEmail(email)
	if normalized == "" {
		return invalidInput("email", "Invalid email address")
	}
	if len([]rune(password)) < MinPasswordLength {
		return invalidInput("password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}

	user, err := service.users.FindByNormalizedEmail(ctx, normalized)
	if err != nil {
		if isRecordNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
