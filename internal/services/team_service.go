package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/taskflow/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

type TeamUserRepository interface {
	ListByCompany(ctx context.Context, companyID uint) ([]models.User, error)
	ExistsByNormalizedEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

type InviteInput struct {
	Name     string
	Email    string
	Role     models.Role
	Password string
}

type TeamService struct {
	users TeamUserRepository
}

func NewTeamService(users TeamUserRepository) *TeamService {
	return &TeamService{users: users}
}

func (service *TeamService) ListTeam(ctx context.Context, user *models.User) ([]models.User, error) {
	if err := RequireUser(user); err != nil {
		return nil, err
	}
	users, err := service.users.ListByCompany(ctx, user.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("list team: %w", err)
	}
	return users, nil
}

func NormalizeInviteInput(input InviteInput) (InviteInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(input.Name) < 2 {
		return input, invalidInput("name", "Name is required")
	}
	input.Email = NormalizeAuthEmail(input.Email)
	if input.Email == "" {
		return input, invalidInput("email", "Invalid email address")
	}
	input.Role = models.Role(strings.ToUpper(strings.TrimSpace(string(input.Role))))
	if !input.Role.Valid() {
		return input, invalidInput("role", "Invalid role")
	}
	if utf8.RuneCountInString(input.Password) < MinPasswordLength {
		return input, invalidInput("password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	return input, nil
}

// InviteUser creates a teammate in the manager's own company.
func (service *TeamService) InviteUser(ctx context.Context, user *models.User, input InviteInput) (models.User, error) {
	if err := RequireManager(user); err != nil {
		return models.User{}, err
	}
	input, err := NormalizeInviteInput(input)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(ctx, input.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return models.User{}, fmt.Errorf("email already in use: %w", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	invited := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		CompanyID:    user.CompanyID,
	}
	if err := service.users.Create(ctx, &invited); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return invited, nil
}
