package db

import (
	"context"

	"github.com/terraincognita07/taskflow/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(ctx context.Context, userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(ctx context.Context, email string) (bool, error) {
	var matched int64
	if err := repo.database.WithContext(ctx).Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) ListByCompany(ctx context.Context, companyID uint) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC, id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FirstManager returns the earliest-created manager of a company.
func (repo *UserRepository) FirstManager(ctx context.Context, companyID uint) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).
		Where("company_id = ? AND role = ?", companyID, models.RoleManager).
		Order("id ASC").
		First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) Create(ctx context.Context, user *models.User) error {
	return repo.database.WithContext(ctx).Create(user).Error
}

func (repo *UserRepository) UpdatePasswordHash(ctx context.Context, userID uint, passwordHash string) error {
	return repo.database.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}
