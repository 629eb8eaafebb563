package db

import (
	"context"

	"github.com/terraincognita07/taskflow/internal/models"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	database *gorm.DB
}

func NewCompanyRepository(database *gorm.DB) *CompanyRepository {
	return &CompanyRepository{database: database}
}

func (repo *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	return repo.database.WithContext(ctx).Create(company).Error
}

func (repo *CompanyRepository) FindByID(ctx context.Context, companyID uint) (models.Company, error) {
	var company models.Company
	if err := repo.database.WithContext(ctx).First(&company, companyID).Error; err != nil {
		return models.Company{}, err
	}
	return company, nil
}
