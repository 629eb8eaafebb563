package db

import (
	"context"
	"time"

	"github.com/terraincognita07/taskflow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ManagerNoteRepository struct {
	database *gorm.DB
}

func NewManagerNoteRepository(database *gorm.DB) *ManagerNoteRepository {
	return &ManagerNoteRepository{database: database}
}

func (repo *ManagerNoteRepository) FindByCompanyDay(ctx context.Context, companyID uint, dayStart time.Time, dayEnd time.Time) (models.ManagerNote, bool, error) {
	notes := make([]models.ManagerNote, 0, 1)
	if err := repo.database.WithContext(ctx).
		Where("company_id = ? AND date >= ? AND date < ?", companyID, dayStart, dayEnd).
		Order("id DESC").
		Limit(1).
		Find(&notes).Error; err != nil {
		return models.ManagerNote{}, false, err
	}
	if len(notes) == 0 {
		return models.ManagerNote{}, false, nil
	}
	return notes[0], true, nil
}

// Upsert writes the note in a single statement keyed on (company_id, date); the last writer's
// content and author win.
func (repo *ManagerNoteRepository) Upsert(ctx context.Context, note *models.ManagerNote) error {
	return repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "created_by_user_id", "updated_at"}),
	}).Create(note).Error
}
