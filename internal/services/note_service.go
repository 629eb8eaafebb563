package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/taskflow/internal/models"
	"github.com/terraincognita07/taskflow/internal/realtime"
)

const MaxManagerNoteLength = 2000

type ManagerNoteRepository interface {
	FindByCompanyDay(ctx context.Context, companyID uint, dayStart time.Time, dayEnd time.Time) (models.ManagerNote, bool, error)
	Upsert(ctx context.Context, note *models.ManagerNote) error
}

type NoteService struct {
	guard  *TenantGuard
	notes  ManagerNoteRepository
	events EventPublisher
}

func NewNoteService(guard *TenantGuard, notes ManagerNoteRepository, events EventPublisher) *NoteService {
	return &NoteService{
		guard:  guard,
		notes:  notes,
		events: events,
	}
}

// UpsertNote stores the one note for (company, day), overwriting content and author.
func (service *NoteService) UpsertNote(ctx context.Context, user *models.User, companyID uint, date time.Time, content string) (models.ManagerNote, error) {
	if err := RequireUser(user); err != nil {
		return models.ManagerNote{}, err
	}
	if utf8.RuneCountInString(content) > MaxManagerNoteLength {
		return models.ManagerNote{}, invalidInput("content", fmt.Sprintf("Note must be at most %d characters", MaxManagerNoteLength))
	}
	if err := service.guard.AuthorizeManagerOfCompany(user, companyID); err != nil {
		return models.ManagerNote{}, err
	}

	note := models.ManagerNote{
		CompanyID:       companyID,
		Date:            NormalizeDay(date),
		Content:         content,
		CreatedByUserID: user.ID,
	}
	if err := service.notes.Upsert(ctx, &note); err != nil {
		return models.ManagerNote{}, fmt.Errorf("upsert manager note: %w", err)
	}

	publish(service.events, realtime.DayChannel(companyID, note.Date), realtime.EventManagerNoteUpdate, map[string]any{})
	return note, nil
}

func (service *NoteService) GetNote(ctx context.Context, user *models.User, companyID uint, date time.Time) (*models.ManagerNote, error) {
	if err := service.guard.AuthorizeCompany(user, companyID); err != nil {
		return nil, err
	}
	return service.findNote(ctx, companyID, date)
}

func (service *NoteService) findNote(ctx context.Context, companyID uint, date time.Time) (*models.ManagerNote, error) {
	dayStart, dayEnd := DayRange(date)
	note, found, err := service.notes.FindByCompanyDay(ctx, companyID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("load manager note: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &note, nil
}
