package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/dtos"
	"github.com/applytrack/applytrack/internal/models"
)

// NoteService covers direct note CRUD. Notes carry no owner column of their
// own; ownership always runs through the parent application.
type NoteService struct {
	DB *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{DB: db}
}

func (s *NoteService) List(userID uint) ([]models.Note, error) {
	var notes []models.Note
	err := s.DB.
		Joins("JOIN applications ON applications.id = notes.application_id").
		Where("applications.user_id = ?", userID).
		Order("notes.created_at DESC, notes.id DESC").
		Find(&notes).Error
	return notes, err
}

func (s *NoteService) Get(userID, id uint) (*models.Note, error) {
	var note models.Note
	err := s.DB.
		Joins("JOIN applications ON applications.id = notes.application_id").
		Where("notes.id = ? AND applications.user_id = ?", id, userID).
		First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) Create(userID uint, req *dtos.NoteCreateRequest) (*models.Note, error) {
	if err := ownApplication(s.DB, userID, req.ApplicationID); err != nil {
		return nil, err
	}

	note := models.Note{ApplicationID: req.ApplicationID, Text: req.Text}
	if err := s.DB.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) Update(userID, id uint, req *dtos.NoteUpdateRequest) (*models.Note, error) {
	note, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if req.Text != nil {
		note.Text = *req.Text
		if err := s.DB.Model(&models.Note{}).Where("id = ?", id).
			Update("text", *req.Text).Error; err != nil {
			return nil, err
		}
	}
	return note, nil
}

func (s *NoteService) Delete(userID, id uint) error {
	note, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	return s.DB.Delete(note).Error
}

func ownApplication(db *gorm.DB, userID, applicationID uint) error {
	var count int64
	if err := db.Model(&models.Application{}).
		Where("id = ? AND user_id = ?", applicationID, userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("application %d: %w", applicationID, ErrInvalidReference)
	}
	return nil
}
