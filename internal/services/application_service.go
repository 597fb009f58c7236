package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/dtos"
	"github.com/applytrack/applytrack/internal/models"
)

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

func withApplicationRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Company").
		Preload("Contact").Preload("Contact.Company").
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("notes.created_at DESC, notes.id DESC")
		})
}

func (s *ApplicationService) List(userID uint) ([]models.Application, error) {
	var apps []models.Application
	err := withApplicationRelations(s.DB).
		Where("user_id = ?", userID).Order("id").Find(&apps).Error
	return apps, err
}

func (s *ApplicationService) Get(userID, id uint) (*models.Application, error) {
	var app models.Application
	err := withApplicationRelations(s.DB).
		Where("id = ? AND user_id = ?", id, userID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) Create(userID uint, req *dtos.ApplicationCreateRequest) (*models.Application, error) {
	if err := ownCompany(s.DB, userID, req.CompanyID); err != nil {
		return nil, err
	}
	if req.ContactID != nil {
		if err := ownContact(s.DB, userID, *req.ContactID); err != nil {
			return nil, err
		}
	}

	status := models.ApplicationStatus(req.Status)
	if req.Status == "" {
		status = models.StatusDraft
	}

	app := models.Application{
		UserID:            userID,
		JobTitle:          req.JobTitle,
		CompanyID:         req.CompanyID,
		ContactID:         req.ContactID,
		Status:            status,
		AppliedOn:         req.AppliedOn,
		InterviewOn:       req.InterviewOn,
		OfferOn:           req.OfferOn,
		RejectedOn:        req.RejectedOn,
		FollowUpOn:        req.FollowUpOn,
		JobPostingLink:    req.JobPostingLink,
		SalaryExpectation: req.SalaryExpectation,
	}
	if err := s.DB.Create(&app).Error; err != nil {
		return nil, err
	}
	return s.Get(userID, app.ID)
}

// Update applies a partial update to the application. When the request
// carries a notes list, the application's note set is reconciled against it
// in the same transaction (see syncNotes).
func (s *ApplicationService) Update(userID, id uint, req *dtos.ApplicationUpdateRequest) (*models.Application, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if req.JobTitle != nil {
			app.JobTitle = *req.JobTitle
		}
		if req.CompanyID != nil {
			if err := ownCompany(tx, userID, *req.CompanyID); err != nil {
				return err
			}
			app.CompanyID = *req.CompanyID
		}
		if req.ContactID.Set {
			if req.ContactID.Value != nil {
				if err := ownContact(tx, userID, *req.ContactID.Value); err != nil {
					return err
				}
			}
			app.ContactID = req.ContactID.Value
		}
		if req.Status != nil {
			app.Status = models.ApplicationStatus(*req.Status)
		}
		if req.AppliedOn.Set {
			app.AppliedOn = req.AppliedOn.Value
		}
		if req.InterviewOn.Set {
			app.InterviewOn = req.InterviewOn.Value
		}
		if req.OfferOn.Set {
			app.OfferOn = req.OfferOn.Value
		}
		if req.RejectedOn.Set {
			app.RejectedOn = req.RejectedOn.Value
		}
		if req.FollowUpOn.Set {
			app.FollowUpOn = req.FollowUpOn.Value
		}
		if req.JobPostingLink != nil {
			app.JobPostingLink = *req.JobPostingLink
		}
		if req.SalaryExpectation.Set {
			app.SalaryExpectation = req.SalaryExpectation.Value
		}

		updates := map[string]interface{}{
			"job_title":          app.JobTitle,
			"company_id":         app.CompanyID,
			"contact_id":         app.ContactID,
			"status":             app.Status,
			"applied_on":         app.AppliedOn,
			"interview_on":       app.InterviewOn,
			"offer_on":           app.OfferOn,
			"rejected_on":        app.RejectedOn,
			"follow_up_on":       app.FollowUpOn,
			"job_posting_link":   app.JobPostingLink,
			"salary_expectation": app.SalaryExpectation,
		}
		if err := tx.Model(&models.Application{}).Where("id = ?", app.ID).Updates(updates).Error; err != nil {
			return err
		}

		if req.Notes != nil {
			return syncNotes(tx, app.ID, *req.Notes)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID, id)
}

// Delete removes the application and all of its notes.
func (s *ApplicationService) Delete(userID, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var app models.Application
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("application_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		return tx.Delete(&app).Error
	})
}

// syncNotes makes the application's note set exactly equal the supplied
// list: notes with a known ID are overwritten, notes without an ID are
// created, and existing notes missing from the list are deleted. A note ID
// that does not belong to this application is rejected.
func syncNotes(tx *gorm.DB, applicationID uint, inputs []dtos.NoteInput) error {
	var existing []models.Note
	if err := tx.Where("application_id = ?", applicationID).Find(&existing).Error; err != nil {
		return err
	}
	existingByID := make(map[uint]models.Note, len(existing))
	for _, n := range existing {
		existingByID[n.ID] = n
	}

	keep := make(map[uint]bool, len(inputs))
	for i, input := range inputs {
		if input.ID == nil {
			note := models.Note{ApplicationID: applicationID, Text: input.Text}
			if err := tx.Create(&note).Error; err != nil {
				return err
			}
			continue
		}

		note, ok := existingByID[*input.ID]
		if !ok {
			return fmt.Errorf("notes[%d]: note %d does not belong to this application: %w",
				i, *input.ID, ErrInvalidReference)
		}
		keep[note.ID] = true
		if err := tx.Model(&models.Note{}).Where("id = ?", note.ID).
			Update("text", input.Text).Error; err != nil {
			return err
		}
	}

	var stale []uint
	for _, n := range existing {
		if !keep[n.ID] {
			stale = append(stale, n.ID)
		}
	}
	if len(stale) > 0 {
		if err := tx.Where("id IN ?", stale).Delete(&models.Note{}).Error; err != nil {
			return err
		}
	}
	return nil
}

// ownContact mirrors ownCompany for contacts.
func ownContact(db *gorm.DB, userID, contactID uint) error {
	var count int64
	if err := db.Model(&models.Contact{}).
		Where("id = ? AND user_id = ?", contactID, userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("contact %d: %w", contactID, ErrInvalidReference)
	}
	return nil
}
