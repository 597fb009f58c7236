package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/dtos"
	"github.com/applytrack/applytrack/internal/models"
)

type ContactService struct {
	DB *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{DB: db}
}

func (s *ContactService) List(userID uint) ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.DB.Preload("Company").
		Where("user_id = ?", userID).Order("id").Find(&contacts).Error
	return contacts, err
}

func (s *ContactService) Get(userID, id uint) (*models.Contact, error) {
	var contact models.Contact
	err := s.DB.Preload("Company").
		Where("id = ? AND user_id = ?", id, userID).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *ContactService) Create(userID uint, req *dtos.ContactCreateRequest) (*models.Contact, error) {
	if err := ownCompany(s.DB, userID, req.CompanyID); err != nil {
		return nil, err
	}

	contact := models.Contact{
		UserID:    userID,
		CompanyID: req.CompanyID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Position:  req.Position,
	}
	if err := s.DB.Create(&contact).Error; err != nil {
		return nil, err
	}
	return s.Get(userID, contact.ID)
}

func (s *ContactService) Update(userID, id uint, req *dtos.ContactUpdateRequest) (*models.Contact, error) {
	contact, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if req.CompanyID != nil {
		if err := ownCompany(s.DB, userID, *req.CompanyID); err != nil {
			return nil, err
		}
		contact.CompanyID = *req.CompanyID
	}
	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Position != nil {
		contact.Position = *req.Position
	}

	if err := s.DB.Omit("Company").Save(contact).Error; err != nil {
		return nil, err
	}
	return s.Get(userID, id)
}

// Delete removes the contact and nulls the contact reference on any of the
// user's applications that point at it.
func (s *ContactService) Delete(userID, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var contact models.Contact
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&contact).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&models.Application{}).
			Where("contact_id = ?", id).Update("contact_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&contact).Error
	})
}

// ownCompany verifies that the company exists and belongs to the user. The
// error is the same either way so other users' data stays invisible.
func ownCompany(db *gorm.DB, userID, companyID uint) error {
	var count int64
	if err := db.Model(&models.Company{}).
		Where("id = ? AND user_id = ?", companyID, userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("company %d: %w", companyID, ErrInvalidReference)
	}
	return nil
}
