package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/dtos"
	"github.com/applytrack/applytrack/internal/models"
)

type CompanyService struct {
	DB *gorm.DB
}

func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{DB: db}
}

func (s *CompanyService) List(userID uint) ([]models.Company, error) {
	var companies []models.Company
	err := s.DB.Where("user_id = ?", userID).Order("name").Find(&companies).Error
	return companies, err
}

func (s *CompanyService) Get(userID, id uint) (*models.Company, error) {
	var company models.Company
	err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *CompanyService) Create(userID uint, req *dtos.CompanyCreateRequest) (*models.Company, error) {
	var count int64
	if err := s.DB.Model(&models.Company{}).
		Where("user_id = ? AND name = ?", userID, req.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("company %q: %w", req.Name, ErrDuplicate)
	}

	company := models.Company{
		UserID:   userID,
		Name:     req.Name,
		Website:  req.Website,
		Industry: req.Industry,
	}
	if err := s.DB.Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *CompanyService) Update(userID, id uint, req *dtos.CompanyUpdateRequest) (*models.Company, error) {
	company, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != company.Name {
		var count int64
		if err := s.DB.Model(&models.Company{}).
			Where("user_id = ? AND name = ? AND id <> ?", userID, *req.Name, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("company %q: %w", *req.Name, ErrDuplicate)
		}
		company.Name = *req.Name
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}

	if err := s.DB.Save(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes the company and cascades to its contacts, applications and
// their notes, all in one transaction.
func (s *CompanyService) Delete(userID, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&company).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var appIDs []uint
		if err := tx.Model(&models.Application{}).
			Where("company_id = ?", id).Pluck("id", &appIDs).Error; err != nil {
			return err
		}
		if len(appIDs) > 0 {
			if err := tx.Where("application_id IN ?", appIDs).Delete(&models.Note{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", appIDs).Delete(&models.Application{}).Error; err != nil {
				return err
			}
		}
		// Applications for other companies may still point at a contact of
		// this company; the reference is nulled, not cascaded.
		var contactIDs []uint
		if err := tx.Model(&models.Contact{}).
			Where("company_id = ?", id).Pluck("id", &contactIDs).Error; err != nil {
			return err
		}
		if len(contactIDs) > 0 {
			if err := tx.Model(&models.Application{}).
				Where("contact_id IN ?", contactIDs).
				Update("contact_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", contactIDs).Delete(&models.Contact{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&company).Error
	})
}
