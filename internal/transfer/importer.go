package transfer

import (
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/models"
)

// Counts tallies the outcome for one collection of an import run.
type Counts struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// Report is the result of one import run. Skipped holds one line per
// record that was rejected, indexed into its collection.
type Report struct {
	Companies    Counts   `json:"companies"`
	Contacts     Counts   `json:"contacts"`
	Applications Counts   `json:"applications"`
	Notes        Counts   `json:"notes"`
	Skipped      []string `json:"skipped,omitempty"`
}

// Import reads a document and applies it to the target user's data with
// upsert semantics, in dependency order: companies, contacts, applications,
// notes. IDs from the document are preserved; ownership is always forced to
// the importing user. A structurally invalid document rejects the whole run
// before any write; a record whose foreign key does not resolve is skipped
// with a one-line error in the report. The run is a single transaction.
func Import(db *gorm.DB, userID uint, r io.Reader) (*Report, error) {
	doc, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	return ImportDocument(db, userID, doc)
}

// ImportDocument applies an already parsed document. See Import.
func ImportDocument(db *gorm.DB, userID uint, doc *Document) (*Report, error) {
	report := &Report{}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i, rec := range doc.Companies {
			if err := applyRecord(tx, report, "companies", i, func(tx *gorm.DB) error {
				return importCompany(tx, userID, rec, &report.Companies)
			}); err != nil {
				return err
			}
		}
		for i, rec := range doc.Contacts {
			if err := applyRecord(tx, report, "contacts", i, func(tx *gorm.DB) error {
				return importContact(tx, userID, rec, &report.Contacts)
			}); err != nil {
				return err
			}
		}
		for i, rec := range doc.Applications {
			if err := applyRecord(tx, report, "applications", i, func(tx *gorm.DB) error {
				return importApplication(tx, userID, rec, &report.Applications)
			}); err != nil {
				return err
			}
		}
		for i, rec := range doc.Notes {
			if err := applyRecord(tx, report, "notes", i, func(tx *gorm.DB) error {
				return importNote(tx, userID, rec, &report.Notes)
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// applyRecord runs one record's upsert behind a savepoint so a failing
// statement can be skipped without poisoning the surrounding transaction.
func applyRecord(tx *gorm.DB, report *Report, collection string, index int, fn func(*gorm.DB) error) error {
	name := fmt.Sprintf("sp_%s_%d", collection, index)
	if err := tx.SavePoint(name).Error; err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.RollbackTo(name).Error; rbErr != nil {
			return rbErr
		}
		report.skip(collection, index, err)
	}
	return nil
}

func (r *Report) skip(collection string, index int, err error) {
	r.Skipped = append(r.Skipped, fmt.Sprintf("%s[%d]: %v", collection, index, err))
}

// errIDConflict is the non-leaking error for an ID already taken by a
// record of another user. IDs are globally unique, so the upsert lookup is
// global, but ownership is never reassigned.
func errIDConflict(id uint) error {
	return fmt.Errorf("id %d already in use", id)
}

func importCompany(tx *gorm.DB, userID uint, rec CompanyRecord, counts *Counts) error {
	var existing models.Company
	err := tx.First(&existing, rec.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		company := models.Company{
			ID:       rec.ID,
			UserID:   userID,
			Name:     rec.Name,
			Website:  rec.Website,
			Industry: rec.Industry,
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}
		counts.Created++
	case err != nil:
		return err
	case existing.UserID != userID:
		return errIDConflict(rec.ID)
	default:
		updates := map[string]interface{}{
			"name":     rec.Name,
			"website":  rec.Website,
			"industry": rec.Industry,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		counts.Updated++
	}
	return nil
}

func importContact(tx *gorm.DB, userID uint, rec ContactRecord, counts *Counts) error {
	if err := resolveOwned(tx, userID, &models.Company{}, rec.CompanyID); err != nil {
		return fmt.Errorf("company %d not found", rec.CompanyID)
	}

	var existing models.Contact
	err := tx.First(&existing, rec.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		contact := models.Contact{
			ID:        rec.ID,
			UserID:    userID,
			CompanyID: rec.CompanyID,
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
			Email:     rec.Email,
			Phone:     rec.Phone,
			Position:  rec.Position,
		}
		if err := tx.Create(&contact).Error; err != nil {
			return err
		}
		counts.Created++
	case err != nil:
		return err
	case existing.UserID != userID:
		return errIDConflict(rec.ID)
	default:
		updates := map[string]interface{}{
			"company_id": rec.CompanyID,
			"first_name": rec.FirstName,
			"last_name":  rec.LastName,
			"email":      rec.Email,
			"phone":      rec.Phone,
			"position":   rec.Position,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		counts.Updated++
	}
	return nil
}

func importApplication(tx *gorm.DB, userID uint, rec ApplicationRecord, counts *Counts) error {
	if err := resolveOwned(tx, userID, &models.Company{}, rec.CompanyID); err != nil {
		return fmt.Errorf("company %d not found", rec.CompanyID)
	}
	if rec.ContactID != nil {
		if err := resolveOwned(tx, userID, &models.Contact{}, *rec.ContactID); err != nil {
			return fmt.Errorf("contact %d not found", *rec.ContactID)
		}
	}

	var existing models.Application
	err := tx.First(&existing, rec.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		app := models.Application{
			ID:                rec.ID,
			UserID:            userID,
			JobTitle:          rec.JobTitle,
			CompanyID:         rec.CompanyID,
			ContactID:         rec.ContactID,
			Status:            models.ApplicationStatus(rec.Status),
			AppliedOn:         rec.AppliedOn,
			InterviewOn:       rec.InterviewOn,
			OfferOn:           rec.OfferOn,
			RejectedOn:        rec.RejectedOn,
			FollowUpOn:        rec.FollowUpOn,
			JobPostingLink:    rec.JobPostingLink,
			SalaryExpectation: rec.SalaryExpectation,
		}
		if !rec.CreatedAt.IsZero() {
			app.CreatedAt = rec.CreatedAt
		}
		if err := tx.Create(&app).Error; err != nil {
			return err
		}
		counts.Created++
	case err != nil:
		return err
	case existing.UserID != userID:
		return errIDConflict(rec.ID)
	default:
		updates := map[string]interface{}{
			"job_title":          rec.JobTitle,
			"company_id":         rec.CompanyID,
			"contact_id":         rec.ContactID,
			"status":             rec.Status,
			"applied_on":         rec.AppliedOn,
			"interview_on":       rec.InterviewOn,
			"offer_on":           rec.OfferOn,
			"rejected_on":        rec.RejectedOn,
			"follow_up_on":       rec.FollowUpOn,
			"job_posting_link":   rec.JobPostingLink,
			"salary_expectation": rec.SalaryExpectation,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		counts.Updated++
	}
	return nil
}

func importNote(tx *gorm.DB, userID uint, rec NoteRecord, counts *Counts) error {
	if err := resolveOwned(tx, userID, &models.Application{}, rec.ApplicationID); err != nil {
		return fmt.Errorf("application %d not found", rec.ApplicationID)
	}

	var existing models.Note
	err := tx.First(&existing, rec.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		note := models.Note{
			ID:            rec.ID,
			ApplicationID: rec.ApplicationID,
			Text:          rec.Text,
		}
		if !rec.CreatedAt.IsZero() {
			note.CreatedAt = rec.CreatedAt
		}
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		counts.Created++
	case err != nil:
		return err
	default:
		// A note's owner is its application's owner.
		if err := resolveOwned(tx, userID, &models.Application{}, existing.ApplicationID); err != nil {
			return errIDConflict(rec.ID)
		}
		updates := map[string]interface{}{
			"application_id": rec.ApplicationID,
			"text":           rec.Text,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		counts.Updated++
	}
	return nil
}

// resolveOwned checks that a record of the given model exists with this ID
// and belongs to the user. Earlier writes of the same run are visible
// because the whole run shares one transaction.
func resolveOwned(tx *gorm.DB, userID uint, model interface{}, id uint) error {
	var count int64
	if err := tx.Model(model).
		Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
