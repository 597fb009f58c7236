package transfer

import (
	"encoding/json"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/models"
)

// Export walks the user's data and writes it as one JSON document. Records
// within each collection are ordered by ID so the output is diffable. A
// user without data yields a document with four empty collections.
func Export(db *gorm.DB, userID uint, w io.Writer) (*Document, error) {
	doc, err := BuildDocument(db, userID)
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}
	return doc, nil
}

// BuildDocument assembles the export document without writing it anywhere.
func BuildDocument(db *gorm.DB, userID uint) (*Document, error) {
	doc := &Document{
		Companies:    []CompanyRecord{},
		Contacts:     []ContactRecord{},
		Applications: []ApplicationRecord{},
		Notes:        []NoteRecord{},
	}

	var companies []models.Company
	if err := db.Where("user_id = ?", userID).Order("id").Find(&companies).Error; err != nil {
		return nil, err
	}
	for _, c := range companies {
		doc.Companies = append(doc.Companies, CompanyRecord{
			ID:       c.ID,
			Name:     c.Name,
			Website:  c.Website,
			Industry: c.Industry,
		})
	}

	var contacts []models.Contact
	if err := db.Where("user_id = ?", userID).Order("id").Find(&contacts).Error; err != nil {
		return nil, err
	}
	for _, c := range contacts {
		doc.Contacts = append(doc.Contacts, ContactRecord{
			ID:        c.ID,
			CompanyID: c.CompanyID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Email:     c.Email,
			Phone:     c.Phone,
			Position:  c.Position,
		})
	}

	var apps []models.Application
	if err := db.Where("user_id = ?", userID).Order("id").Find(&apps).Error; err != nil {
		return nil, err
	}
	for _, a := range apps {
		doc.Applications = append(doc.Applications, ApplicationRecord{
			ID:                a.ID,
			JobTitle:          a.JobTitle,
			CompanyID:         a.CompanyID,
			ContactID:         a.ContactID,
			Status:            string(a.Status),
			AppliedOn:         a.AppliedOn,
			InterviewOn:       a.InterviewOn,
			OfferOn:           a.OfferOn,
			RejectedOn:        a.RejectedOn,
			FollowUpOn:        a.FollowUpOn,
			JobPostingLink:    a.JobPostingLink,
			SalaryExpectation: a.SalaryExpectation,
			CreatedAt:         a.CreatedAt,
		})
	}

	// Notes have no owner column; ownership runs through the application.
	var notes []models.Note
	if err := db.
		Joins("JOIN applications ON applications.id = notes.application_id").
		Where("applications.user_id = ?", userID).
		Order("notes.id").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	for _, n := range notes {
		doc.Notes = append(doc.Notes, NoteRecord{
			ID:            n.ID,
			ApplicationID: n.ApplicationID,
			Text:          n.Text,
			CreatedAt:     n.CreatedAt,
		})
	}

	return doc, nil
}
