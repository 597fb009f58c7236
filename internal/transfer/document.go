// Package transfer implements the export/import of one user's complete
// data set as a single JSON document with four flat collections. Import is
// an ID-preserving upsert so foreign keys inside the document stay
// resolvable across round trips.
package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/applytrack/applytrack/internal/models"
	"github.com/applytrack/applytrack/internal/types"
)

// Document is the export file format: four named collections of flat
// records. Owner references are deliberately absent; the importer always
// assigns ownership to the importing user.
type Document struct {
	Companies    []CompanyRecord     `json:"companies"`
	Contacts     []ContactRecord     `json:"contacts"`
	Applications []ApplicationRecord `json:"applications"`
	Notes        []NoteRecord        `json:"notes"`
}

type CompanyRecord struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Website  string `json:"website"`
	Industry string `json:"industry"`
}

type ContactRecord struct {
	ID        uint   `json:"id"`
	CompanyID uint   `json:"company_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
}

type ApplicationRecord struct {
	ID                uint        `json:"id"`
	JobTitle          string      `json:"job_title"`
	CompanyID         uint        `json:"company_id"`
	ContactID         *uint       `json:"contact_id"`
	Status            string      `json:"status"`
	AppliedOn         *types.Date `json:"applied_on"`
	InterviewOn       *types.Date `json:"interview_on"`
	OfferOn           *types.Date `json:"offer_on"`
	RejectedOn        *types.Date `json:"rejected_on"`
	FollowUpOn        *types.Date `json:"follow_up_on"`
	JobPostingLink    string      `json:"job_posting_link"`
	SalaryExpectation *uint       `json:"salary_expectation"`
	CreatedAt         time.Time   `json:"created_at"`
}

type NoteRecord struct {
	ID            uint      `json:"id"`
	ApplicationID uint      `json:"application_id"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"created_at"`
}

// rawDocument uses pointer slices so a missing collection can be told apart
// from an empty one.
type rawDocument struct {
	Companies    *[]CompanyRecord     `json:"companies"`
	Contacts     *[]ContactRecord     `json:"contacts"`
	Applications *[]ApplicationRecord `json:"applications"`
	Notes        *[]NoteRecord        `json:"notes"`
}

// ParseDocument decodes and structurally validates an export document. Any
// structural problem rejects the whole document; nothing may be written on
// the strength of a partially valid file.
func ParseDocument(r io.Reader) (*Document, error) {
	var raw rawDocument
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("malformed document: %w", err)
	}

	switch {
	case raw.Companies == nil:
		return nil, fmt.Errorf("malformed document: missing collection %q", "companies")
	case raw.Contacts == nil:
		return nil, fmt.Errorf("malformed document: missing collection %q", "contacts")
	case raw.Applications == nil:
		return nil, fmt.Errorf("malformed document: missing collection %q", "applications")
	case raw.Notes == nil:
		return nil, fmt.Errorf("malformed document: missing collection %q", "notes")
	}

	doc := &Document{
		Companies:    *raw.Companies,
		Contacts:     *raw.Contacts,
		Applications: *raw.Applications,
		Notes:        *raw.Notes,
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Document) validate() error {
	for i, c := range d.Companies {
		if c.ID == 0 {
			return fmt.Errorf("companies[%d]: missing field %q", i, "id")
		}
		if c.Name == "" {
			return fmt.Errorf("companies[%d]: missing field %q", i, "name")
		}
	}
	for i, c := range d.Contacts {
		if c.ID == 0 {
			return fmt.Errorf("contacts[%d]: missing field %q", i, "id")
		}
		if c.CompanyID == 0 {
			return fmt.Errorf("contacts[%d]: missing field %q", i, "company_id")
		}
		if c.FirstName == "" {
			return fmt.Errorf("contacts[%d]: missing field %q", i, "first_name")
		}
		if c.LastName == "" {
			return fmt.Errorf("contacts[%d]: missing field %q", i, "last_name")
		}
	}
	for i, a := range d.Applications {
		if a.ID == 0 {
			return fmt.Errorf("applications[%d]: missing field %q", i, "id")
		}
		if a.JobTitle == "" {
			return fmt.Errorf("applications[%d]: missing field %q", i, "job_title")
		}
		if a.CompanyID == 0 {
			return fmt.Errorf("applications[%d]: missing field %q", i, "company_id")
		}
		if !models.ApplicationStatus(a.Status).Valid() {
			return fmt.Errorf("applications[%d]: invalid status %q", i, a.Status)
		}
	}
	for i, n := range d.Notes {
		if n.ID == 0 {
			return fmt.Errorf("notes[%d]: missing field %q", i, "id")
		}
		if n.ApplicationID == 0 {
			return fmt.Errorf("notes[%d]: missing field %q", i, "application_id")
		}
	}
	return nil
}
