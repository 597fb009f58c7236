package dtos

import (
	"time"

	"github.com/applytrack/applytrack/internal/models"
	"github.com/applytrack/applytrack/internal/types"
)

type ApplicationCreateRequest struct {
	JobTitle          string      `json:"job_title" binding:"required,max=255"`
	CompanyID         uint        `json:"company_id" binding:"required"`
	ContactID         *uint       `json:"contact_id"`
	Status            string      `json:"status" binding:"omitempty,oneof=DRAFT APPLIED INTERVIEW OFFER REJECTED WITHDRAWN"`
	AppliedOn         *types.Date `json:"applied_on"`
	InterviewOn       *types.Date `json:"interview_on"`
	OfferOn           *types.Date `json:"offer_on"`
	RejectedOn        *types.Date `json:"rejected_on"`
	FollowUpOn        *types.Date `json:"follow_up_on"`
	JobPostingLink    string      `json:"job_posting_link" binding:"omitempty,url,max=500"`
	SalaryExpectation *uint       `json:"salary_expectation"`
}

// ApplicationUpdateRequest carries partial updates. Nullable fields can be
// cleared with an explicit null; absent fields stay untouched. A non-nil
// Notes list triggers a full reconciliation of the application's notes.
type ApplicationUpdateRequest struct {
	JobTitle          *string              `json:"job_title" binding:"omitempty,max=255"`
	CompanyID         *uint                `json:"company_id"`
	ContactID         Nullable[uint]       `json:"contact_id"`
	Status            *string              `json:"status" binding:"omitempty,oneof=DRAFT APPLIED INTERVIEW OFFER REJECTED WITHDRAWN"`
	AppliedOn         Nullable[types.Date] `json:"applied_on"`
	InterviewOn       Nullable[types.Date] `json:"interview_on"`
	OfferOn           Nullable[types.Date] `json:"offer_on"`
	RejectedOn        Nullable[types.Date] `json:"rejected_on"`
	FollowUpOn        Nullable[types.Date] `json:"follow_up_on"`
	JobPostingLink    *string              `json:"job_posting_link" binding:"omitempty,max=500"`
	SalaryExpectation Nullable[uint]       `json:"salary_expectation"`
	Notes             *[]NoteInput         `json:"notes"`
}

type ApplicationResponse struct {
	ID                uint             `json:"id"`
	JobTitle          string           `json:"job_title"`
	Company           CompanyResponse  `json:"company"`
	Contact           *ContactResponse `json:"contact"`
	Status            string           `json:"status"`
	StatusDisplay     string           `json:"status_display"`
	AppliedOn         *types.Date      `json:"applied_on"`
	InterviewOn       *types.Date      `json:"interview_on"`
	OfferOn           *types.Date      `json:"offer_on"`
	RejectedOn        *types.Date      `json:"rejected_on"`
	FollowUpOn        *types.Date      `json:"follow_up_on"`
	JobPostingLink    string           `json:"job_posting_link"`
	SalaryExpectation *uint            `json:"salary_expectation"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	Notes             []NoteResponse   `json:"notes"`
}

func NewApplicationResponse(a models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:                a.ID,
		JobTitle:          a.JobTitle,
		Company:           NewCompanyResponse(a.Company),
		Status:            string(a.Status),
		StatusDisplay:     a.Status.Display(),
		AppliedOn:         a.AppliedOn,
		InterviewOn:       a.InterviewOn,
		OfferOn:           a.OfferOn,
		RejectedOn:        a.RejectedOn,
		FollowUpOn:        a.FollowUpOn,
		JobPostingLink:    a.JobPostingLink,
		SalaryExpectation: a.SalaryExpectation,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
		Notes:             NewNoteResponses(a.Notes),
	}
	if a.Contact != nil {
		contact := NewContactResponse(*a.Contact)
		resp.Contact = &contact
	}
	return resp
}

func NewApplicationResponses(apps []models.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
