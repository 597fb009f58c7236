package dtos

import "github.com/applytrack/applytrack/internal/models"

type ContactCreateRequest struct {
	CompanyID uint   `json:"company_id" binding:"required"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"omitempty,max=50"`
	Position  string `json:"position" binding:"omitempty,max=100"`
}

type ContactUpdateRequest struct {
	CompanyID *uint   `json:"company_id"`
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	Position  *string `json:"position" binding:"omitempty,max=100"`
}

// ContactResponse embeds the full company record for display; writes go
// through company_id instead.
type ContactResponse struct {
	ID        uint            `json:"id"`
	Company   CompanyResponse `json:"company"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Position  string          `json:"position"`
}

func NewContactResponse(c models.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Company:   NewCompanyResponse(c.Company),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Position:  c.Position,
	}
}

func NewContactResponses(contacts []models.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, NewContactResponse(c))
	}
	return out
}
