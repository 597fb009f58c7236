package dtos

import (
	"time"

	"github.com/applytrack/applytrack/internal/models"
)

type CompanyCreateRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Website  string `json:"website" binding:"omitempty,url,max=500"`
	Industry string `json:"industry" binding:"omitempty,max=100"`
}

// CompanyUpdateRequest carries partial updates; nil fields are untouched.
type CompanyUpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=200"`
	Website  *string `json:"website" binding:"omitempty,max=500"`
	Industry *string `json:"industry" binding:"omitempty,max=100"`
}

type CompanyResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Website   string    `json:"website"`
	Industry  string    `json:"industry"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCompanyResponse(c models.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Website:   c.Website,
		Industry:  c.Industry,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewCompanyResponses(companies []models.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, NewCompanyResponse(c))
	}
	return out
}
