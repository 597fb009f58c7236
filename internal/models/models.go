package models

import (
	"time"

	"github.com/applytrack/applytrack/internal/types"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// AuthToken is the opaque API key handed out on registration and login.
// One token per user.
type AuthToken struct {
	Key       string    `gorm:"primaryKey;size:40" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `json:"-"`
}

type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"index;uniqueIndex:idx_companies_user_name;not null" json:"-"`

	Name     string `gorm:"size:200;uniqueIndex:idx_companies_user_name;not null" json:"name"`
	Website  string `gorm:"size:500" json:"website"`
	Industry string `gorm:"size:100" json:"industry"`
}

type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"index;not null" json:"-"`

	// Company this contact works for. GORM needs Preload() to fill the
	// association.
	CompanyID uint    `gorm:"not null" json:"company_id"`
	Company   Company `json:"company"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Email     string `gorm:"size:254" json:"email"`
	Phone     string `gorm:"size:50" json:"phone"`
	Position  string `gorm:"size:100" json:"position"`
}

// ApplicationStatus tracks an application from draft to its final outcome.
type ApplicationStatus string

const (
	StatusDraft     ApplicationStatus = "DRAFT"
	StatusApplied   ApplicationStatus = "APPLIED"
	StatusInterview ApplicationStatus = "INTERVIEW"
	StatusOffer     ApplicationStatus = "OFFER"
	StatusRejected  ApplicationStatus = "REJECTED"
	StatusWithdrawn ApplicationStatus = "WITHDRAWN"
)

var statusDisplay = map[ApplicationStatus]string{
	StatusDraft:     "Draft",
	StatusApplied:   "Applied",
	StatusInterview: "Interview",
	StatusOffer:     "Offer received",
	StatusRejected:  "Rejected",
	StatusWithdrawn: "Withdrawn",
}

func (s ApplicationStatus) Valid() bool {
	_, ok := statusDisplay[s]
	return ok
}

// Display returns the human readable label for the status.
func (s ApplicationStatus) Display() string {
	if label, ok := statusDisplay[s]; ok {
		return label
	}
	return string(s)
}

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"index;not null" json:"-"`

	JobTitle string `gorm:"size:255;not null" json:"job_title"`

	CompanyID uint    `gorm:"not null" json:"company_id"`
	Company   Company `json:"company"`

	// Contact person for this application, optional.
	ContactID *uint    `json:"contact_id"`
	Contact   *Contact `json:"contact"`

	Status ApplicationStatus `gorm:"size:20;default:'DRAFT'" json:"status"`

	AppliedOn   *types.Date `gorm:"type:date" json:"applied_on"`
	InterviewOn *types.Date `gorm:"type:date" json:"interview_on"`
	OfferOn     *types.Date `gorm:"type:date" json:"offer_on"`
	RejectedOn  *types.Date `gorm:"type:date" json:"rejected_on"`
	FollowUpOn  *types.Date `gorm:"type:date" json:"follow_up_on"`

	JobPostingLink    string `gorm:"size:500" json:"job_posting_link"`
	SalaryExpectation *uint  `json:"salary_expectation"`

	Notes []Note `json:"notes,omitempty"`
}

type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ApplicationID uint   `gorm:"index;not null" json:"application_id"`
	Text          string `gorm:"type:text" json:"text"`
}

// All lists every model for AutoMigrate, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{}, &AuthToken{}, &Company{}, &Contact{}, &Application{}, &Note{},
	}
}
