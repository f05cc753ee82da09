package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Identity tables
// ============================================================

// User represents the users table. Lawyers are users with role "lawyer"
// and an attached LawyerProfile row.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;not null;default:'client'" json:"role"`
	Age       *int           `json:"age,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	LawyerProfile *LawyerProfile `gorm:"foreignKey:UserID" json:"lawyer_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID            uint                   `json:"id"`
	Name          string                 `json:"name"`
	Email         string                 `json:"email"`
	Role          string                 `json:"role"`
	Age           *int                   `json:"age,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	LawyerProfile *LawyerProfileResponse `json:"lawyer_profile,omitempty"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
	if u.LawyerProfile != nil {
		resp.LawyerProfile = u.LawyerProfile.ToResponse()
	}
	return resp
}

// LawyerProfile represents the lawyer_profiles table (1:1 with users)
type LawyerProfile struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Specialization  string    `gorm:"size:50;not null;index" json:"specialization"`
	ExperienceYears int       `gorm:"not null" json:"experience_years"`
	Rating          float64   `gorm:"type:decimal(3,2);default:0" json:"rating"`
	ReviewCount     int       `gorm:"default:0" json:"review_count"`
	ProBono         bool      `gorm:"default:true" json:"pro_bono"`
	Availability    bool      `gorm:"default:true" json:"availability"`
	City            string    `gorm:"size:100;index" json:"city"`
	State           string    `gorm:"size:100;index" json:"state"`
	Country         string    `gorm:"size:100;index" json:"country"`
	Bio             string    `gorm:"type:text" json:"bio"`
	Language        string    `gorm:"size:50;default:'English'" json:"language"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (LawyerProfile) TableName() string {
	return "lawyer_profiles"
}

// LawyerProfileResponse DTO
type LawyerProfileResponse struct {
	ID              uint    `json:"id"`
	UserID          uint    `json:"user_id"`
	Name            string  `json:"name,omitempty"`
	Specialization  string  `json:"specialization"`
	ExperienceYears int     `json:"experience_years"`
	Rating          float64 `json:"rating"`
	ReviewCount     int     `json:"review_count"`
	ProBono         bool    `json:"pro_bono"`
	Availability    bool    `json:"availability"`
	City            string  `json:"city"`
	State           string  `json:"state"`
	Country         string  `json:"country"`
	Bio             string  `json:"bio"`
	Language        string  `json:"language"`
}

func (p *LawyerProfile) ToResponse() *LawyerProfileResponse {
	resp := &LawyerProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Specialization:  p.Specialization,
		ExperienceYears: p.ExperienceYears,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		ProBono:         p.ProBono,
		Availability:    p.Availability,
		City:            p.City,
		State:           p.State,
		Country:         p.Country,
		Bio:             p.Bio,
		Language:        p.Language,
	}
	if p.User != nil {
		resp.Name = p.User.Name
	}
	return resp
}

// ============================================================
// Session revocation
// ============================================================

// RevokedToken represents the revoked_tokens table. ExpiresAt mirrors the
// token's own expiry; entries past it are dead and swept periodically.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;size:512;not null" json:"-"`
	JTI       string    `gorm:"size:36;index" json:"jti"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	RevokedAt time.Time `gorm:"autoCreateTime" json:"revoked_at"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}

func (t *RevokedToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// ============================================================
// Case tables
// ============================================================

// Case represents the cases table
type Case struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClientID    uint      `gorm:"not null;index" json:"client_id"`
	LawyerID    *uint     `gorm:"index" json:"lawyer_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"size:50;not null;index" json:"category"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Budget      float64   `gorm:"type:decimal(15,2);default:0" json:"budget"`
	Status      string    `gorm:"size:20;not null;default:'open';index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client    *User          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Lawyer    *User          `gorm:"foreignKey:LawyerID" json:"lawyer,omitempty"`
	Documents []CaseDocument `gorm:"foreignKey:CaseID" json:"documents,omitempty"`
}

func (Case) TableName() string {
	return "cases"
}

// CaseDocument represents a document attached to a case
type CaseDocument struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CaseID    uint      `gorm:"not null;index" json:"case_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	URL       string    `gorm:"size:500;not null" json:"url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CaseDocument) TableName() string {
	return "case_documents"
}

// CaseResponse DTO
type CaseResponse struct {
	ID          uint           `json:"id"`
	ClientID    uint           `json:"client_id"`
	ClientName  string         `json:"client_name,omitempty"`
	LawyerID    *uint          `json:"lawyer_id"`
	LawyerName  string         `json:"lawyer_name,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Type        string         `json:"type"`
	Budget      float64        `json:"budget"`
	Status      string         `json:"status"`
	Documents   []CaseDocument `json:"documents,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (cs *Case) ToResponse() *CaseResponse {
	resp := &CaseResponse{
		ID:          cs.ID,
		ClientID:    cs.ClientID,
		LawyerID:    cs.LawyerID,
		Title:       cs.Title,
		Description: cs.Description,
		Category:    cs.Category,
		Type:        cs.Type,
		Budget:      cs.Budget,
		Status:      cs.Status,
		Documents:   cs.Documents,
		CreatedAt:   cs.CreatedAt,
		UpdatedAt:   cs.UpdatedAt,
	}
	if cs.Client != nil {
		resp.ClientName = cs.Client.Name
	}
	if cs.Lawyer != nil {
		resp.LawyerName = cs.Lawyer.Name
	}
	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&LawyerProfile{},
		&RevokedToken{},
		&Case{},
		&CaseDocument{},
	)
}
