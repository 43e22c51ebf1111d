package domain

import "time"

// ClientProfile is the role-specific profile owned 1:1 by a CLIENT account.
type ClientProfile struct {
	AccountID   string    `json:"account_id"`
	CompanyName string    `json:"company_name"`
	Industry    string    `json:"industry"`
	Description string    `json:"description"`
	Website     string    `json:"website,omitempty"`
	CompanySize string    `json:"company_size,omitempty"`
	Location    string    `json:"location,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Complete reports whether the profile has passed through the setup flow.
// Registration may seed a record with only a company name; that does not count.
func (p *ClientProfile) Complete() bool {
	return p != nil && p.CompanyName != "" && p.Industry != "" && p.Description != ""
}

// ExpertProfile is the role-specific profile owned 1:1 by an EXPERT account.
type ExpertProfile struct {
	AccountID       string    `json:"account_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Bio             string    `json:"bio"`
	Expertise       string    `json:"expertise,omitempty"`
	YearsExperience int       `json:"years_experience,omitempty"`
	HourlyRate      float64   `json:"hourly_rate,omitempty"`
	Location        string    `json:"location,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Website         string    `json:"website,omitempty"`
	LinkedIn        string    `json:"linkedin,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Complete reports whether the profile has passed through the setup flow.
func (p *ExpertProfile) Complete() bool {
	return p != nil && p.FirstName != "" && p.LastName != "" && p.Bio != ""
}
