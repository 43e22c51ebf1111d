package handler

type clientProfileRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	Industry    string `json:"industry"     validate:"required"`
	Description string `json:"description"  validate:"required"`
	Website     string `json:"website,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
	Location    string `json:"location,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type expertProfileRequest struct {
	FirstName       string  `json:"first_name" validate:"required"`
	LastName        string  `json:"last_name"  validate:"required"`
	Bio             string  `json:"bio"        validate:"required"`
	Expertise       string  `json:"expertise,omitempty"`
	YearsExperience int     `json:"years_experience,omitempty" validate:"omitempty,gte=0"`
	HourlyRate      float64 `json:"hourly_rate,omitempty"      validate:"omitempty,gte=0"`
	Location        string  `json:"location,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	Website         string  `json:"website,omitempty"`
	LinkedIn        string  `json:"linkedin,omitempty"`
}

// profileResponse wraps a persisted profile together with the refreshed
// session token minted after a successful upsert.
type profileResponse struct {
	Profile any    `json:"profile"`
	Token   string `json:"token,omitempty"`
}
