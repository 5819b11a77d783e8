package models

// UserDetails is the canonical view of a Docebo user. The raw API returns the
// same value under many alternate field names depending on endpoint and
// environment; docebo.NormalizeUser coalesces them into this shape.
type UserDetails struct {
	UserID       int    `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullname"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Status       string `json:"status,omitempty"`
	Level        string `json:"level,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
	LastAccess   string `json:"last_access_date,omitempty"`
}

// DisplayName prefers the full name and falls back to username, then email.
func (u *UserDetails) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
