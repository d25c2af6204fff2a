package domain

import (
	"time"
)

// User represents a registered account in the system.
type User struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Surname            string     `json:"surname"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	Role               string     `json:"role"`
	Status             string     `json:"status"`
	ProfileImage       string     `json:"profile_image,omitempty"`
	RefreshTokenHash   string     `json:"-"`
	ResetCode          string     `json:"-"`
	ResetCodeExpiresAt *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// IsAdmin reports whether the user has the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TokenPair holds an access and refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
