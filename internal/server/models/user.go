package models

import "time"

// User is an editor account with access to the admin console.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	DisplayName  string
	Role         string
	CreatedAt    time.Time
}

// Profile is the public projection of a User returned to clients.
// It is the single session representation: the login response and the
// profile endpoint both produce it, and role checks read from it.
type Profile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Profile returns the client-visible projection of u.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
	}
}
