package entities

import "time"

// User represents a user entity in the database
type User struct {
	ID                string     `json:"id"` // UUID
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"` // Don't expose password hash in JSON
	Role              string     `json:"role"`
	EmailVerified     *time.Time `json:"email_verified,omitempty"` // nil until verified
	VerificationToken *string    `json:"-"`
	ResetToken        *string    `json:"-"`
	ResetExpires      *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// IsVerified reports whether the user has completed email verification
func (u *User) IsVerified() bool {
	return u.EmailVerified != nil
}
