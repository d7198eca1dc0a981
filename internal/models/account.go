package models

import "time"

// Role controls what an account may do. Only admins add books.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// ParseRole maps user input to a Role. An empty string means RoleUser.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "", RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Account represents a login account.
type Account struct {
	Username     string    `json:"username" db:"username"`     // Unique username
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash
	Role         Role      `json:"role" db:"role"`             // Admin or User
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Registration time
}
