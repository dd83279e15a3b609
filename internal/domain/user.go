package domain

import "time"

// Role determines access to admin operations
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	return r == RoleClient || r == RoleAdmin
}

// User represents a coworking member or administrator
type User struct {
	ID           UserID
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin returns true if the user can manage rooms, users and bookings
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
