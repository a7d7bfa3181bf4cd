package model

import "time"

// Role restricts access to administrative endpoints.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User represents a registered customer or administrator.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID int64
	Role   Role
}

// Admin reports whether the principal may use administrative endpoints.
func (p Principal) Admin() bool {
	return p.Role == RoleAdmin
}
