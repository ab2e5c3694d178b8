package models

import "time"

// AdminRole represents the available back-office roles.
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "SUPER_ADMIN"
	RoleAdmin      AdminRole = "ADMIN"
	RoleEditor     AdminRole = "EDITOR"
)

// Admin represents a back-office user stored in the admins table.
type Admin struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         AdminRole  `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
