package entity

import "time"

// Roles de usuario dentro de una organización.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User usuario de la aplicación, siempre miembro de una organización.
type User struct {
	ID           string
	OrgID        string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // "active" | "inactive"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Organization tenant: todos los recursos de inventario cuelgan de una organización.
type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
