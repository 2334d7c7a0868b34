package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User usuario de la aplicación. Referenciado opacamente por StockMovement.CreatedBy.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, operator
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
