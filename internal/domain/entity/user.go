package entity

import "time"

// User roles.
const (
	RoleAdmin      = "admin"
	RolePharmacist = "pharmacist"
)

// User is an application account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
