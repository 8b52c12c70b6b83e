package repository

import "github.com/pharmaplus/pharmacy-pos/internal/domain/entity"

// UserRepository is the persistence port for application accounts.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
