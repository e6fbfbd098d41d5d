package repository

import "github.com/jhoicas/mayorista-api/internal/domain/entity"

// UserRepository puerto de persistencia de usuarios (auth).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
