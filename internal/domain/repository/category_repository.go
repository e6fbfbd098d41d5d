package repository

import "github.com/jhoicas/mayorista-api/internal/domain/entity"

// CategoryRepository puerto para la taxonomía de artículos.
// Delete retorna ErrConflict si la categoría tiene artículos asociados (FK RESTRICT).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}
