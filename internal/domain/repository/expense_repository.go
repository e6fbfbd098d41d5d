package repository

import (
	"time"

	"github.com/jhoicas/mayorista-api/internal/domain/entity"
)

// ExpenseRepository puerto para gastos operativos y sus categorías.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Expense, error)
	Delete(id string) error
	CreateCategory(category *entity.ExpenseCategory) error
	ListCategories() ([]*entity.ExpenseCategory, error)
}
