package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository (usable con pool o tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, category_id, description, amount, date, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, nullIfEmpty(expense.CategoryID), expense.Description, expense.Amount,
		expense.Date, nullIfEmpty(expense.PerformedBy), expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	query := `
		SELECT id, category_id, description, amount, date, performed_by, created_at
		FROM expenses WHERE id = $1`
	var e entity.Expense
	var categoryID, performedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &categoryID, &e.Description, &e.Amount, &e.Date, &performedBy, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	e.CategoryID = derefStr(categoryID)
	e.PerformedBy = derefStr(performedBy)
	return &e, nil
}

// List lista gastos con rango de fechas opcional, más recientes primero.
func (r *ExpenseRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Expense, error) {
	query := `
		SELECT id, category_id, description, amount, date, performed_by, created_at
		FROM expenses
		WHERE ($1::timestamptz IS NULL OR date >= $1)
		  AND ($2::timestamptz IS NULL OR date <= $2)
		ORDER BY date DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		var categoryID, performedBy *string
		if err := rows.Scan(&e.ID, &categoryID, &e.Description, &e.Amount, &e.Date,
			&performedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.CategoryID = derefStr(categoryID)
		e.PerformedBy = derefStr(performedBy)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Delete elimina un gasto por ID.
func (r *ExpenseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// CreateCategory persiste una categoría de gasto.
func (r *ExpenseRepo) CreateCategory(category *entity.ExpenseCategory) error {
	query := `INSERT INTO expense_categories (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, category.ID, category.Name, category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expense category: %w", err)
	}
	return nil
}

// ListCategories lista las categorías de gasto.
func (r *ExpenseRepo) ListCategories() ([]*entity.ExpenseCategory, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, created_at FROM expense_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list expense categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExpenseCategory
	for rows.Next() {
		var c entity.ExpenseCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
