package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mayorista-api/internal/application/dto"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ExpenseUseCase registro y consulta de gastos operativos.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

// Create registra un gasto.
func (uc *ExpenseUseCase) Create(ctx context.Context, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if in.Description == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	exp := &entity.Expense{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        date,
		PerformedBy: userID,
		CreatedAt:   now,
	}
	if err := uc.repo.Create(exp); err != nil {
		return nil, err
	}
	return toExpenseResponse(exp), nil
}

// List lista gastos con rango de fechas opcional.
func (uc *ExpenseUseCase) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*dto.ExpenseResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

// Delete elimina un gasto (los gastos no tienen enlaces al ledger).
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	exp, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if exp == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// CreateCategory crea una categoría de gasto.
func (uc *ExpenseUseCase) CreateCategory(ctx context.Context, name string) (*dto.ExpenseCategoryResponse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	cat := &entity.ExpenseCategory{ID: uuid.New().String(), Name: name, CreatedAt: time.Now()}
	if err := uc.repo.CreateCategory(cat); err != nil {
		return nil, err
	}
	return &dto.ExpenseCategoryResponse{ID: cat.ID, Name: cat.Name}, nil
}

// ListCategories lista las categorías de gasto.
func (uc *ExpenseUseCase) ListCategories(ctx context.Context) ([]*dto.ExpenseCategoryResponse, error) {
	list, err := uc.repo.ListCategories()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseCategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, &dto.ExpenseCategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		PerformedBy: e.PerformedBy,
	}
}
