package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mayorista-api/internal/application/dto"
	"github.com/jhoicas/mayorista-api/internal/application/stock"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
)

// CatalogUseCase CRUD de categorías y artículos de inventario.
// La creación de un artículo con cantidad inicial registra el movimiento IN
// correspondiente (toda cantidad tiene su rastro).
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.StockItemRepository
	adjustUC     *stock.AdjustQuantityUseCase
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	categoryRepo repository.CategoryRepository,
	itemRepo repository.StockItemRepository,
	adjustUC *stock.AdjustQuantityUseCase,
) *CatalogUseCase {
	return &CatalogUseCase{categoryRepo: categoryRepo, itemRepo: itemRepo, adjustUC: adjustUC}
}

// ── Categorías ────────────────────────────────────────────────────────────────

// CreateCategory crea una categoría de artículos.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	cat := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(cat); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: cat.ID, Name: cat.Name, Description: cat.Description}, nil
}

// ListCategories lista todas las categorías.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return out, nil
}

// DeleteCategory elimina una categoría sin artículos; con artículos retorna
// ErrConflict (FK RESTRICT).
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	cat, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(id)
}

// ── Artículos ─────────────────────────────────────────────────────────────────

// CreateStockItem registra un artículo. Si trae cantidad inicial, el alta de
// inventario queda auditada con un movimiento IN.
func (uc *CatalogUseCase) CreateStockItem(ctx context.Context, userID string, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	if in.SKU == "" || in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.itemRepo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.StockItem{
		ID:             uuid.New().String(),
		CategoryID:     in.CategoryID,
		SKU:            in.SKU,
		Barcode:        in.Barcode,
		Name:           in.Name,
		Description:    in.Description,
		PurchasePrice:  in.PurchasePrice,
		WholesalePrice: in.WholesalePrice,
		RetailPrice:    in.RetailPrice,
		MinStockLevel:  in.MinStockLevel,
		Unit:           in.Unit,
		ItemsInPack:    in.ItemsInPack,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	if in.InitialQuantity.IsPositive() {
		if _, err := uc.adjustUC.AdjustQuantity(ctx, stock.MovementInput{
			StockItemID: item.ID,
			Type:        entity.MovementTypeIN,
			Quantity:    in.InitialQuantity,
			Reason:      "Inventario inicial",
			PerformedBy: userID,
		}); err != nil {
			return nil, err
		}
		item.CurrentQuantity = in.InitialQuantity
	}
	return toStockItemResponse(item), nil
}

// GetStockItem obtiene un artículo activo.
func (uc *CatalogUseCase) GetStockItem(ctx context.Context, id string) (*dto.StockItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Active() {
		return nil, domain.ErrNotFound
	}
	return toStockItemResponse(item), nil
}

// ListStockItems lista artículos activos con paginación.
func (uc *CatalogUseCase) ListStockItems(ctx context.Context, limit, offset int) ([]*dto.StockItemResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.itemRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockItemResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toStockItemResponse(item))
	}
	return out, nil
}

// UpdateStockItem edita el artículo. La cantidad no es editable por aquí:
// toda mutación de cantidad pasa por AdjustQuantity.
func (uc *CatalogUseCase) UpdateStockItem(ctx context.Context, id string, in dto.UpdateStockItemRequest) (*dto.StockItemResponse, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Active() {
		return nil, domain.ErrNotFound
	}
	item.CategoryID = in.CategoryID
	item.Name = in.Name
	item.Description = in.Description
	item.Barcode = in.Barcode
	item.PurchasePrice = in.PurchasePrice
	item.WholesalePrice = in.WholesalePrice
	item.RetailPrice = in.RetailPrice
	item.MinStockLevel = in.MinStockLevel
	item.Unit = in.Unit
	item.ItemsInPack = in.ItemsInPack
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toStockItemResponse(item), nil
}

// DeleteStockItem borra lógicamente el artículo; facturas y movimientos
// conservan la referencia.
func (uc *CatalogUseCase) DeleteStockItem(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil || !item.Active() {
		return domain.ErrNotFound
	}
	return uc.itemRepo.SoftDelete(id, time.Now())
}

func toStockItemResponse(item *entity.StockItem) *dto.StockItemResponse {
	return &dto.StockItemResponse{
		ID:              item.ID,
		CategoryID:      item.CategoryID,
		SKU:             item.SKU,
		Barcode:         item.Barcode,
		Name:            item.Name,
		Description:     item.Description,
		PurchasePrice:   item.PurchasePrice,
		WholesalePrice:  item.WholesalePrice,
		RetailPrice:     item.RetailPrice,
		CurrentQuantity: item.CurrentQuantity,
		MinStockLevel:   item.MinStockLevel,
		Unit:            item.Unit,
		ItemsInPack:     item.ItemsInPack,
	}
}
