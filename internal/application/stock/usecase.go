package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
	domstock "github.com/jhoicas/mayorista-api/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// AdjustQuantityUseCase registra movimientos de stock de forma transaccional
// (IN, OUT, ADJUSTMENT) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type AdjustQuantityUseCase struct {
	txRunner TxRunner
	itemRepo repository.StockItemRepository
	movRepo  repository.StockMovementRepository
}

// NewAdjustQuantityUseCase construye el caso de uso.
func NewAdjustQuantityUseCase(txRunner TxRunner, itemRepo repository.StockItemRepository, movRepo repository.StockMovementRepository) *AdjustQuantityUseCase {
	return &AdjustQuantityUseCase{txRunner: txRunner, itemRepo: itemRepo, movRepo: movRepo}
}

// MovementInput entrada para registrar un movimiento de stock.
// IN suma Quantity; OUT resta Quantity y falla con ErrInsufficientStock si el
// resultado quedaría negativo; ADJUSTMENT fija la cantidad absoluta en Quantity.
// UnitCost opcional en IN: recalcula el precio de compra promedio ponderado.
type MovementInput struct {
	StockItemID string
	Type        string
	Quantity    decimal.Decimal
	Reason      string
	Reference   string
	PerformedBy string
	UnitCost    *decimal.Decimal
}

// AdjustQuantity valida la entrada, inicia una transacción, bloquea la fila del
// artículo, aplica la lógica según tipo y registra el movimiento. Commit si todo
// ok, Rollback si algo falla: nunca queda cantidad mutada sin movimiento ni al revés.
func (uc *AdjustQuantityUseCase) AdjustQuantity(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		if input.Quantity.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	if input.StockItemID == "" || input.Reason == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var err error
		mov, err = uc.applyInTx(itemRepo, movRepo, input, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// applyInTx aplica el movimiento usando repositorios ya atados a una transacción.
func (uc *AdjustQuantityUseCase) applyInTx(
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	// Bloquea la fila del artículo para evitar lecturas obsoletas de cantidad
	item, err := itemRepo.GetForUpdate(input.StockItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Active() {
		return nil, domain.ErrNotFound
	}

	var newQty decimal.Decimal
	switch input.Type {
	case entity.MovementTypeIN:
		newQty = item.CurrentQuantity.Add(input.Quantity)
		if input.UnitCost != nil && !input.UnitCost.LessThan(decimal.Zero) {
			newPrice := domstock.AveragePurchasePrice(item.CurrentQuantity, item.PurchasePrice, input.Quantity, *input.UnitCost)
			if err := itemRepo.UpdatePurchasePrice(item.ID, newPrice, now); err != nil {
				return nil, err
			}
		}
	case entity.MovementTypeOUT:
		if item.CurrentQuantity.LessThan(input.Quantity) {
			return nil, domain.ErrInsufficientStock
		}
		newQty = item.CurrentQuantity.Sub(input.Quantity)
	case entity.MovementTypeADJUSTMENT:
		// Ajuste absoluto: la cantidad queda exactamente en input.Quantity
		newQty = input.Quantity
	}

	if err := itemRepo.UpdateQuantity(item.ID, newQty, now); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		StockItemID: item.ID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Reason:      input.Reason,
		Reference:   input.Reference,
		PerformedBy: input.PerformedBy,
		CreatedAt:   now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterOUTInTx ejecuta una salida usando los repositorios del caller (misma
// transacción). Lo usa la facturación para descontar stock por cada línea:
// si falla por stock insuficiente, el rollback del caller deshace la factura completa.
func (uc *AdjustQuantityUseCase) RegisterOUTInTx(
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
	stockItemID string,
	quantity decimal.Decimal,
	invoiceNumber, invoiceID, performedBy string,
	now time.Time,
) error {
	_, err := uc.applyInTx(itemRepo, movRepo, MovementInput{
		StockItemID: stockItemID,
		Type:        entity.MovementTypeOUT,
		Quantity:    quantity,
		Reason:      fmt.Sprintf("Venta factura #%s", invoiceNumber),
		Reference:   invoiceID,
		PerformedBy: performedBy,
	}, now)
	return err
}

// LowStockAlerts devuelve los artículos activos con cantidad en o bajo el umbral,
// cada uno con su déficit crudo (min_stock_level - current_quantity).
func (uc *AdjustQuantityUseCase) LowStockAlerts(ctx context.Context) ([]*entity.LowStockAlert, error) {
	items, err := uc.itemRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	alerts := make([]*entity.LowStockAlert, 0, len(items))
	for _, item := range items {
		alerts = append(alerts, &entity.LowStockAlert{
			Item:    item,
			Deficit: item.MinStockLevel.Sub(item.CurrentQuantity),
		})
	}
	return alerts, nil
}

// Movements lista el historial de movimientos de un artículo.
func (uc *AdjustQuantityUseCase) Movements(ctx context.Context, stockItemID string, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movRepo.ListByItem(stockItemID, limit, offset)
}
