package reports

import (
	"context"
	"time"

	"github.com/jhoicas/mayorista-api/internal/application/dto"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ReportsUseCase agrega los bloques del tablero. Los reportes son advisory:
// si un bloque falla se loguea y se degrada a ceros, el tablero nunca cae
// completo por una consulta.
type ReportsUseCase struct {
	repo   repository.ReportsRepository
	logger zerolog.Logger
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(repo repository.ReportsRepository, logger zerolog.Logger) *ReportsUseCase {
	return &ReportsUseCase{repo: repo, logger: logger}
}

// Dashboard arma el resumen: valoración de inventario, cartera y gastos del
// mes en curso.
func (uc *ReportsUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	out := &dto.DashboardResponse{
		StockTotalQuantity: decimal.Zero,
		StockTotalValue:    decimal.Zero,
		TotalReceivables:   decimal.Zero,
		ExpensesThisMonth:  decimal.Zero,
	}

	if sv, err := uc.repo.StockValuation(); err != nil {
		uc.logger.Warn().Err(err).Msg("dashboard: valoración de inventario falló, se degrada a ceros")
	} else if sv != nil {
		out.StockItemCount = sv.ItemCount
		out.StockTotalQuantity = sv.TotalQuantity
		out.StockTotalValue = sv.TotalValue
	}

	if rc, err := uc.repo.Receivables(); err != nil {
		uc.logger.Warn().Err(err).Msg("dashboard: resumen de cartera falló, se degrada a ceros")
	} else if rc != nil {
		out.ClientsWithDebt = rc.ClientCount
		out.TotalReceivables = rc.TotalBalance
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if total, err := uc.repo.ExpensesTotal(monthStart, now); err != nil {
		uc.logger.Warn().Err(err).Msg("dashboard: total de gastos falló, se degrada a cero")
	} else {
		out.ExpensesThisMonth = total
	}

	return out, nil
}
