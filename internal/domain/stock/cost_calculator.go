package stock

import "github.com/shopspring/decimal"

// AveragePurchasePrice implementa la lógica de costo promedio ponderado para
// entradas de mercancía con costo unitario (servicio de dominio).
// NuevoPrecio = ((StockActual * PrecioActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func AveragePurchasePrice(stockActual, precioActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(precioActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}
