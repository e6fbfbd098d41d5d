package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mayorista-api/internal/domain/entity"
)

// El estado es función pura de (total, pagado); la tabla cubre los tres
// estados y los bordes de redondeo.
func TestDeriveInvoiceStatus(t *testing.T) {
	dec := decimal.RequireFromString
	cases := []struct {
		nombre string
		total  string
		pagado string
		want   string
	}{
		{"sin pagos", "500", "0", entity.InvoiceStatusUNPAID},
		{"pago parcial", "500", "200", entity.InvoiceStatusPARTIAL},
		{"pago exacto", "500", "500", entity.InvoiceStatusPAID},
		{"centavo pendiente", "500.00", "499.99", entity.InvoiceStatusPARTIAL},
		{"total cero", "0", "0", entity.InvoiceStatusPAID},
		{"pagado por encima del total", "500", "500.01", entity.InvoiceStatusPAID},
	}
	for _, c := range cases {
		t.Run(c.nombre, func(t *testing.T) {
			got := entity.DeriveInvoiceStatus(dec(c.total), dec(c.pagado))
			assert.Equal(t, c.want, got,
				"total=%s pagado=%s debe dar %s", c.total, c.pagado, c.want)
		})
	}
}

func TestInvoiceOpen(t *testing.T) {
	assert.True(t, (&entity.Invoice{Status: entity.InvoiceStatusUNPAID}).Open())
	assert.True(t, (&entity.Invoice{Status: entity.InvoiceStatusPARTIAL}).Open())
	assert.False(t, (&entity.Invoice{Status: entity.InvoiceStatusPAID}).Open(),
		"PAID es terminal: no admite más pagos")
}
