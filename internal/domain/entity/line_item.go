package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Libreria-api/internal/domain"
)

// LineItem representa una línea de factura: cantidad de un libro a un precio
// unitario, con descuento opcional. Amount es derivado (ver ComputeLineAmount).
// Position fija el orden de presentación dentro de la factura: crece con cada
// línea añadida y no se reutiliza al eliminar.
type LineItem struct {
	ID        string
	InvoiceID string
	BookID    string
	Position  int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  *decimal.Decimal // descuento de línea (%), nil = sin descuento
	Amount    decimal.Decimal  // importe de la línea, redondeado a 2 decimales
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComputeLineAmount calcula el importe de una línea: cantidad × precio,
// menos el descuento porcentual si existe, redondeado half-up a 2 decimales.
// Valida cantidad > 0 y precio >= 0 antes de calcular.
func ComputeLineAmount(quantity int64, unitPrice decimal.Decimal, discount *decimal.Decimal) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	if unitPrice.LessThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidPrice
	}
	amount := decimal.NewFromInt(quantity).Mul(unitPrice)
	if discount != nil {
		factor := decimal.NewFromInt(1).Sub(discount.Div(decimal.NewFromInt(100)))
		amount = amount.Mul(factor)
	}
	return amount.Round(2), nil
}

// Recompute recalcula Amount a partir de los campos actuales de la línea.
func (l *LineItem) Recompute() error {
	amount, err := ComputeLineAmount(l.Quantity, l.UnitPrice, l.Discount)
	if err != nil {
		return err
	}
	l.Amount = amount
	return nil
}
