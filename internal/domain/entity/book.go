package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book representa un libro del catálogo de la librería.
// Quantity es el stock disponible; solo lo muta el libro mayor de stock
// (reservas y liberaciones de facturas), nunca el código de facturación directamente.
type Book struct {
	ID        string
	Title     string
	ListPrice decimal.Decimal // PVP de catálogo (con IVA incluido)
	Price     decimal.Decimal // precio unitario neto usado en las líneas
	Discount  decimal.Decimal // descuento por defecto para líneas nuevas (%)
	Quantity  int64           // stock disponible, nunca negativo
	CreatedAt time.Time
	UpdatedAt time.Time
}
