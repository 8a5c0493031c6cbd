package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBookRequest entrada para dar de alta un libro en el catálogo.
type CreateBookRequest struct {
	Title     string          `json:"title" validate:"required,min=1,max=255"`
	ListPrice decimal.Decimal `json:"list_price"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Quantity  int64           `json:"quantity"`
}

// UpdateBookRequest entrada para actualizar datos de catálogo (no la cantidad:
// el stock se corrige con un movimiento de ajuste).
type UpdateBookRequest struct {
	Title     *string          `json:"title" validate:"omitempty,min=1,max=255"`
	ListPrice *decimal.Decimal `json:"list_price"`
	Price     *decimal.Decimal `json:"price"`
	Discount  *decimal.Decimal `json:"discount"`
}

// AdjustStockRequest corrección manual de stock (recuento de inventario).
type AdjustStockRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

// BookResponse salida de un libro.
type BookResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	ListPrice decimal.Decimal `json:"list_price"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Quantity  int64           `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
