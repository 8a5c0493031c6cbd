package entity

import "time"

// MovementType tipo de movimiento de stock (conjunto cerrado).
type MovementType string

// Tipos de movimiento de stock.
const (
	MovementTypeReserve MovementType = "RESERVE" // reserva por línea de factura (cantidad negativa)
	MovementTypeRelease MovementType = "RELEASE" // liberación por anulación o borrado (cantidad positiva)
	MovementTypeAdjust  MovementType = "ADJUST"  // ajuste por edición de línea o corrección de catálogo
)

// StockMovement registro de auditoría de cada mutación de stock de un libro.
// Se escribe en la misma transacción que el cambio de cantidad; InvoiceID
// referencia la factura que originó el movimiento (vacío en ajustes de catálogo).
type StockMovement struct {
	ID        string
	BookID    string
	InvoiceID string
	Type      MovementType
	Quantity  int64 // negativo = stock retirado, positivo = stock devuelto
	Date      time.Time
	CreatedAt time.Time
}
