package repository

import "github.com/jhoicas/Libreria-api/internal/domain/entity"

// StockMovementRepository define el puerto para el registro de auditoría de stock.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByInvoice(invoiceID string) ([]*entity.StockMovement, error)
}
