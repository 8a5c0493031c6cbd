package inventory

import (
	"context"

	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		bookRepo repository.BookRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
