package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos que
// necesita un comando de facturación. Cada comando es exactamente una llamada:
// o se aplica completo (stock, líneas, totales, estado) o no se aplica nada.
type TxRunner interface {
	RunInvoice(ctx context.Context, fn func(
		bookRepo repository.BookRepository,
		movementRepo repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		sequenceRepo repository.InvoiceSequenceRepository,
	) error) error
}

// StockLedger puerto hacia el libro mayor de stock. Los métodos usan los
// repositorios del caller (misma transacción); si retornan error (ej:
// InsufficientStockError) el caller hace rollback.
type StockLedger interface {
	ReserveInTx(
		bookRepo repository.BookRepository,
		movementRepo repository.StockMovementRepository,
		bookID, invoiceID string,
		qty int64,
		now time.Time,
	) error
	ReleaseInTx(
		bookRepo repository.BookRepository,
		movementRepo repository.StockMovementRepository,
		bookID, invoiceID string,
		qty int64,
		now time.Time,
	) error
	AdjustInTx(
		bookRepo repository.BookRepository,
		movementRepo repository.StockMovementRepository,
		bookID, invoiceID string,
		delta int64,
		now time.Time,
	) error
}
