package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// StockLedger es el único dueño de la cantidad disponible de cada libro.
// Los métodos *InTx usan los repositorios del caller (misma transacción) y
// bloquean la fila del libro (SELECT FOR UPDATE) antes de mutar, de modo que
// dos comandos concurrentes sobre el mismo libro se serialicen. Cada mutación
// deja un registro en stock_movements dentro de la misma transacción.
type StockLedger struct {
	txRunner TxRunner
}

// NewStockLedger construye el libro mayor de stock.
func NewStockLedger(txRunner TxRunner) *StockLedger {
	return &StockLedger{txRunner: txRunner}
}

// ReserveInTx reserva qty unidades de un libro para una factura.
// Falla con InsufficientStockError si la cantidad disponible no alcanza.
func (l *StockLedger) ReserveInTx(
	bookRepo repository.BookRepository,
	movementRepo repository.StockMovementRepository,
	bookID, invoiceID string,
	qty int64,
	now time.Time,
) error {
	book, err := bookRepo.GetForUpdate(bookID)
	if err != nil {
		return err
	}
	if book == nil {
		return &domain.NotFoundError{Entity: "libro", ID: bookID}
	}
	if book.Quantity < qty {
		return &domain.InsufficientStockError{BookID: bookID, Available: book.Quantity, Requested: qty}
	}
	if err := bookRepo.UpdateQuantity(bookID, book.Quantity-qty); err != nil {
		return err
	}
	return movementRepo.Create(&entity.StockMovement{
		ID:        uuid.New().String(),
		BookID:    bookID,
		InvoiceID: invoiceID,
		Type:      entity.MovementTypeReserve,
		Quantity:  -qty,
		Date:      now,
		CreatedAt: now,
	})
}

// ReleaseInTx devuelve qty unidades al stock del libro. Siempre tiene éxito:
// no se guarda un techo de stock, la cantidad liberada simplemente se suma.
func (l *StockLedger) ReleaseInTx(
	bookRepo repository.BookRepository,
	movementRepo repository.StockMovementRepository,
	bookID, invoiceID string,
	qty int64,
	now time.Time,
) error {
	book, err := bookRepo.GetForUpdate(bookID)
	if err != nil {
		return err
	}
	if book == nil {
		return &domain.NotFoundError{Entity: "libro", ID: bookID}
	}
	if err := bookRepo.UpdateQuantity(bookID, book.Quantity+qty); err != nil {
		return err
	}
	return movementRepo.Create(&entity.StockMovement{
		ID:        uuid.New().String(),
		BookID:    bookID,
		InvoiceID: invoiceID,
		Type:      entity.MovementTypeRelease,
		Quantity:  qty,
		Date:      now,
		CreatedAt: now,
	})
}

// AdjustInTx aplica un cambio neto por edición de línea: delta negativo reserva
// más stock (falla con InsufficientStockError si no hay), delta positivo libera.
// Con delta cero no hace nada.
func (l *StockLedger) AdjustInTx(
	bookRepo repository.BookRepository,
	movementRepo repository.StockMovementRepository,
	bookID, invoiceID string,
	delta int64,
	now time.Time,
) error {
	if delta == 0 {
		return nil
	}
	book, err := bookRepo.GetForUpdate(bookID)
	if err != nil {
		return err
	}
	if book == nil {
		return &domain.NotFoundError{Entity: "libro", ID: bookID}
	}
	if delta < 0 && book.Quantity < -delta {
		return &domain.InsufficientStockError{BookID: bookID, Available: book.Quantity, Requested: -delta}
	}
	if err := bookRepo.UpdateQuantity(bookID, book.Quantity+delta); err != nil {
		return err
	}
	return movementRepo.Create(&entity.StockMovement{
		ID:        uuid.New().String(),
		BookID:    bookID,
		InvoiceID: invoiceID,
		Type:      entity.MovementTypeAdjust,
		Quantity:  delta,
		Date:      now,
		CreatedAt: now,
	})
}

// AdjustCatalog aplica una corrección manual de stock fuera de facturación
// (recuento de inventario). Ejecuta su propia transacción.
func (l *StockLedger) AdjustCatalog(ctx context.Context, bookID string, delta int64) error {
	if delta == 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return l.txRunner.Run(ctx, func(
		bookRepo repository.BookRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		return l.AdjustInTx(bookRepo, movementRepo, bookID, "", delta, now)
	})
}
