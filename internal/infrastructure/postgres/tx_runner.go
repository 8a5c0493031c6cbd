package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Libreria-api/internal/application/billing"
	"github.com/jhoicas/Libreria-api/internal/application/inventory"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and billing.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de inventario y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	bookRepo repository.BookRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBookRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInvoice inicia una transacción con todos los repos que necesita un
// comando de facturación (libros, movimientos, facturas y consecutivos).
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(
	bookRepo repository.BookRepository,
	movementRepo repository.StockMovementRepository,
	invoiceRepo repository.InvoiceRepository,
	sequenceRepo repository.InvoiceSequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewBookRepository(tx),
		NewStockMovementRepository(tx),
		NewInvoiceRepository(tx),
		NewInvoiceSequenceRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
