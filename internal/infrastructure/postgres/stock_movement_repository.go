package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento de stock. El invoice_id vacío se guarda como
// NULL (ajustes de catálogo sin factura asociada).
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, book_id, invoice_id, type, quantity, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.BookID, nullIfEmpty(movement.InvoiceID),
		string(movement.Type), movement.Quantity, movement.Date, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByInvoice lista los movimientos de una factura en orden cronológico.
func (r *StockMovementRepo) ListByInvoice(invoiceID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, book_id, COALESCE(invoice_id, ''), type, quantity, date, created_at
		FROM stock_movements WHERE invoice_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var mType string
		if err := rows.Scan(&m.ID, &m.BookID, &m.InvoiceID, &mType, &m.Quantity, &m.Date, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.Type = entity.MovementType(mType)
		list = append(list, &m)
	}
	return list, rows.Err()
}
