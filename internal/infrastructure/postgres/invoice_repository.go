package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// number es NULL mientras la factura es borrador: la constraint UNIQUE solo
// aplica a números oficiales asignados.
const invoiceColumns = `
	id, status, COALESCE(draft_number, ''), COALESCE(number, ''), date,
	customer, name, tax_id, address, postal_city, phone, notes,
	discount, taxable_base, tax_rate, surcharge_rate, shipping_cost, total,
	cancel_reason, cancelled_at, payment_date, created_at, updated_at`

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, status, draft_number, number, date,
			customer, name, tax_id, address, postal_city, phone, notes,
			discount, taxable_base, tax_rate, surcharge_rate, shipping_cost, total,
			cancel_reason, cancelled_at, payment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, string(invoice.Status), nullIfEmpty(invoice.DraftNumber), nullIfEmpty(invoice.Number), invoice.Date,
		invoice.Customer, invoice.Name, invoice.TaxID, invoice.Address, invoice.PostalCity, invoice.Phone, invoice.Notes,
		invoice.Discount, invoice.TaxableBase, invoice.TaxRate, invoice.SurchargeRate, invoice.ShippingCost, invoice.Total,
		invoice.CancelReason, invoice.CancelledAt, invoice.PaymentDate, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateNumber
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID (sin líneas).
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get invoice")
}

// GetForUpdate obtiene la factura y bloquea su fila (SELECT FOR UPDATE) para
// serializar comandos concurrentes sobre la misma factura.
func (r *InvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get invoice for update")
}

// List lista las facturas, más recientes primero.
func (r *InvoiceRepo) List() ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update persiste estado, números, totales y campos de cliente.
// Una violación de unicidad sobre number aflora como ErrDuplicateNumber.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET status = $2, draft_number = $3, number = $4,
		    customer = $5, name = $6, tax_id = $7, address = $8, postal_city = $9, phone = $10, notes = $11,
		    discount = $12, taxable_base = $13, tax_rate = $14, surcharge_rate = $15, shipping_cost = $16, total = $17,
		    cancel_reason = $18, cancelled_at = $19, payment_date = $20, updated_at = $21
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, string(invoice.Status), nullIfEmpty(invoice.DraftNumber), nullIfEmpty(invoice.Number),
		invoice.Customer, invoice.Name, invoice.TaxID, invoice.Address, invoice.PostalCity, invoice.Phone, invoice.Notes,
		invoice.Discount, invoice.TaxableBase, invoice.TaxRate, invoice.SurchargeRate, invoice.ShippingCost, invoice.Total,
		invoice.CancelReason, invoice.CancelledAt, invoice.PaymentDate, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateNumber
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// Delete elimina la factura; invoice_lines cae en cascada (ON DELETE CASCADE).
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea.
func (r *InvoiceRepo) CreateLine(line *entity.LineItem) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, book_id, position, quantity, unit_price, discount, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.BookID, line.Position, line.Quantity, line.UnitPrice, line.Discount, line.Amount,
		line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetLineByID obtiene una línea por ID.
func (r *InvoiceRepo) GetLineByID(id string) (*entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, book_id, position, quantity, unit_price, discount, amount, created_at, updated_at
		FROM invoice_lines WHERE id = $1`
	var l entity.LineItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.InvoiceID, &l.BookID, &l.Position, &l.Quantity, &l.UnitPrice, &l.Discount, &l.Amount, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice line: %w", err)
	}
	return &l, nil
}

// GetLinesByInvoiceID obtiene las líneas ordenadas por position (orden de alta).
func (r *InvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, book_id, position, quantity, unit_price, discount, amount, created_at, updated_at
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.LineItem
	for rows.Next() {
		var l entity.LineItem
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.BookID, &l.Position, &l.Quantity, &l.UnitPrice, &l.Discount, &l.Amount, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateLine persiste cantidad, precio, descuento e importe de una línea.
func (r *InvoiceRepo) UpdateLine(line *entity.LineItem) error {
	query := `
		UPDATE invoice_lines
		SET quantity = $2, unit_price = $3, discount = $4, amount = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.Quantity, line.UnitPrice, line.Discount, line.Amount, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice line: %w", err)
	}
	return nil
}

// DeleteLine elimina una línea.
func (r *InvoiceRepo) DeleteLine(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice line: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) scanOne(row pgx.Row, op string) (*entity.Invoice, error) {
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return inv, nil
}

func (r *InvoiceRepo) scanRow(rows pgx.Rows) (*entity.Invoice, error) {
	inv, err := scanInvoice(rows)
	if err != nil {
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return inv, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var status string
	err := row.Scan(
		&inv.ID, &status, &inv.DraftNumber, &inv.Number, &inv.Date,
		&inv.Customer, &inv.Name, &inv.TaxID, &inv.Address, &inv.PostalCity, &inv.Phone, &inv.Notes,
		&inv.Discount, &inv.TaxableBase, &inv.TaxRate, &inv.SurchargeRate, &inv.ShippingCost, &inv.Total,
		&inv.CancelReason, &inv.CancelledAt, &inv.PaymentDate, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	return &inv, nil
}
