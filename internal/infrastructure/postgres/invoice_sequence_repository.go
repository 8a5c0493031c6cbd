package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.InvoiceSequenceRepository = (*InvoiceSequenceRepo)(nil)

// InvoiceSequenceRepo implementación de InvoiceSequenceRepository (usable con pool o tx).
type InvoiceSequenceRepo struct {
	q Querier
}

// NewInvoiceSequenceRepository construye el adaptador.
func NewInvoiceSequenceRepository(q Querier) *InvoiceSequenceRepo {
	return &InvoiceSequenceRepo{q: q}
}

// GetForUpdate bloquea la fila del consecutivo anual. Dos emisiones
// concurrentes del mismo año se serializan sobre este lock.
func (r *InvoiceSequenceRepo) GetForUpdate(year int) (*entity.InvoiceSequence, error) {
	query := `SELECT year, last_value, updated_at FROM invoice_sequences WHERE year = $1 FOR UPDATE`
	var seq entity.InvoiceSequence
	err := r.q.QueryRow(context.Background(), query, year).Scan(&seq.Year, &seq.LastValue, &seq.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice sequence for update: %w", err)
	}
	return &seq, nil
}

// Upsert persiste el consecutivo del año.
func (r *InvoiceSequenceRepo) Upsert(seq *entity.InvoiceSequence) error {
	query := `
		INSERT INTO invoice_sequences (year, last_value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (year) DO UPDATE SET last_value = EXCLUDED.last_value, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query, seq.Year, seq.LastValue, seq.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert invoice sequence: %w", err)
	}
	return nil
}

// MaxIssuedSequence calcula el mayor secuencial ya asignado en facturas del
// año (formato F-<año>-NNNN). Solo se usa para sembrar consecutivos de años
// con datos anteriores a la tabla invoice_sequences.
func (r *InvoiceSequenceRepo) MaxIssuedSequence(year int) (int, error) {
	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM 8) AS INTEGER)), 0)
		FROM invoices
		WHERE number LIKE 'F-' || $1::text || '-%'`
	var max int
	if err := r.q.QueryRow(context.Background(), query, year).Scan(&max); err != nil {
		return 0, fmt.Errorf("max issued sequence: %w", err)
	}
	return max, nil
}
