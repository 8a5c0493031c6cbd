package repository

import "github.com/jhoicas/Libreria-api/internal/domain/entity"

// InvoiceSequenceRepository define el puerto para el consecutivo anual de numeración.
// Ambas operaciones deben ejecutarse dentro de la transacción que emite la factura.
type InvoiceSequenceRepository interface {
	// GetForUpdate bloquea la fila del año (SELECT FOR UPDATE). Devuelve nil si
	// el año aún no tiene consecutivo.
	GetForUpdate(year int) (*entity.InvoiceSequence, error)
	Upsert(seq *entity.InvoiceSequence) error
	// MaxIssuedSequence devuelve el mayor secuencial F-<año>-NNNN ya persistido
	// en facturas de ese año (0 si no hay). Siembra el consecutivo con datos previos.
	MaxIssuedSequence(year int) (int, error)
}
