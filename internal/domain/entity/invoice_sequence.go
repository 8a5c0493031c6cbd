package entity

import "time"

// InvoiceSequence consecutivo de numeración oficial por año.
// LastValue es el último número asignado; el siguiente se toma con la fila
// bloqueada (FOR UPDATE) en la misma transacción que emite la factura.
type InvoiceSequence struct {
	Year      int
	LastValue int
	UpdatedAt time.Time
}
