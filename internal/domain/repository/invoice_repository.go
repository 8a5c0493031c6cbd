package repository

import "github.com/jhoicas/Libreria-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la fila de la factura (SELECT FOR UPDATE) para
	// serializar comandos concurrentes sobre la misma factura.
	GetForUpdate(id string) (*entity.Invoice, error)
	List() ([]*entity.Invoice, error)
	// Update persiste estado, números, totales y campos de cliente.
	Update(invoice *entity.Invoice) error
	// Delete elimina la factura; las líneas caen en cascada.
	Delete(id string) error

	CreateLine(line *entity.LineItem) error
	GetLineByID(id string) (*entity.LineItem, error)
	GetLinesByInvoiceID(invoiceID string) ([]*entity.LineItem, error)
	UpdateLine(line *entity.LineItem) error
	DeleteLine(id string) error
}
