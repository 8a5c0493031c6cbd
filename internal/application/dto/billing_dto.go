package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDraftRequest entrada para crear una factura en borrador.
// Fecha obligatoria; cliente y líneas opcionales. Si una línea omite precio o
// descuento, se toman los del libro.
type CreateDraftRequest struct {
	Date          string             `json:"date" validate:"required"` // YYYY-MM-DD
	Customer      string             `json:"customer"`
	Name          string             `json:"name"`
	TaxID         string             `json:"tax_id"`
	Address       string             `json:"address"`
	PostalCity    string             `json:"postal_city"`
	Phone         string             `json:"phone"`
	Notes         string             `json:"notes"`
	Discount      *decimal.Decimal   `json:"discount"`
	TaxRate       *decimal.Decimal   `json:"tax_rate"`
	SurchargeRate *decimal.Decimal   `json:"surcharge_rate"`
	ShippingCost  *decimal.Decimal   `json:"shipping_cost"`
	Lines         []DraftLineRequest `json:"lines"`
}

// DraftLineRequest línea dentro de una creación de borrador.
type DraftLineRequest struct {
	BookID    string           `json:"book_id" validate:"required"`
	Quantity  int64            `json:"quantity" validate:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Discount  *decimal.Decimal `json:"discount"`
}

// AddLineRequest entrada para añadir una línea a un borrador existente.
type AddLineRequest struct {
	BookID    string           `json:"book_id" validate:"required"`
	Quantity  int64            `json:"quantity" validate:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Discount  *decimal.Decimal `json:"discount"`
}

// EditLineRequest entrada para editar una línea (campos opcionales).
type EditLineRequest struct {
	Quantity  *int64           `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Discount  *decimal.Decimal `json:"discount"`
}

// UpdateDraftRequest entrada para editar la cabecera de un borrador
// (cliente, descuento general, IVA, envío, notas).
type UpdateDraftRequest struct {
	Customer      *string          `json:"customer"`
	Name          *string          `json:"name"`
	TaxID         *string          `json:"tax_id"`
	Address       *string          `json:"address"`
	PostalCity    *string          `json:"postal_city"`
	Phone         *string          `json:"phone"`
	Notes         *string          `json:"notes"`
	Discount      *decimal.Decimal `json:"discount"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	SurchargeRate *decimal.Decimal `json:"surcharge_rate"`
	ShippingCost  *decimal.Decimal `json:"shipping_cost"`
}

// MarkPaidRequest entrada para registrar el cobro.
type MarkPaidRequest struct {
	PaymentDate string `json:"payment_date" validate:"required"` // YYYY-MM-DD
}

// VoidRequest entrada para anular una factura emitida o pagada.
type VoidRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// LineItemResponse salida de una línea de factura.
type LineItemResponse struct {
	ID        string           `json:"id"`
	BookID    string           `json:"book_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Discount  *decimal.Decimal `json:"discount,omitempty"`
	Amount    decimal.Decimal  `json:"amount"`
}

// InvoiceResponse salida de una factura completa.
type InvoiceResponse struct {
	ID            string             `json:"id"`
	Status        string             `json:"status"`
	DraftNumber   string             `json:"draft_number,omitempty"`
	Number        string             `json:"number,omitempty"`
	Date          string             `json:"date"`
	Customer      string             `json:"customer,omitempty"`
	Name          string             `json:"name,omitempty"`
	TaxID         string             `json:"tax_id,omitempty"`
	Address       string             `json:"address,omitempty"`
	PostalCity    string             `json:"postal_city,omitempty"`
	Phone         string             `json:"phone,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Discount      *decimal.Decimal   `json:"discount,omitempty"`
	TaxableBase   decimal.Decimal    `json:"taxable_base"`
	TaxRate       *decimal.Decimal   `json:"tax_rate,omitempty"`
	SurchargeRate *decimal.Decimal   `json:"surcharge_rate,omitempty"`
	ShippingCost  decimal.Decimal    `json:"shipping_cost"`
	Total         decimal.Decimal    `json:"total"`
	CancelReason  string             `json:"cancel_reason,omitempty"`
	CancelledAt   *time.Time         `json:"cancelled_at,omitempty"`
	PaymentDate   string             `json:"payment_date,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Lines         []LineItemResponse `json:"lines"`
}

// StockMovementResponse salida de un movimiento de stock.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	InvoiceID string    `json:"invoice_id,omitempty"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Date      time.Time `json:"date"`
}

// PrintLineView línea con todos los importes resueltos para el renderizador
// externo de PDF. Nada de esto se recalcula fuera del core.
type PrintLineView struct {
	Title     string           `json:"title"`
	Quantity  int64            `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	ListPrice decimal.Decimal  `json:"list_price"` // PVP resuelto: precio × (1 + IVA/100)
	Discount  *decimal.Decimal `json:"discount,omitempty"`
	Amount    decimal.Decimal  `json:"amount"`
}

// InvoicePrintView vista de impresión precalculada de una factura.
type InvoicePrintView struct {
	Number         string          `json:"number"`
	Date           string          `json:"date"`
	Customer       string          `json:"customer,omitempty"`
	Name           string          `json:"name,omitempty"`
	TaxID          string          `json:"tax_id,omitempty"`
	Address        string          `json:"address,omitempty"`
	PostalCity     string          `json:"postal_city,omitempty"`
	Lines          []PrintLineView `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`        // Σ importes de línea
	DiscountAmount decimal.Decimal `json:"discount_amount"` // descuento general en importe
	TaxableBase    decimal.Decimal `json:"taxable_base"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	Total          decimal.Decimal `json:"total"`
}
