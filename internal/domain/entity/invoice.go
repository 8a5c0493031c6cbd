package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Libreria-api/internal/domain"
)

// InvoiceStatus estado del ciclo de vida de una factura (conjunto cerrado).
type InvoiceStatus string

// Estados de factura.
const (
	StatusDraft  InvoiceStatus = "DRAFT"  // borrador: sin número oficial, stock ya reservado
	StatusIssued InvoiceStatus = "ISSUED" // emitida: número oficial asignado
	StatusPaid   InvoiceStatus = "PAID"   // pagada: con fecha de pago
	StatusVoided InvoiceStatus = "VOIDED" // anulada: stock liberado
)

// transitions tabla cerrada de transiciones legales. Cualquier par que no esté
// aquí se rechaza con InvalidTransitionError.
var transitions = map[InvoiceStatus][]InvoiceStatus{
	StatusDraft:  {StatusIssued},
	StatusIssued: {StatusPaid, StatusVoided},
	StatusPaid:   {StatusVoided},
	StatusVoided: {},
}

// CanTransition indica si el cambio de estado from -> to está en la tabla.
func CanTransition(from, to InvoiceStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DefaultTaxRate IVA por defecto (%).
var DefaultTaxRate = decimal.NewFromInt(21)

// Invoice representa una factura de venta con sus líneas.
// TaxableBase y Total son derivados: ComputeTotals los recalcula de forma
// determinista a partir de las líneas; el orquestador lo invoca una vez por
// comando, después de aplicar todas las mutaciones de líneas.
type Invoice struct {
	ID            string
	Status        InvoiceStatus
	DraftNumber   string // BORRADOR-<año>-<id>, solo mientras es borrador
	Number        string // número oficial F-<año>-NNNN, inmutable una vez asignado
	Date          time.Time
	Customer      string // nombre del cliente
	Name          string // nombre comercial o de facturación
	TaxID         string // NIF/CIF
	Address       string
	PostalCity    string
	Phone         string
	Notes         string
	Discount      *decimal.Decimal // descuento general (%), nil = sin descuento
	TaxableBase   decimal.Decimal  // base imponible (derivada)
	TaxRate       *decimal.Decimal // IVA (%), nil = 0; por defecto 21 al crear
	SurchargeRate *decimal.Decimal // recargo de equivalencia (%); reservado, no entra en el total
	ShippingCost  decimal.Decimal
	Total         decimal.Decimal // derivado
	CancelReason  string          // solo cuando está anulada
	CancelledAt   *time.Time
	PaymentDate   *time.Time // solo cuando está pagada
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Lines         []*LineItem
}

// ComputeTotals recalcula base imponible y total a partir de las líneas:
// base = Σ importes de línea, menos descuento general; IVA sobre la base;
// total = base + IVA + gastos de envío, redondeado a 2 decimales al final.
// Base e IVA conservan precisión completa hasta la suma final.
func (inv *Invoice) ComputeTotals() {
	base := decimal.Zero
	for _, line := range inv.Lines {
		base = base.Add(line.Amount)
	}
	if inv.Discount != nil {
		factor := decimal.NewFromInt(1).Sub(inv.Discount.Div(decimal.NewFromInt(100)))
		base = base.Mul(factor)
	}
	inv.TaxableBase = base

	tax := decimal.Zero
	if inv.TaxRate != nil {
		tax = base.Mul(inv.TaxRate.Div(decimal.NewFromInt(100)))
	}
	inv.Total = base.Add(tax).Add(inv.ShippingCost).Round(2)
}

// TaxAmount devuelve el importe de IVA derivado de la base imponible actual.
func (inv *Invoice) TaxAmount() decimal.Decimal {
	if inv.TaxRate == nil {
		return decimal.Zero
	}
	return inv.TaxableBase.Mul(inv.TaxRate.Div(decimal.NewFromInt(100)))
}

// Year año fiscal de la factura (el de su fecha, no el del reloj).
func (inv *Invoice) Year() int {
	return inv.Date.Year()
}

// DraftNumberFor genera el número informativo de borrador. No se verifica
// colisión: solo el número oficial es único.
func DraftNumberFor(year int, idPrefix string) string {
	return fmt.Sprintf("BORRADOR-%d-%s", year, idPrefix)
}

// OfficialNumber formatea un número oficial de factura F-<año>-NNNN.
func OfficialNumber(year int, seq int) string {
	return fmt.Sprintf("F-%d-%04d", year, seq)
}

// IsDraft indica si la factura sigue en borrador (líneas editables, borrable).
func (inv *Invoice) IsDraft() bool { return inv.Status == StatusDraft }

// ValidateTransition comprueba la tabla de transiciones y los requisitos del
// estado destino (cliente para emitir, fecha para pagar, motivo para anular).
func (inv *Invoice) ValidateTransition(to InvoiceStatus) error {
	if !CanTransition(inv.Status, to) {
		return &domain.InvalidTransitionError{From: string(inv.Status), To: string(to)}
	}
	switch to {
	case StatusIssued:
		if inv.Customer == "" {
			return domain.ErrMissingCustomer
		}
	case StatusPaid:
		if inv.PaymentDate == nil || inv.PaymentDate.IsZero() {
			return domain.ErrMissingPaymentDate
		}
	case StatusVoided:
		if inv.CancelReason == "" {
			return domain.ErrMissingReason
		}
	}
	return nil
}
