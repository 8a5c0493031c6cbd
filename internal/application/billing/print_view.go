package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/domain"
)

// PrintView arma la vista de impresión de una factura para el renderizador
// externo de PDF: líneas con PVP resuelto e importes, y los totales ya
// calculados. El renderizador no recalcula nada.
func (s *InvoiceService) PrintView(ctx context.Context, invoiceID string) (*dto.InvoicePrintView, error) {
	inv, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, &domain.NotFoundError{Entity: "factura", ID: invoiceID}
	}
	inv.Lines, err = s.invoiceRepo.GetLinesByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}

	number := inv.Number
	if number == "" {
		number = inv.DraftNumber
	}
	view := &dto.InvoicePrintView{
		Number:       number,
		Date:         inv.Date.Format(dateLayout),
		Customer:     inv.Customer,
		Name:         inv.Name,
		TaxID:        inv.TaxID,
		Address:      inv.Address,
		PostalCity:   inv.PostalCity,
		Lines:        make([]dto.PrintLineView, 0, len(inv.Lines)),
		ShippingCost: inv.ShippingCost,
		TaxableBase:  inv.TaxableBase,
		TaxAmount:    inv.TaxAmount().Round(2),
		Total:        inv.Total,
	}

	subtotal := decimal.Zero
	for _, line := range inv.Lines {
		book, err := s.bookRepo.GetByID(line.BookID)
		if err != nil {
			return nil, err
		}
		if book == nil {
			return nil, &domain.NotFoundError{Entity: "libro", ID: line.BookID}
		}
		// PVP resuelto: precio del libro con el IVA de la factura incluido.
		listPrice := book.Price
		if inv.TaxRate != nil {
			factor := decimal.NewFromInt(1).Add(inv.TaxRate.Div(decimal.NewFromInt(100)))
			listPrice = book.Price.Mul(factor)
		}
		view.Lines = append(view.Lines, dto.PrintLineView{
			Title:     book.Title,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			ListPrice: listPrice.Round(2),
			Discount:  line.Discount,
			Amount:    line.Amount,
		})
		subtotal = subtotal.Add(line.Amount)
	}
	view.Subtotal = subtotal
	// El descuento general en importe es la diferencia exacta entre la suma de
	// líneas y la base imponible, así la vista cuadra con los totales guardados.
	view.DiscountAmount = subtotal.Sub(inv.TaxableBase).Round(2)
	return view, nil
}
