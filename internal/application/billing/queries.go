package billing

import (
	"context"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
)

// GetInvoice obtiene una factura por ID con sus líneas.
func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, &domain.NotFoundError{Entity: "factura", ID: id}
	}
	inv.Lines, err = s.invoiceRepo.GetLinesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// ListInvoices lista las facturas (cabeceras con totales, sin líneas).
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// ListMovements devuelve el rastro de movimientos de stock de una factura.
func (s *InvoiceService) ListMovements(ctx context.Context, invoiceID string) ([]dto.StockMovementResponse, error) {
	inv, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, &domain.NotFoundError{Entity: "factura", ID: invoiceID}
	}
	movements, err := s.movementRepo.ListByInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:        m.ID,
			BookID:    m.BookID,
			InvoiceID: m.InvoiceID,
			Type:      string(m.Type),
			Quantity:  m.Quantity,
			Date:      m.Date,
		})
	}
	return out, nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		Status:        string(inv.Status),
		DraftNumber:   inv.DraftNumber,
		Number:        inv.Number,
		Date:          inv.Date.Format(dateLayout),
		Customer:      inv.Customer,
		Name:          inv.Name,
		TaxID:         inv.TaxID,
		Address:       inv.Address,
		PostalCity:    inv.PostalCity,
		Phone:         inv.Phone,
		Notes:         inv.Notes,
		Discount:      inv.Discount,
		TaxableBase:   inv.TaxableBase,
		TaxRate:       inv.TaxRate,
		SurchargeRate: inv.SurchargeRate,
		ShippingCost:  inv.ShippingCost,
		Total:         inv.Total,
		CancelReason:  inv.CancelReason,
		CancelledAt:   inv.CancelledAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Lines:         make([]dto.LineItemResponse, 0, len(inv.Lines)),
	}
	if inv.PaymentDate != nil {
		resp.PaymentDate = inv.PaymentDate.Format(dateLayout)
	}
	for _, line := range inv.Lines {
		resp.Lines = append(resp.Lines, dto.LineItemResponse{
			ID:        line.ID,
			BookID:    line.BookID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
			Amount:    line.Amount,
		})
	}
	return resp
}
