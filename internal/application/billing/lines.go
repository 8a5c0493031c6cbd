package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// AddLine añade una línea a un borrador: reserva el stock completo de la
// línea, la persiste y recalcula los totales de la factura. Solo en borrador.
func (s *InvoiceService) AddLine(ctx context.Context, invoiceID string, in dto.AddLineRequest) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	now := time.Now()
	err := s.txRunner.RunInvoice(ctx, func(
		bookRepo repository.BookRepository,
		movementRepo repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.InvoiceSequenceRepository,
	) error {
		var err error
		inv, err = lockInvoice(invoiceRepo, invoiceID)
		if err != nil {
			return err
		}
		if !inv.IsDraft() {
			return domain.ErrInvalidTransition
		}
		book, err := bookRepo.GetByID(in.BookID)
		if err != nil {
			return err
		}
		if book == nil {
			return &domain.NotFoundError{Entity: "libro", ID: in.BookID}
		}
		line, err := buildLine(inv.ID, book, in.Quantity, in.UnitPrice, in.Discount, now)
		if err != nil {
			return err
		}
		existing, err := invoiceRepo.GetLinesByInvoiceID(inv.ID)
		if err != nil {
			return err
		}
		line.Position = nextPosition(existing)
		if err := s.ledger.ReserveInTx(bookRepo, movementRepo, book.ID, inv.ID, line.Quantity, now); err != nil {
			return err
		}
		if err := invoiceRepo.CreateLine(line); err != nil {
			return err
		}
		return s.recomputeAndSave(invoiceRepo, inv, now)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// EditLine modifica cantidad, precio o descuento de una línea de un borrador.
// El cambio de cantidad se traduce en un ajuste de stock por la diferencia:
// aumentar reserva el delta (puede fallar por stock), disminuir lo libera.
func (s *InvoiceService) EditLine(ctx context.Context, lineID string, in dto.EditLineRequest) (*dto.InvoiceResponse, error) {
	if err := validatePercent(in.Discount); err != nil {
		return nil, err
	}
	var inv *entity.Invoice
	now := time.Now()
	err := s.txRunner.RunInvoice(ctx, func(
		bookRepo repository.BookRepository,
		movementRepo repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.InvoiceSequenceRepository,
	) error {
		line, err := invoiceRepo.GetLineByID(lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return &domain.NotFoundError{Entity: "línea", ID: lineID}
		}
		inv, err = lockInvoice(invoiceRepo, line.InvoiceID)
		if err != nil {
			return err
		}
		if !inv.IsDraft() {
			return domain.ErrInvalidTransition
		}

		previousQty := line.Quantity
		if in.Quantity != nil {
			line.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			line.UnitPrice = *in.UnitPrice
		}
		if in.Discount != nil {
			line.Discount = in.Discount
		}
		if err := line.Recompute(); err != nil {
			return err
		}

		// Delta de stock: cantidad nueva mayor => reservar más (delta negativo
		// sobre el stock del libro); menor => liberar la diferencia.
		if delta := line.Quantity - previousQty; delta != 0 {
			if err := s.ledger.AdjustInTx(bookRepo, movementRepo, line.BookID, inv.ID, -delta, now); err != nil {
				return err
			}
		}

		line.UpdatedAt = now
		if err := invoiceRepo.UpdateLine(line); err != nil {
			return err
		}
		return s.recomputeAndSave(invoiceRepo, inv, now)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// RemoveLine elimina una línea de un borrador y libera su stock reservado.
func (s *InvoiceService) RemoveLine(ctx context.Context, lineID string) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	now := time.Now()
	err := s.txRunner.RunInvoice(ctx, func(
		bookRepo repository.BookRepository,
		movementRepo repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.InvoiceSequenceRepository,
	) error {
		line, err := invoiceRepo.GetLineByID(lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return &domain.NotFoundError{Entity: "línea", ID: lineID}
		}
		inv, err = lockInvoice(invoiceRepo, line.InvoiceID)
		if err != nil {
			return err
		}
		if !inv.IsDraft() {
			return domain.ErrInvalidTransition
		}
		if err := s.ledger.ReleaseInTx(bookRepo, movementRepo, line.BookID, inv.ID, line.Quantity, now); err != nil {
			return err
		}
		if err := invoiceRepo.DeleteLine(lineID); err != nil {
			return err
		}
		return s.recomputeAndSave(invoiceRepo, inv, now)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// nextPosition devuelve la posición de la siguiente línea: máximo actual + 1.
// No se reutilizan posiciones de líneas eliminadas.
func nextPosition(lines []*entity.LineItem) int64 {
	var max int64
	for _, l := range lines {
		if l.Position > max {
			max = l.Position
		}
	}
	return max + 1
}

// recomputeAndSave recarga las líneas, recalcula totales una sola vez y
// persiste la factura. Se invoca al final de cada comando que toca líneas.
func (s *InvoiceService) recomputeAndSave(invoiceRepo repository.InvoiceRepository, inv *entity.Invoice, now time.Time) error {
	lines, err := invoiceRepo.GetLinesByInvoiceID(inv.ID)
	if err != nil {
		return err
	}
	inv.Lines = lines
	inv.ComputeTotals()
	inv.UpdatedAt = now
	return invoiceRepo.Update(inv)
}
