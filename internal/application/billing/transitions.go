package billing

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// emitRetries reintentos del comando de emisión completo ante un número
// duplicado (carrera del consecutivo contra datos previos).
const emitRetries = 1

// Emit pasa un borrador a emitida: exige cliente, asigna el número oficial
// dentro de la misma transacción que cambia el estado y borra el número de
// borrador. El stock ya quedó reservado al crear el borrador, aquí no se toca.
func (s *InvoiceService) Emit(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	var err error
	for attempt := 0; ; attempt++ {
		inv, err = s.emitOnce(ctx, invoiceID)
		if err == nil || !errors.Is(err, domain.ErrDuplicateNumber) || attempt >= emitRetries {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

func (s *InvoiceService) emitOnce(ctx context.Context, invoiceID string) (*entity.Invoice, error) {
	var inv *entity.Invoice
	now := time.Now()
	err := s.txRunner.RunInvoice(ctx, func(
		_ repository.BookRepository,
		_ repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		sequenceRepo repository.InvoiceSequenceRepository,
	) error {
		var err error
		inv, err = lockInvoice(invoiceRepo, invoiceID)
		if err != nil {
			return err
		}
		if err := inv.ValidateTransition(entity.StatusIssued); err != nil {
			return err
		}
		number, err := s.allocator.NextInTx(sequenceRepo, inv.Year(), now)
		if err != nil {
			return err
		}
		inv.Number = number
		inv.DraftNumber = ""
		inv.Status = entity.StatusIssued
		inv.UpdatedAt = now
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// MarkPaid registra el cobro de una factura emitida. Sin efecto sobre stock.
func (s *InvoiceService) MarkPaid(ctx context.Context, invoiceID string, in dto.MarkPaidRequest) (*dto.InvoiceResponse, error) {
	if in.PaymentDate == "" {
		return nil, domain.ErrMissingPaymentDate
	}
	paymentDate, err := time.Parse(dateLayout, in.PaymentDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var inv *entity.Invoice
	now := time.Now()
	err = s.txRunner.RunInvoice(ctx, func(
		_ repository.BookRepository,
		_ repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.InvoiceSequenceRepository,
	) error {
		var err error
		inv, err = lockInvoice(invoiceRepo, invoiceID)
		if err != nil {
			return err
		}
		inv.PaymentDate = &paymentDate
		if err := inv.ValidateTransition(entity.StatusPaid); err != nil {
			return err
		}
		inv.Status = entity.StatusPaid
		inv.UpdatedAt = now
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// Void anula una factura emitida o pagada: exige motivo, libera el stock de
// todas las líneas y registra motivo y momento. Anular una ya anulada (o un
// borrador) falla con transición inválida, no es un no-op.
func (s *InvoiceService) Void(ctx context.Context, invoiceID string, in dto.VoidRequest) (*dto.InvoiceResponse, error) {
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
		inv.CancelReason = in.Reason
		if err := inv.ValidateTransition(entity.StatusVoided); err != nil {
			return err
		}
		inv.Lines, err = invoiceRepo.GetLinesByInvoiceID(inv.ID)
		if err != nil {
			return err
		}
		for _, line := range inv.Lines {
			if err := s.ledger.ReleaseInTx(bookRepo, movementRepo, line.BookID, inv.ID, line.Quantity, now); err != nil {
				return err
			}
		}
		inv.Status = entity.StatusVoided
		inv.CancelledAt = &now
		inv.UpdatedAt = now
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// Delete elimina un borrador liberando su stock. Las facturas emitidas no se
// eliminan nunca: se anulan.
func (s *InvoiceService) Delete(ctx context.Context, invoiceID string) error {
	now := time.Now()
	return s.txRunner.RunInvoice(ctx, func(
		bookRepo repository.BookRepository,
		movementRepo repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.InvoiceSequenceRepository,
	) error {
		inv, err := lockInvoice(invoiceRepo, invoiceID)
		if err != nil {
			return err
		}
		if !inv.IsDraft() {
			return domain.ErrInvalidTransition
		}
		lines, err := invoiceRepo.GetLinesByInvoiceID(inv.ID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := s.ledger.ReleaseInTx(bookRepo, movementRepo, line.BookID, inv.ID, line.Quantity, now); err != nil {
				return err
			}
		}
		return invoiceRepo.Delete(inv.ID)
	})
}
