package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// dateLayout formato de fechas en la API (fecha de factura y de pago).
const dateLayout = "2006-01-02"

// InvoiceService es el único punto de entrada que muta facturas: valida la
// transición, aplica las mutaciones de líneas, recalcula totales una sola vez
// por comando y llama al libro mayor de stock, todo dentro de una transacción.
// Las entidades no tienen efectos ocultos al guardarse.
type InvoiceService struct {
	txRunner  TxRunner
	ledger    StockLedger
	allocator *NumberAllocator

	// repos sobre el pool, solo para lecturas fuera de transacción
	bookRepo     repository.BookRepository
	invoiceRepo  repository.InvoiceRepository
	movementRepo repository.StockMovementRepository
}

// NewInvoiceService construye el servicio de facturación.
func NewInvoiceService(
	txRunner TxRunner,
	ledger StockLedger,
	allocator *NumberAllocator,
	bookRepo repository.BookRepository,
	invoiceRepo repository.InvoiceRepository,
	movementRepo repository.StockMovementRepository,
) *InvoiceService {
	return &InvoiceService{
		txRunner:     txRunner,
		ledger:       ledger,
		allocator:    allocator,
		bookRepo:     bookRepo,
		invoiceRepo:  invoiceRepo,
		movementRepo: movementRepo,
	}
}

// CreateDraft crea una factura en borrador y reserva el stock de todas sus
// líneas. Todo o nada: si una línea no tiene stock, la transacción revierte
// las reservas ya hechas para las líneas anteriores del mismo comando.
func (s *InvoiceService) CreateDraft(ctx context.Context, in dto.CreateDraftRequest) (*dto.InvoiceResponse, error) {
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if err := validatePercent(in.Discount); err != nil {
		return nil, err
	}
	if err := validatePercent(in.TaxRate); err != nil {
		return nil, err
	}
	if err := validatePercent(in.SurchargeRate); err != nil {
		return nil, err
	}

	now := time.Now()
	invoiceID := uuid.New().String()

	taxRate := entity.DefaultTaxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}
	shipping := decimal.Zero
	if in.ShippingCost != nil {
		if in.ShippingCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidPrice
		}
		shipping = *in.ShippingCost
	}

	inv := &entity.Invoice{
		ID:            invoiceID,
		Status:        entity.StatusDraft,
		DraftNumber:   entity.DraftNumberFor(date.Year(), invoiceID[:8]),
		Date:          date,
		Customer:      in.Customer,
		Name:          in.Name,
		TaxID:         in.TaxID,
		Address:       in.Address,
		PostalCity:    in.PostalCity,
		Phone:         in.Phone,
		Notes:         in.Notes,
		Discount:      in.Discount,
		TaxRate:       &taxRate,
		SurchargeRate: in.SurchargeRate,
		ShippingCost:  shipping,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Validar y calcular todas las líneas antes de tocar nada (fail fast).
	for i, lineIn := range in.Lines {
		book, err := s.bookRepo.GetByID(lineIn.BookID)
		if err != nil {
			return nil, err
		}
		if book == nil {
			return nil, &domain.NotFoundError{Entity: "libro", ID: lineIn.BookID}
		}
		line, err := buildLine(invoiceID, book, lineIn.Quantity, lineIn.UnitPrice, lineIn.Discount, now)
		if err != nil {
			return nil, err
		}
		line.Position = int64(i + 1)
		inv.Lines = append(inv.Lines, line)
	}
	inv.ComputeTotals()

	err = s.txRunner.RunInvoice(ctx, func(
		bookRepo repository.BookRepository,
		movementRepo repository.StockMovementRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.InvoiceSequenceRepository,
	) error {
		// Reservar stock línea a línea; cualquier fallo revierte la transacción
		// completa y con ella las reservas ya aplicadas.
		for _, line := range inv.Lines {
			if err := s.ledger.ReserveInTx(bookRepo, movementRepo, line.BookID, inv.ID, line.Quantity, now); err != nil {
				return err
			}
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, line := range inv.Lines {
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// UpdateDraft edita la cabecera de un borrador (cliente, descuento general,
// IVA, envío, notas) y recalcula totales. Solo en borrador.
func (s *InvoiceService) UpdateDraft(ctx context.Context, invoiceID string, in dto.UpdateDraftRequest) (*dto.InvoiceResponse, error) {
	if err := validatePercent(in.Discount); err != nil {
		return nil, err
	}
	if err := validatePercent(in.TaxRate); err != nil {
		return nil, err
	}
	if err := validatePercent(in.SurchargeRate); err != nil {
		return nil, err
	}
	if in.ShippingCost != nil && in.ShippingCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidPrice
	}
	var inv *entity.Invoice
	err := s.txRunner.RunInvoice(ctx, func(
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
		if !inv.IsDraft() {
			return domain.ErrInvalidTransition
		}
		applyHeader(inv, in)
		inv.Lines, err = invoiceRepo.GetLinesByInvoiceID(inv.ID)
		if err != nil {
			return err
		}
		inv.ComputeTotals()
		inv.UpdatedAt = time.Now()
		return invoiceRepo.Update(inv)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// buildLine arma una línea resolviendo precio y descuento desde el libro
// cuando el request los omite, y valida cantidad y precio.
func buildLine(invoiceID string, book *entity.Book, qty int64, unitPrice, discount *decimal.Decimal, now time.Time) (*entity.LineItem, error) {
	price := book.Price
	if unitPrice != nil {
		price = *unitPrice
	}
	if discount == nil && !book.Discount.IsZero() {
		d := book.Discount
		discount = &d
	}
	if err := validatePercent(discount); err != nil {
		return nil, err
	}
	line := &entity.LineItem{
		ID:        uuid.New().String(),
		InvoiceID: invoiceID,
		BookID:    book.ID,
		Quantity:  qty,
		UnitPrice: price,
		Discount:  discount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := line.Recompute(); err != nil {
		return nil, err
	}
	return line, nil
}

// lockInvoice bloquea la fila de la factura y traduce la ausencia a NotFoundError.
func lockInvoice(invoiceRepo repository.InvoiceRepository, id string) (*entity.Invoice, error) {
	inv, err := invoiceRepo.GetForUpdate(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, &domain.NotFoundError{Entity: "factura", ID: id}
	}
	return inv, nil
}

// validatePercent acepta nil o un porcentaje en [0, 100].
func validatePercent(p *decimal.Decimal) error {
	if p == nil {
		return nil
	}
	if p.LessThan(decimal.Zero) || p.GreaterThan(decimal.NewFromInt(100)) {
		return domain.ErrInvalidInput
	}
	return nil
}

func applyHeader(inv *entity.Invoice, in dto.UpdateDraftRequest) {
	if in.Customer != nil {
		inv.Customer = *in.Customer
	}
	if in.Name != nil {
		inv.Name = *in.Name
	}
	if in.TaxID != nil {
		inv.TaxID = *in.TaxID
	}
	if in.Address != nil {
		inv.Address = *in.Address
	}
	if in.PostalCity != nil {
		inv.PostalCity = *in.PostalCity
	}
	if in.Phone != nil {
		inv.Phone = *in.Phone
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	if in.Discount != nil {
		inv.Discount = in.Discount
	}
	if in.TaxRate != nil {
		inv.TaxRate = in.TaxRate
	}
	if in.SurchargeRate != nil {
		inv.SurchargeRate = in.SurchargeRate
	}
	if in.ShippingCost != nil {
		inv.ShippingCost = *in.ShippingCost
	}
}
