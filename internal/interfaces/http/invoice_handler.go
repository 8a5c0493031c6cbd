package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Libreria-api/internal/application/billing"
	"github.com/jhoicas/Libreria-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	svc *billing.InvoiceService
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(svc *billing.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// CreateDraft crea una factura en borrador, con o sin líneas.
// POST /api/invoices
func (h *InvoiceHandler) CreateDraft(c *fiber.Ctx) error {
	var in dto.CreateDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date es requerido (YYYY-MM-DD)"})
	}
	out, err := h.svc.CreateDraft(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una factura con sus líneas.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista las facturas (sin líneas).
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.ListInvoices(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateDraft edita la cabecera de un borrador.
// PUT /api/invoices/:id
func (h *InvoiceHandler) UpdateDraft(c *fiber.Ctx) error {
	var in dto.UpdateDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.UpdateDraft(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un borrador liberando sus reservas de stock.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddLine añade una línea a un borrador, reservando stock.
// POST /api/invoices/:id/lines
func (h *InvoiceHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.AddLine(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// EditLine edita una línea de un borrador, ajustando la reserva por la
// diferencia de cantidad.
// PUT /api/invoices/lines/:lineId
func (h *InvoiceHandler) EditLine(c *fiber.Ctx) error {
	var in dto.EditLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.EditLine(c.Context(), c.Params("lineId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveLine elimina una línea de un borrador devolviendo su reserva.
// DELETE /api/invoices/lines/:lineId
func (h *InvoiceHandler) RemoveLine(c *fiber.Ctx) error {
	out, err := h.svc.RemoveLine(c.Context(), c.Params("lineId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Emit emite el borrador asignándole número oficial.
// POST /api/invoices/:id/emit
func (h *InvoiceHandler) Emit(c *fiber.Ctx) error {
	out, err := h.svc.Emit(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkPaid registra el cobro de una factura emitida.
// POST /api/invoices/:id/pay
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	var in dto.MarkPaidRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.MarkPaid(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Void anula una factura emitida o pagada, devolviendo el stock.
// POST /api/invoices/:id/void
func (h *InvoiceHandler) Void(c *fiber.Ctx) error {
	var in dto.VoidRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.svc.Void(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PrintView devuelve la vista de impresión con todos los importes resueltos,
// lista para el renderizador externo de PDF.
// GET /api/invoices/:id/print
func (h *InvoiceHandler) PrintView(c *fiber.Ctx) error {
	out, err := h.svc.PrintView(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements lista los movimientos de stock de una factura.
// GET /api/invoices/:id/movements
func (h *InvoiceHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.svc.ListMovements(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
