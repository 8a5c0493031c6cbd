package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Libreria-api/internal/application/billing"
	"github.com/jhoicas/Libreria-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BookUC      *inventory.BookUseCase
	StockLedger *inventory.StockLedger
	InvoiceSvc  *billing.InvoiceService
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de libros
	books := api.Group("/books")
	bookHandler := NewBookHandler(deps.BookUC, deps.StockLedger)
	books.Post("/", bookHandler.Create)
	books.Get("/", bookHandler.List)
	books.Get("/:id", bookHandler.GetByID)
	books.Put("/:id", bookHandler.Update)
	books.Delete("/:id", bookHandler.Delete)
	books.Post("/:id/adjust-stock", bookHandler.AdjustStock)

	// Facturación
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceSvc)
	invoices.Post("/", invoiceHandler.CreateDraft)
	invoices.Get("/", invoiceHandler.List)

	// Líneas por ID propio, antes de las rutas /:id
	invoices.Put("/lines/:lineId", invoiceHandler.EditLine)
	invoices.Delete("/lines/:lineId", invoiceHandler.RemoveLine)

	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.UpdateDraft)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/lines", invoiceHandler.AddLine)
	invoices.Post("/:id/emit", invoiceHandler.Emit)
	invoices.Post("/:id/pay", invoiceHandler.MarkPaid)
	invoices.Post("/:id/void", invoiceHandler.Void)
	invoices.Get("/:id/print", invoiceHandler.PrintView)
	invoices.Get("/:id/movements", invoiceHandler.ListMovements)
}
