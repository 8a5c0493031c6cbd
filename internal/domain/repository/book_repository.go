package repository

import "github.com/jhoicas/Libreria-api/internal/domain/entity"

// BookRepository define el puerto de persistencia para Book (DIP).
// UpdateQuantity es de uso exclusivo del libro mayor de stock; el resto del
// código de facturación nunca escribe la cantidad directamente.
type BookRepository interface {
	Create(book *entity.Book) error
	GetByID(id string) (*entity.Book, error)
	// GetForUpdate bloquea la fila del libro (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Book, error)
	List() ([]*entity.Book, error)
	// Update actualiza los campos de catálogo (título, precios, descuento), no la cantidad.
	Update(book *entity.Book) error
	UpdateQuantity(bookID string, quantity int64) error
	// Delete falla con ErrConflict si alguna línea de factura referencia el libro.
	Delete(id string) error
}
