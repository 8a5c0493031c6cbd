package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

var _ repository.BookRepository = (*BookRepo)(nil)

// BookRepo implementación de BookRepository sobre PostgreSQL (usable con pool o tx).
type BookRepo struct {
	q Querier
}

// NewBookRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBookRepository(q Querier) *BookRepo {
	return &BookRepo{q: q}
}

const bookColumns = `id, title, list_price, price, discount, quantity, created_at, updated_at`

// Create persiste un libro nuevo.
func (r *BookRepo) Create(book *entity.Book) error {
	query := `
		INSERT INTO books (id, title, list_price, price, discount, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		book.ID, book.Title, book.ListPrice, book.Price, book.Discount,
		book.Quantity, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetByID obtiene un libro por ID.
func (r *BookRepo) GetByID(id string) (*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get book")
}

// GetForUpdate obtiene el libro y bloquea su fila (SELECT FOR UPDATE).
func (r *BookRepo) GetForUpdate(id string) (*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get book for update")
}

// List lista el catálogo ordenado por título.
func (r *BookRepo) List() ([]*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()
	var list []*entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.ListPrice, &b.Price, &b.Discount, &b.Quantity, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update actualiza los campos de catálogo, no la cantidad.
func (r *BookRepo) Update(book *entity.Book) error {
	query := `
		UPDATE books
		SET title = $2, list_price = $3, price = $4, discount = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		book.ID, book.Title, book.ListPrice, book.Price, book.Discount, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// UpdateQuantity escribe la cantidad disponible (solo StockLedger).
func (r *BookRepo) UpdateQuantity(bookID string, quantity int64) error {
	query := `UPDATE books SET quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, bookID, quantity)
	if err != nil {
		return fmt.Errorf("update book quantity: %w", err)
	}
	return nil
}

// Delete elimina un libro. La FK de invoice_lines (ON DELETE RESTRICT) lo
// impide mientras alguna línea lo referencie; se traduce a ErrConflict.
func (r *BookRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

func (r *BookRepo) scanOne(row pgx.Row, op string) (*entity.Book, error) {
	var b entity.Book
	err := row.Scan(&b.ID, &b.Title, &b.ListPrice, &b.Price, &b.Discount, &b.Quantity, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}
