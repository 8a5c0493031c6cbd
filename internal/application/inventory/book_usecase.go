package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// BookUseCase casos de uso CRUD del catálogo de libros. La cantidad solo se
// mueve vía StockLedger (reservas de facturas o ajustes de recuento).
type BookUseCase struct {
	repo repository.BookRepository
}

// NewBookUseCase construye el caso de uso.
func NewBookUseCase(repo repository.BookRepository) *BookUseCase {
	return &BookUseCase{repo: repo}
}

// Create da de alta un libro con su stock inicial.
func (uc *BookUseCase) Create(in dto.CreateBookRequest) (*dto.BookResponse, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) || in.ListPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidPrice
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	now := time.Now()
	book := &entity.Book{
		ID:        uuid.New().String(),
		Title:     in.Title,
		ListPrice: in.ListPrice,
		Price:     in.Price,
		Discount:  in.Discount,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(book); err != nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

// GetByID obtiene un libro por ID.
func (uc *BookUseCase) GetByID(id string) (*dto.BookResponse, error) {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, &domain.NotFoundError{Entity: "libro", ID: id}
	}
	return toBookResponse(book), nil
}

// List lista el catálogo completo.
func (uc *BookUseCase) List() ([]*dto.BookResponse, error) {
	books, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BookResponse, 0, len(books))
	for _, book := range books {
		out = append(out, toBookResponse(book))
	}
	return out, nil
}

// Update actualiza los datos de catálogo. No toca la cantidad: el stock se
// corrige con un movimiento de ajuste del StockLedger.
func (uc *BookUseCase) Update(id string, in dto.UpdateBookRequest) (*dto.BookResponse, error) {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, &domain.NotFoundError{Entity: "libro", ID: id}
	}
	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.ListPrice != nil {
		book.ListPrice = *in.ListPrice
	}
	if in.Price != nil {
		book.Price = *in.Price
	}
	if in.Discount != nil {
		book.Discount = *in.Discount
	}
	if book.Price.LessThan(decimal.Zero) || book.ListPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidPrice
	}
	book.UpdatedAt = time.Now()
	if err := uc.repo.Update(book); err != nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

// Delete elimina un libro del catálogo. Falla con ErrConflict mientras alguna
// línea de factura lo referencie.
func (uc *BookUseCase) Delete(id string) error {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if book == nil {
		return &domain.NotFoundError{Entity: "libro", ID: id}
	}
	return uc.repo.Delete(id)
}

func toBookResponse(book *entity.Book) *dto.BookResponse {
	return &dto.BookResponse{
		ID:        book.ID,
		Title:     book.Title,
		ListPrice: book.ListPrice,
		Price:     book.Price,
		Discount:  book.Discount,
		Quantity:  book.Quantity,
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}
}
