package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los tipos estructurados de abajo
// responden a errors.Is contra su centinela, así los handlers pueden discriminar
// por categoría sin perder los datos del error.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrMissingCustomer    = errors.New("una factura emitida debe tener un cliente")
	ErrMissingReason      = errors.New("la anulación requiere un motivo")
	ErrMissingPaymentDate = errors.New("una factura pagada debe tener fecha de pago")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser mayor que 0")
	ErrInvalidPrice       = errors.New("el precio no puede ser negativo")
	ErrDuplicateNumber    = errors.New("número de factura duplicado")
)

// InsufficientStockError indica que un libro no tiene stock para cubrir la cantidad pedida.
type InsufficientStockError struct {
	BookID    string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente del libro %s: disponible %d, solicitado %d",
		e.BookID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// InvalidTransitionError indica un cambio de estado fuera de la tabla de transiciones.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición de estado no permitida: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// NotFoundError indica que una entidad referenciada no existe.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
