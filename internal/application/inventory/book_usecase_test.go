package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/application/inventory"
	"github.com/jhoicas/Libreria-api/internal/domain"
)

func newBookUC() (*inventory.BookUseCase, *fakeBookRepo) {
	repo := newFakeBookRepo()
	return inventory.NewBookUseCase(repo), repo
}

func TestBookCreate_AltaConStockInicial(t *testing.T) {
	uc, _ := newBookUC()
	out, err := uc.Create(dto.CreateBookRequest{
		Title:    "Cien años de soledad",
		Price:    decimal.NewFromFloat(15.90),
		Quantity: 12,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, int64(12), out.Quantity)
}

func TestBookCreate_Validaciones(t *testing.T) {
	uc, _ := newBookUC()

	_, err := uc.Create(dto.CreateBookRequest{Title: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el título es obligatorio")

	_, err = uc.Create(dto.CreateBookRequest{Title: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = uc.Create(dto.CreateBookRequest{Title: "x", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestBookUpdate_NoTocaElStock(t *testing.T) {
	uc, repo := newBookUC()
	created, err := uc.Create(dto.CreateBookRequest{
		Title:    "Rayuela",
		Price:    decimal.NewFromInt(20),
		Quantity: 7,
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromFloat(22.50)
	out, err := uc.Update(created.ID, dto.UpdateBookRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, newPrice.Equal(out.Price))
	assert.Equal(t, int64(7), out.Quantity, "la edición de catálogo no mueve stock")

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stored.Quantity)
}

func TestBookUpdate_Inexistente(t *testing.T) {
	uc, _ := newBookUC()
	title := "x"
	_, err := uc.Update("nope", dto.UpdateBookRequest{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookGetByID_Inexistente(t *testing.T) {
	uc, _ := newBookUC()
	_, err := uc.GetByID("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookDelete(t *testing.T) {
	uc, _ := newBookUC()
	created, err := uc.Create(dto.CreateBookRequest{Title: "Ficciones", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	_, err = uc.GetByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete("nope"), domain.ErrNotFound)
}
