package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := dec(t, s)
	return &d
}

func TestComputeLineAmount_SinDescuento(t *testing.T) {
	amount, err := entity.ComputeLineAmount(3, dec(t, "12.50"), nil)
	require.NoError(t, err)
	assert.True(t, dec(t, "37.50").Equal(amount), "3 × 12.50 debe dar 37.50, obtuvo %s", amount)
}

func TestComputeLineAmount_ConDescuento(t *testing.T) {
	amount, err := entity.ComputeLineAmount(2, dec(t, "10.00"), decPtr(t, "25"))
	require.NoError(t, err)
	assert.True(t, dec(t, "15.00").Equal(amount), "2 × 10.00 con 25%% debe dar 15.00, obtuvo %s", amount)
}

// El redondeo a 2 decimales es half-up: 10.05 × 50% = 5.025 -> 5.03.
func TestComputeLineAmount_RedondeoHalfUp(t *testing.T) {
	amount, err := entity.ComputeLineAmount(1, dec(t, "10.05"), decPtr(t, "50"))
	require.NoError(t, err)
	assert.True(t, dec(t, "5.03").Equal(amount), "5.025 debe redondear a 5.03, obtuvo %s", amount)

	amount, err = entity.ComputeLineAmount(3, dec(t, "1.115"), nil)
	require.NoError(t, err)
	assert.True(t, dec(t, "3.35").Equal(amount), "3.345 debe redondear a 3.35, obtuvo %s", amount)
}

func TestComputeLineAmount_CantidadInvalida(t *testing.T) {
	_, err := entity.ComputeLineAmount(0, dec(t, "10.00"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad 0 debe rechazarse")

	_, err = entity.ComputeLineAmount(-2, dec(t, "10.00"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad negativa debe rechazarse")
}

func TestComputeLineAmount_PrecioNegativo(t *testing.T) {
	_, err := entity.ComputeLineAmount(1, dec(t, "-0.01"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestComputeLineAmount_PrecioCeroEsValido(t *testing.T) {
	amount, err := entity.ComputeLineAmount(5, decimal.Zero, nil)
	require.NoError(t, err)
	assert.True(t, amount.IsZero(), "precio 0 es legal (regalo), importe 0")
}

func TestRecompute_ActualizaAmount(t *testing.T) {
	line := &entity.LineItem{Quantity: 2, UnitPrice: dec(t, "14.00")}
	require.NoError(t, line.Recompute())
	assert.True(t, dec(t, "28.00").Equal(line.Amount))

	line.Quantity = 0
	err := line.Recompute()
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	// El importe anterior no debe pisarse si la validación falla.
	assert.True(t, dec(t, "28.00").Equal(line.Amount))
}
