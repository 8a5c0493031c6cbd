package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Libreria-api/internal/application/billing"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
)

func TestNumberAllocator_ArrancaEnUno(t *testing.T) {
	sequences := newFakeSequenceRepo(newFakeInvoiceRepo())
	allocator := billing.NewNumberAllocator()
	now := time.Now()

	number, err := allocator.NextInTx(sequences, 2025, now)
	require.NoError(t, err)
	assert.Equal(t, "F-2025-0001", number)

	number, err = allocator.NextInTx(sequences, 2025, now)
	require.NoError(t, err)
	assert.Equal(t, "F-2025-0002", number)
}

func TestNumberAllocator_ConsecutivosIndependientesPorAño(t *testing.T) {
	sequences := newFakeSequenceRepo(newFakeInvoiceRepo())
	allocator := billing.NewNumberAllocator()
	now := time.Now()

	number, err := allocator.NextInTx(sequences, 2024, now)
	require.NoError(t, err)
	assert.Equal(t, "F-2024-0001", number)

	number, err = allocator.NextInTx(sequences, 2025, now)
	require.NoError(t, err)
	assert.Equal(t, "F-2025-0001", number, "cambiar de año no continúa el consecutivo anterior")
}

func TestNumberAllocator_SiembraDesdeFacturasNumeradas(t *testing.T) {
	invoices := newFakeInvoiceRepo()
	require.NoError(t, invoices.Create(&entity.Invoice{
		ID:     "legacy",
		Status: entity.StatusIssued,
		Number: "F-2025-0117",
		Date:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}))
	sequences := newFakeSequenceRepo(invoices)
	allocator := billing.NewNumberAllocator()

	number, err := allocator.NextInTx(sequences, 2025, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "F-2025-0118", number)
}

func TestNumberAllocator_PersisteElConsecutivo(t *testing.T) {
	sequences := newFakeSequenceRepo(newFakeInvoiceRepo())
	allocator := billing.NewNumberAllocator()

	_, err := allocator.NextInTx(sequences, 2025, time.Now())
	require.NoError(t, err)

	seq, err := sequences.GetForUpdate(2025)
	require.NoError(t, err)
	require.NotNil(t, seq)
	assert.Equal(t, 1, seq.LastValue)
}
