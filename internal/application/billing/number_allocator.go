package billing

import (
	"time"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// NumberAllocator asigna números oficiales F-<año>-NNNN exactamente una vez.
// NextInTx debe ejecutarse dentro de la misma transacción que pasa la factura
// a emitida: bloquea la fila del consecutivo del año (FOR UPDATE), de modo que
// dos emisiones concurrentes del mismo año se serialicen y no calculen el
// mismo "siguiente". La constraint UNIQUE sobre invoices.number cubre el resto:
// una colisión con datos previos aflora como ErrDuplicateNumber y el comando
// de emisión se reintenta completo una vez.
type NumberAllocator struct{}

// NewNumberAllocator construye el asignador.
func NewNumberAllocator() *NumberAllocator {
	return &NumberAllocator{}
}

// NextInTx reserva y devuelve el siguiente número oficial para el año.
// Si el año no tiene consecutivo todavía, lo siembra con el mayor secuencial
// ya persistido en facturas de ese año (datos migrados), y arranca en 1 si no hay.
func (a *NumberAllocator) NextInTx(
	sequenceRepo repository.InvoiceSequenceRepository,
	year int,
	now time.Time,
) (string, error) {
	seq, err := sequenceRepo.GetForUpdate(year)
	if err != nil {
		return "", err
	}
	if seq == nil {
		last, err := sequenceRepo.MaxIssuedSequence(year)
		if err != nil {
			return "", err
		}
		seq = &entity.InvoiceSequence{Year: year, LastValue: last}
	}
	seq.LastValue++
	seq.UpdatedAt = now
	if err := sequenceRepo.Upsert(seq); err != nil {
		return "", err
	}
	return entity.OfficialNumber(year, seq.LastValue), nil
}
