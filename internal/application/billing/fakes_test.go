package billing_test

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/Libreria-api/internal/application/billing"
	"github.com/jhoicas/Libreria-api/internal/application/inventory"
	"github.com/jhoicas/Libreria-api/internal/domain"
	"github.com/jhoicas/Libreria-api/internal/domain/entity"
	"github.com/jhoicas/Libreria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria. El fakeTxRunner toma una instantánea antes de cada
// transacción y la restaura si el callback falla, para poder afirmar que los
// comandos son todo-o-nada igual que con PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type fakeBookRepo struct {
	books map[string]*entity.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[string]*entity.Book{}}
}

func (r *fakeBookRepo) Create(b *entity.Book) error {
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *fakeBookRepo) GetByID(id string) (*entity.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) GetForUpdate(id string) (*entity.Book, error) { return r.GetByID(id) }

func (r *fakeBookRepo) List() ([]*entity.Book, error) {
	out := make([]*entity.Book, 0, len(r.books))
	for _, b := range r.books {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *fakeBookRepo) Update(b *entity.Book) error {
	st, ok := r.books[b.ID]
	if !ok {
		return nil
	}
	st.Title = b.Title
	st.ListPrice = b.ListPrice
	st.Price = b.Price
	st.Discount = b.Discount
	st.UpdatedAt = b.UpdatedAt
	return nil
}

func (r *fakeBookRepo) UpdateQuantity(bookID string, quantity int64) error {
	if st, ok := r.books[bookID]; ok {
		st.Quantity = quantity
	}
	return nil
}

func (r *fakeBookRepo) Delete(id string) error {
	delete(r.books, id)
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	lines    map[string]*entity.LineItem
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: map[string]*entity.Invoice{},
		lines:    map[string]*entity.LineItem{},
	}
}

func (r *fakeInvoiceRepo) duplicateNumber(inv *entity.Invoice) bool {
	if inv.Number == "" {
		return false
	}
	for id, other := range r.invoices {
		if id != inv.ID && other.Number == inv.Number {
			return true
		}
	}
	return false
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	if r.duplicateNumber(inv) {
		return domain.ErrDuplicateNumber
	}
	cp := *inv
	cp.Lines = nil
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	cp.Lines = nil
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) { return r.GetByID(id) }

func (r *fakeInvoiceRepo) List() ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		cp := *inv
		cp.Lines = nil
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	if r.duplicateNumber(inv) {
		return domain.ErrDuplicateNumber
	}
	cp := *inv
	cp.Lines = nil
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	delete(r.invoices, id)
	for lineID, line := range r.lines {
		if line.InvoiceID == id {
			delete(r.lines, lineID)
		}
	}
	return nil
}

func (r *fakeInvoiceRepo) CreateLine(line *entity.LineItem) error {
	cp := *line
	r.lines[line.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetLineByID(id string) (*entity.LineItem, error) {
	line, ok := r.lines[id]
	if !ok {
		return nil, nil
	}
	cp := *line
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.LineItem, error) {
	var out []*entity.LineItem
	for _, line := range r.lines {
		if line.InvoiceID == invoiceID {
			cp := *line
			out = append(out, &cp)
		}
	}
	// Igual que el adaptador de PostgreSQL: orden por position.
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeInvoiceRepo) UpdateLine(line *entity.LineItem) error {
	cp := *line
	r.lines[line.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) DeleteLine(id string) error {
	delete(r.lines, id)
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func newFakeMovementRepo() *fakeMovementRepo { return &fakeMovementRepo{} }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByInvoice(invoiceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.InvoiceID == invoiceID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSequenceRepo struct {
	seqs     map[int]*entity.InvoiceSequence
	invoices *fakeInvoiceRepo
	// staleReads hace que las primeras lecturas de MaxIssuedSequence devuelvan 0
	// aunque existan facturas numeradas: simula la carrera en la que otra
	// transacción persiste su número después de nuestro escaneo.
	staleReads int
}

func newFakeSequenceRepo(invoices *fakeInvoiceRepo) *fakeSequenceRepo {
	return &fakeSequenceRepo{seqs: map[int]*entity.InvoiceSequence{}, invoices: invoices}
}

func (r *fakeSequenceRepo) GetForUpdate(year int) (*entity.InvoiceSequence, error) {
	seq, ok := r.seqs[year]
	if !ok {
		return nil, nil
	}
	cp := *seq
	return &cp, nil
}

func (r *fakeSequenceRepo) Upsert(seq *entity.InvoiceSequence) error {
	cp := *seq
	r.seqs[seq.Year] = &cp
	return nil
}

func (r *fakeSequenceRepo) MaxIssuedSequence(year int) (int, error) {
	if r.staleReads > 0 {
		r.staleReads--
		return 0, nil
	}
	prefix := fmt.Sprintf("F-%d-", year)
	max := 0
	for _, inv := range r.invoices.invoices {
		if !strings.HasPrefix(inv.Number, prefix) {
			continue
		}
		if n, err := strconv.Atoi(inv.Number[len(prefix):]); err == nil && n > max {
			max = n
		}
	}
	return max, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner con instantánea/restauración
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	books     *fakeBookRepo
	movements *fakeMovementRepo
	invoices  *fakeInvoiceRepo
	sequences *fakeSequenceRepo
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)
var _ billing.TxRunner = (*fakeTxRunner)(nil)

type txSnapshot struct {
	books     map[string]*entity.Book
	movements []*entity.StockMovement
	invoices  map[string]*entity.Invoice
	lines     map[string]*entity.LineItem
	seqs      map[int]*entity.InvoiceSequence
}

func (r *fakeTxRunner) snapshot() txSnapshot {
	s := txSnapshot{
		books:    map[string]*entity.Book{},
		invoices: map[string]*entity.Invoice{},
		lines:    map[string]*entity.LineItem{},
		seqs:     map[int]*entity.InvoiceSequence{},
	}
	for id, b := range r.books.books {
		cp := *b
		s.books[id] = &cp
	}
	for _, m := range r.movements.movements {
		cp := *m
		s.movements = append(s.movements, &cp)
	}
	for id, inv := range r.invoices.invoices {
		cp := *inv
		s.invoices[id] = &cp
	}
	for id, line := range r.invoices.lines {
		cp := *line
		s.lines[id] = &cp
	}
	for year, seq := range r.sequences.seqs {
		cp := *seq
		s.seqs[year] = &cp
	}
	return s
}

func (r *fakeTxRunner) restore(s txSnapshot) {
	r.books.books = s.books
	r.movements.movements = s.movements
	r.invoices.invoices = s.invoices
	r.invoices.lines = s.lines
	r.sequences.seqs = s.seqs
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	bookRepo repository.BookRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	snap := r.snapshot()
	if err := fn(r.books, r.movements); err != nil {
		r.restore(snap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunInvoice(ctx context.Context, fn func(
	bookRepo repository.BookRepository,
	movementRepo repository.StockMovementRepository,
	invoiceRepo repository.InvoiceRepository,
	sequenceRepo repository.InvoiceSequenceRepository,
) error) error {
	snap := r.snapshot()
	if err := fn(r.books, r.movements, r.invoices, r.sequences); err != nil {
		r.restore(snap)
		return err
	}
	return nil
}
