package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/sequence"
)

const DefaultDueDays = 30

var (
	ErrNotFound    = errors.New("invoice not found")
	ErrAlreadyPaid = errors.New("invoice already paid")
)

// Renderer displays an issued invoice.
type Renderer interface {
	RenderInvoice(inv *Invoice) error
}

type Service struct {
	invoices Repository
	seq      sequence.Repository
	renderer Renderer
	dueDays  int
}

func NewService(invoices Repository, seq sequence.Repository, renderer Renderer, dueDays int) *Service {
	if dueDays <= 0 {
		dueDays = DefaultDueDays
	}
	return &Service{invoices: invoices, seq: seq, renderer: renderer, dueDays: dueDays}
}

// IssueWithTx numbers and stores the invoice for an order inside tx. Amount
// and total both carry the order total.
func (s *Service) IssueWithTx(ctx context.Context, tx *sql.Tx, src Source) (*Invoice, error) {
	n, err := s.seq.NextWithTx(ctx, tx, sequence.PartitionKey(sequence.InvoicePrefix, src.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("issue invoice: %w", err)
	}

	inv := &Invoice{
		OrderID:   src.OrderID,
		Number:    sequence.Format(sequence.InvoicePrefix, src.CreatedAt, n),
		Status:    StatusPending,
		Amount:    src.Total,
		Tax:       src.Tax,
		Total:     src.Total,
		DueDate:   src.CreatedAt.AddDate(0, 0, s.dueDays),
		CreatedAt: src.CreatedAt,
	}
	if err := s.invoices.CreateWithTx(ctx, tx, inv); err != nil {
		return nil, fmt.Errorf("issue invoice for %s: %w", src.OrderNumber, err)
	}
	return inv, nil
}

// Render only displays the invoice. It never touches the store.
func (s *Service) Render(inv *Invoice) error {
	if s.renderer == nil || inv == nil {
		return nil
	}
	return s.renderer.RenderInvoice(inv)
}

func (s *Service) GetByOrder(ctx context.Context, orderID int64) (*Invoice, error) {
	return s.invoices.GetByOrder(ctx, orderID)
}

// MarkPaid claims the order's Pending invoice as Paid. Only one caller can
// win the claim; the rest get ErrAlreadyPaid.
func (s *Service) MarkPaid(ctx context.Context, orderID int64) error {
	ok, err := s.invoices.UpdateStatus(ctx, orderID, StatusPending, StatusPaid)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	inv, err := s.invoices.GetByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if inv == nil {
		return ErrNotFound
	}
	return ErrAlreadyPaid
}

// Reopen returns a Paid invoice to Pending, for a payment that did not go
// through after MarkPaid.
func (s *Service) Reopen(ctx context.Context, orderID int64) error {
	ok, err := s.invoices.UpdateStatus(ctx, orderID, StatusPaid, StatusPending)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("reopen invoice for order %d: not paid", orderID)
	}
	return nil
}
