package payment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Method string

const (
	MethodCreditCard   Method = "credit_card"
	MethodPayPal       Method = "paypal"
	MethodBankTransfer Method = "bank_transfer"
)

var ErrUnknownMethod = errors.New("unknown payment method")

type Charge struct {
	OrderID     int64
	OrderNumber string
	Amount      decimal.Decimal
}

type Receipt struct {
	Reference   string          `json:"reference"`
	Method      Method          `json:"method"`
	OrderNumber string          `json:"orderNumber"`
	Amount      decimal.Decimal `json:"amount"`
	ProcessedAt time.Time       `json:"processedAt"`
}

// Processor charges an order through one payment method.
type Processor interface {
	Method() Method
	Process(ctx context.Context, c Charge) (Receipt, error)
}

// simulated processors only log the charge.
type simulated struct {
	method Method
	label  string
	logger *zap.Logger
	now    func() time.Time
}

func (p *simulated) Method() Method { return p.method }

func (p *simulated) Process(_ context.Context, c Charge) (Receipt, error) {
	p.logger.Info("processing "+p.label,
		zap.String("order_number", c.OrderNumber),
		zap.String("amount", c.Amount.StringFixed(2)),
	)
	return Receipt{
		Reference:   uuid.NewString(),
		Method:      p.method,
		OrderNumber: c.OrderNumber,
		Amount:      c.Amount,
		ProcessedAt: p.now().UTC(),
	}, nil
}

func NewCreditCard(logger *zap.Logger) Processor {
	return &simulated{method: MethodCreditCard, label: "credit card payment", logger: logger, now: time.Now}
}

func NewPayPal(logger *zap.Logger) Processor {
	return &simulated{method: MethodPayPal, label: "PayPal payment", logger: logger, now: time.Now}
}

func NewBankTransfer(logger *zap.Logger) Processor {
	return &simulated{method: MethodBankTransfer, label: "bank transfer", logger: logger, now: time.Now}
}

// Registry dispatches charges to the processor registered for a method.
type Registry struct {
	processors map[Method]Processor
}

func NewRegistry(processors ...Processor) *Registry {
	r := &Registry{processors: make(map[Method]Processor, len(processors))}
	for _, p := range processors {
		r.processors[p.Method()] = p
	}
	return r
}

// DefaultRegistry holds the credit card, PayPal and bank transfer processors.
func DefaultRegistry(logger *zap.Logger) *Registry {
	return NewRegistry(NewCreditCard(logger), NewPayPal(logger), NewBankTransfer(logger))
}

func (r *Registry) Process(ctx context.Context, method Method, c Charge) (Receipt, error) {
	p, ok := r.processors[method]
	if !ok {
		return Receipt{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return p.Process(ctx, c)
}

func (r *Registry) Methods() []Method {
	out := make([]Method, 0, len(r.processors))
	for m := range r.processors {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
