package notify

import (
	"context"

	"go.uber.org/zap"
)

// AuditSink records one structured line per placed order.
type AuditSink struct {
	logger *zap.Logger
}

func NewAuditSink(logger *zap.Logger) *AuditSink {
	return &AuditSink{logger: logger.Named("audit")}
}

func (s *AuditSink) Name() string { return "audit" }

func (s *AuditSink) OrderPlaced(_ context.Context, ev OrderPlaced) error {
	s.logger.Info("order processed",
		zap.String("order_number", ev.OrderNumber),
		zap.Int64("order_id", ev.OrderID),
		zap.Int64("customer_id", ev.CustomerID),
		zap.String("total", ev.Total.StringFixed(2)),
	)
	return nil
}
