package notify

import (
	"context"

	"go.uber.org/zap"
)

// Fanout delivers to every sink in order. A failing sink is logged and
// skipped; OrderPlaced always returns nil.
type Fanout struct {
	sinks  []Sink
	logger *zap.Logger
}

func NewFanout(logger *zap.Logger, sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks, logger: logger}
}

func (f *Fanout) Name() string { return "fanout" }

func (f *Fanout) OrderPlaced(ctx context.Context, ev OrderPlaced) error {
	for _, s := range f.sinks {
		if err := s.OrderPlaced(ctx, ev); err != nil {
			f.logger.Warn("notification failed",
				zap.String("sink", s.Name()),
				zap.String("order_number", ev.OrderNumber),
				zap.Error(err),
			)
		}
	}
	return nil
}
