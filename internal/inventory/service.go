package inventory

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

var ErrNegativeStock = errors.New("stock level cannot be negative")

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Stock(ctx context.Context, productID int64) (StockItem, error) {
	return s.repo.Get(ctx, productID)
}

func (s *Service) UpdateStock(ctx context.Context, productID int64, available int) error {
	if available < 0 {
		return ErrNegativeStock
	}
	if err := s.repo.SetAvailable(ctx, productID, available); err != nil {
		return err
	}
	s.logger.Info("stock updated", zap.Int64("product_id", productID), zap.Int("available", available))
	return nil
}
