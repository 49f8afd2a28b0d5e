package report

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

type SalesReport struct {
	OrderCount        int64           `json:"totalOrders"`
	TotalSales        decimal.Decimal `json:"totalSales"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

type Repository interface {
	OrderTotals(ctx context.Context) (count int64, sum decimal.Decimal, err error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

// OrderTotals aggregates over every persisted order.
func (r *repo) OrderTotals(ctx context.Context) (int64, decimal.Decimal, error) {
	var (
		count int64
		sum   decimal.Decimal
	)
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders`).Scan(&count, &sum)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("order totals: %w", err)
	}
	return count, sum, nil
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Sales reports the order count, total and average. With no orders the
// average is zero.
func (s *Service) Sales(ctx context.Context) (SalesReport, error) {
	count, sum, err := s.repo.OrderTotals(ctx)
	if err != nil {
		return SalesReport{}, err
	}

	avg := decimal.Zero
	if count > 0 {
		avg = sum.Div(decimal.NewFromInt(count)).Round(2)
	}
	return SalesReport{OrderCount: count, TotalSales: sum, AverageOrderValue: avg}, nil
}
