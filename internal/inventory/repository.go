package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
)

var ErrNotFound = errors.New("not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	Get(ctx context.Context, productID int64) (StockItem, error)
	SetAvailable(ctx context.Context, productID int64, available int) error
}

// PostgresRepository reads and writes the stock column of products.
type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Get(ctx context.Context, productID int64) (StockItem, error) {
	var item StockItem
	row := r.pool.QueryRow(ctx, `SELECT id, stock_quantity FROM products WHERE id=$1`, productID)
	if err := row.Scan(&item.ProductID, &item.Available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StockItem{}, ErrNotFound
		}
		return StockItem{}, fmt.Errorf("get stock %d: %w", productID, err)
	}
	return item, nil
}

// SetAvailable overwrites the stock level. Unknown products give ErrNotFound
// and a negative level is rejected by the store as a check violation.
func (r *PostgresRepository) SetAvailable(ctx context.Context, productID int64, available int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET stock_quantity=$2, updated_at=now() WHERE id=$1`,
		productID, available)
	if err != nil {
		return fmt.Errorf("set stock %d: %w", productID, db.Classify(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
