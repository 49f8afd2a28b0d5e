package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
)

type Repository interface {
	GetByCustomer(ctx context.Context, customerID int64) (*Cart, error)
	LockByCustomerWithTx(ctx context.Context, tx *sql.Tx, customerID int64) (*Cart, error)
	Create(ctx context.Context, customerID int64) (int64, error)
	AddItemWithTx(ctx context.Context, tx *sql.Tx, cartID int64, it Item) (int64, error)
	UpdateItemWithTx(ctx context.Context, tx *sql.Tx, itemID int64, quantity int, unitPrice, total decimal.Decimal) error
	RemoveItemWithTx(ctx context.Context, tx *sql.Tx, cartID, productID int64) (bool, error)
	ClearItemsWithTx(ctx context.Context, tx *sql.Tx, cartID int64, itemIDs []int64) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

// GetByCustomer loads the customer's cart with its lines. Both reads share
// one connection. Returns nil, nil when the customer has no cart.
func (r *repo) GetByCustomer(ctx context.Context, customerID int64) (*Cart, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Close()

	return load(ctx, conn, `SELECT id FROM carts WHERE customer_id = $1`, customerID)
}

// LockByCustomerWithTx is GetByCustomer under a row lock on the cart. Every
// write to a cart's lines goes through it, so writers for one customer
// serialize until tx ends.
func (r *repo) LockByCustomerWithTx(ctx context.Context, tx *sql.Tx, customerID int64) (*Cart, error) {
	return load(ctx, tx, `SELECT id FROM carts WHERE customer_id = $1 FOR UPDATE`, customerID)
}

func load(ctx context.Context, q db.DBTX, cartQuery string, customerID int64) (*Cart, error) {
	c := Cart{CustomerID: customerID, Items: []Item{}}
	err := q.QueryRowContext(ctx, cartQuery, customerID).Scan(&c.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cart for customer %d: %w", customerID, err)
	}

	rows, err := q.QueryContext(ctx, `
SELECT ci.id, ci.product_id, p.name, ci.quantity, ci.unit_price, ci.total_price
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.id`, c.ID)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		c.Items = append(c.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}

	return &c, nil
}

// Create returns the id of the customer's cart, creating it if needed.
func (r *repo) Create(ctx context.Context, customerID int64) (int64, error) {
	const q = `
INSERT INTO carts (customer_id)
VALUES ($1)
ON CONFLICT (customer_id) DO UPDATE SET updated_at = NOW()
RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(ctx, q, customerID).Scan(&id); err != nil {
		return 0, fmt.Errorf("create cart: %w", db.Classify(err))
	}
	return id, nil
}

func (r *repo) AddItemWithTx(ctx context.Context, tx *sql.Tx, cartID int64, it Item) (int64, error) {
	const q = `
INSERT INTO cart_items (cart_id, product_id, quantity, unit_price, total_price)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	var id int64
	if err := tx.QueryRowContext(ctx, q, cartID, it.ProductID, it.Quantity, it.UnitPrice, it.Total).Scan(&id); err != nil {
		return 0, fmt.Errorf("add cart item: %w", db.Classify(err))
	}
	return id, nil
}

func (r *repo) UpdateItemWithTx(ctx context.Context, tx *sql.Tx, itemID int64, quantity int, unitPrice, total decimal.Decimal) error {
	const q = `UPDATE cart_items SET quantity = $2, unit_price = $3, total_price = $4 WHERE id = $1`

	if _, err := tx.ExecContext(ctx, q, itemID, quantity, unitPrice, total); err != nil {
		return fmt.Errorf("update cart item %d: %w", itemID, err)
	}
	return nil
}

// RemoveItemWithTx deletes the line for productID and reports whether one
// existed.
func (r *repo) RemoveItemWithTx(ctx context.Context, tx *sql.Tx, cartID, productID int64) (bool, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
	if err != nil {
		return false, fmt.Errorf("remove cart item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove cart item: %w", err)
	}
	return n > 0, nil
}

// ClearItemsWithTx deletes the given lines of the cart. Lines not listed
// stay, and so does the cart row.
func (r *repo) ClearItemsWithTx(ctx context.Context, tx *sql.Tx, cartID int64, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	const q = `DELETE FROM cart_items WHERE cart_id = $1 AND id = ANY($2)`
	if _, err := tx.ExecContext(ctx, q, cartID, pq.Array(itemIDs)); err != nil {
		return fmt.Errorf("clear cart %d: %w", cartID, err)
	}
	return nil
}
