package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/customer"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
)

// AddOutcome reports what AddToCart did. Missing entities are outcomes,
// not errors.
type AddOutcome string

const (
	AddOutcomeAdded            AddOutcome = "added"
	AddOutcomeMerged           AddOutcome = "merged"
	AddOutcomeCustomerNotFound AddOutcome = "customer_not_found"
	AddOutcomeCartNotFound     AddOutcome = "cart_not_found"
	AddOutcomeProductNotFound  AddOutcome = "product_not_found"
)

type CustomerFinder interface {
	Get(ctx context.Context, id int64) (*customer.Customer, error)
}

type ProductFinder interface {
	Get(ctx context.Context, id int64) (*catalog.Product, error)
}

type Service struct {
	db        db.TxBeginner
	carts     Repository
	customers CustomerFinder
	products  ProductFinder
	logger    *zap.Logger
}

func NewService(conn db.TxBeginner, carts Repository, customers CustomerFinder, products ProductFinder, logger *zap.Logger) *Service {
	return &Service{db: conn, carts: carts, customers: customers, products: products, logger: logger}
}

// CreateCart returns the customer's cart id, creating the cart on first use.
func (s *Service) CreateCart(ctx context.Context, customerID int64) (int64, error) {
	return s.carts.Create(ctx, customerID)
}

func (s *Service) GetCart(ctx context.Context, customerID int64) (*Cart, error) {
	return s.carts.GetByCustomer(ctx, customerID)
}

// AddToCart adds quantity of a product to the customer's cart. An existing
// line for the same product is merged: quantities add up and the unit price
// is refreshed from the catalog. Quantity is not validated. The cart row
// stays locked until the line is written.
func (s *Service) AddToCart(ctx context.Context, customerID, productID int64, quantity int) (AddOutcome, error) {
	cust, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return "", err
	}
	if cust == nil {
		return AddOutcomeCustomerNotFound, nil
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return "", err
	}

	var outcome AddOutcome
	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		c, err := s.carts.LockByCustomerWithTx(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if c == nil {
			outcome = AddOutcomeCartNotFound
			return nil
		}
		if p == nil {
			outcome = AddOutcomeProductNotFound
			return nil
		}

		if existing := c.Find(productID); existing != nil {
			newQty := existing.Quantity + quantity
			if err := s.carts.UpdateItemWithTx(ctx, tx, existing.ID, newQty, p.Price, lineTotal(p.Price, newQty)); err != nil {
				return err
			}
			s.logger.Debug("cart line merged",
				zap.Int64("cart_id", c.ID),
				zap.Int64("product_id", productID),
				zap.Int("quantity", newQty),
			)
			outcome = AddOutcomeMerged
			return nil
		}

		item := Item{
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: p.Price,
			Total:     lineTotal(p.Price, quantity),
		}
		if _, err := s.carts.AddItemWithTx(ctx, tx, c.ID, item); err != nil {
			return err
		}
		s.logger.Debug("cart line added",
			zap.Int64("cart_id", c.ID),
			zap.Int64("product_id", productID),
			zap.Int("quantity", quantity),
		)
		outcome = AddOutcomeAdded
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// RemoveFromCart reports false when the customer has no cart or the cart
// has no line for the product.
func (s *Service) RemoveFromCart(ctx context.Context, customerID, productID int64) (bool, error) {
	var removed bool
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		c, err := s.carts.LockByCustomerWithTx(ctx, tx, customerID)
		if err != nil || c == nil {
			return err
		}
		removed, err = s.carts.RemoveItemWithTx(ctx, tx, c.ID, productID)
		return err
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// CartTotal is zero for a customer without a cart.
func (s *Service) CartTotal(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	c, err := s.carts.GetByCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cart total: %w", err)
	}
	if c == nil {
		return decimal.Zero, nil
	}
	return c.Total(), nil
}

func lineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
