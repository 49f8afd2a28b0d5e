package invoice

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
)

var invoiceColumns = []string{
	"id", "order_id", "invoice_number", "status", "amount", "tax_amount", "total_amount", "due_date", "created_at",
}

func TestCreateWithTx_SetsID(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	created := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	inv := &Invoice{
		OrderID:   7,
		Number:    "INV-20261015-0001",
		Status:    StatusPending,
		Amount:    decimal.RequireFromString("2202.36"),
		Tax:       decimal.RequireFromString("162.40"),
		Total:     decimal.RequireFromString("2202.36"),
		DueDate:   created.AddDate(0, 0, 30),
		CreatedAt: created,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO invoices`)).
		WithArgs(int64(7), "INV-20261015-0001", "Pending", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), inv.DueDate, created).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectCommit()

	tx, err := sqlDB.Begin()
	require.NoError(t, err)
	require.NoError(t, NewRepository(sqlDB).CreateWithTx(context.Background(), tx, inv))
	require.NoError(t, tx.Commit())

	assert.Equal(t, int64(3), inv.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTx_DuplicateNumber(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO invoices`)).
		WillReturnError(&pq.Error{Code: "23505", Table: "invoices", Constraint: "invoices_invoice_number_key"})
	mock.ExpectRollback()

	tx, err := sqlDB.Begin()
	require.NoError(t, err)
	err = NewRepository(sqlDB).CreateWithTx(context.Background(), tx, &Invoice{Number: "INV-20261015-0001"})
	require.NoError(t, tx.Rollback())

	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrUniqueViolation))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByOrder(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	due := time.Date(2026, 11, 14, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM invoices`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(invoiceColumns).
			AddRow(int64(3), int64(7), "INV-20261015-0001", "Paid", "2202.36", "162.40", "2202.36", due, due.AddDate(0, 0, -30)))

	inv, err := NewRepository(sqlDB).GetByOrder(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, StatusPaid, inv.Status)
	assert.Equal(t, "INV-20261015-0001", inv.Number)
	assert.True(t, decimal.RequireFromString("162.40").Equal(inv.Tax))
	assert.Equal(t, due, inv.DueDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByOrder_NotFound(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM invoices`)).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(invoiceColumns))

	inv, err := NewRepository(sqlDB).GetByOrder(context.Background(), 8)
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestUpdateStatus_OnlyFromExpectedStatus(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	const q = `UPDATE invoices SET status = $3 WHERE order_id = $1 AND status = $2`
	mock.ExpectExec(regexp.QuoteMeta(q)).
		WithArgs(int64(7), "Pending", "Paid").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(q)).
		WithArgs(int64(7), "Pending", "Paid").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(sqlDB)

	ok, err := repo.UpdateStatus(context.Background(), 7, StatusPending, StatusPaid)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatus(context.Background(), 7, StatusPending, StatusPaid)
	require.NoError(t, err)
	assert.False(t, ok, "already paid")
	require.NoError(t, mock.ExpectationsWereMet())
}
