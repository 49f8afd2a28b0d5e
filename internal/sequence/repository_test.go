package sequence

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nextSQL = `INSERT INTO document_sequences (partition_key, last_sequence, updated_at)`

func TestNextWithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(nextSQL)).
		WithArgs("ORD-20261015").
		WillReturnRows(sqlmock.NewRows([]string{"last_sequence"}).AddRow(int64(7)))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	seq, err := NewRepository().NextWithTx(context.Background(), tx, "ORD-20261015")
	require.NoError(t, err)
	assert.Equal(t, int64(7), seq)

	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNextWithTx_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(nextSQL)).
		WithArgs("INV-20261015").
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	_, err = NewRepository().NextWithTx(context.Background(), tx, "INV-20261015")
	require.ErrorContains(t, err, "INV-20261015")

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFormat(t *testing.T) {
	day := time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "ORD-20261015", PartitionKey(OrderPrefix, day))
	assert.Equal(t, "ORD-20261015-0001", Format(OrderPrefix, day, 1))
	assert.Equal(t, "INV-20261015-0042", Format(InvoicePrefix, day, 42))
	assert.Equal(t, "ORD-20261015-12345", Format(OrderPrefix, day, 12345))
}
