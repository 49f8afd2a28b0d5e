package report

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const totalsSQL = `SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders`

func TestSales(t *testing.T) {
	tests := map[string]struct {
		count   int64
		sum     string
		wantAvg string
	}{
		"no orders": {count: 0, sum: "0", wantAvg: "0.00"},
		"one order": {count: 1, sum: "2202.36", wantAvg: "2202.36"},
		"three":     {count: 3, sum: "100.00", wantAvg: "33.33"},
		"rounds up": {count: 3, sum: "200.00", wantAvg: "66.67"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			sqlDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer sqlDB.Close()

			mock.ExpectQuery(regexp.QuoteMeta(totalsSQL)).
				WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(tt.count, tt.sum))

			r, err := NewService(NewRepository(sqlDB)).Sales(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.count, r.OrderCount)
			assert.True(t, decimal.RequireFromString(tt.sum).Equal(r.TotalSales))
			assert.Equal(t, tt.wantAvg, r.AverageOrderValue.StringFixed(2))
		})
	}
}

func TestSales_Error(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectQuery(regexp.QuoteMeta(totalsSQL)).WillReturnError(errors.New("timeout"))

	_, err = NewService(NewRepository(sqlDB)).Sales(context.Background())
	require.ErrorContains(t, err, "order totals")
}
