package sequence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Prefixes for numbered documents.
const (
	OrderPrefix   = "ORD"
	InvoicePrefix = "INV"
)

// Repository hands out per-partition document sequences.
type Repository interface {
	NextWithTx(ctx context.Context, tx *sql.Tx, partitionKey string) (int64, error)
}

type repo struct{}

// NewRepository creates a new sequence repository. Sequences are always
// drawn inside the caller's transaction so a rolled back document does not
// consume a number.
func NewRepository() Repository {
	return &repo{}
}

func (r *repo) NextWithTx(ctx context.Context, tx *sql.Tx, partitionKey string) (int64, error) {
	var seq int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO document_sequences (partition_key, last_sequence, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (partition_key)
		DO UPDATE SET last_sequence = document_sequences.last_sequence + 1, updated_at = NOW()
		RETURNING last_sequence
	`, partitionKey).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", partitionKey, err)
	}
	return seq, nil
}

// PartitionKey is the sequence partition for prefix on the given day,
// e.g. "ORD-20261015".
func PartitionKey(prefix string, day time.Time) string {
	return prefix + "-" + day.Format("20060102")
}

// Format renders a document number such as "ORD-20261015-0007".
func Format(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%04d", PartitionKey(prefix, day), seq)
}
