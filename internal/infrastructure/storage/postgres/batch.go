package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// BatchQuery is one statement of a batch.
type BatchQuery struct {
	SQL  string
	Args []any

	// ExpectRow makes the batch fail with onMissing when the statement affects no row.
	ExpectRow bool
	onMissing func() error
}

// BatchExecutor sends staged statements in a single round-trip.
type BatchExecutor struct {
	txManager *TxManager
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(txManager *TxManager) *BatchExecutor {
	return &BatchExecutor{txManager: txManager}
}

// ExecuteBatch executes queries in order inside the transaction carried by ctx.
func (e *BatchExecutor) ExecuteBatch(ctx context.Context, queries []BatchQuery) error {
	tx := e.txManager.GetTx(ctx)
	if tx == nil {
		return fmt.Errorf("ExecuteBatch requires transaction context")
	}

	batch := &pgx.Batch{}
	for _, q := range queries {
		batch.Queue(q.SQL, q.Args...)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i, q := range queries {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("batch statement %d: %w", i, err)
		}
		if q.ExpectRow && tag.RowsAffected() == 0 && q.onMissing != nil {
			return q.onMissing()
		}
	}

	return nil
}
