package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxManager runs callbacks in a transaction carried by the context.
// Repositories pick it up through QuerierFromCtx. Nested RunInTx calls
// join the outer transaction.
type TxManager struct {
	db DB
}

// NewTxManager creates a TxManager over a pool or any DB.
func NewTxManager(db DB) *TxManager {
	return &TxManager{db: db}
}

// InTx reports whether ctx carries a transaction started by RunInTx.
func (m *TxManager) InTx(ctx context.Context) bool { return InTx(ctx) }

// RunInTx executes fn at Read Committed. fn's error, a commit failure or a
// panic rolls the transaction back; panics are re-raised afterwards.
// Rollback ignores cancellation of ctx so a cancelled scan still releases
// its row locks.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = rollback(ctx, tx)
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := rollback(ctx, tx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		_ = rollback(ctx, tx)
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(context.WithoutCancel(ctx))
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}
