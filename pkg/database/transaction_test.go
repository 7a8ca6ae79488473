package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ====================================
// FAKES
// ====================================

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

// ====================================
// TESTS
// ====================================

func TestWithTransaction_Commits(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	err := WithTransaction(context.Background(), b, func(pgx.Tx) error { return nil })
	require.NoError(t, err)
	assert.True(t, b.tx.committed)
	assert.False(t, b.tx.rolledBack)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	boom := errors.New("boom")

	err := WithTransaction(context.Background(), b, func(pgx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, b.tx.rolledBack)
	assert.False(t, b.tx.committed)
}

func TestWithTransaction_RollsBackOnPanic(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	assert.Panics(t, func() {
		_ = WithTransaction(context.Background(), b, func(pgx.Tx) error { panic("kaboom") })
	})
	assert.True(t, b.tx.rolledBack)
}

func TestWithTransaction_BeginFails(t *testing.T) {
	b := &fakeBeginner{err: errors.New("no conn")}

	err := WithTransaction(context.Background(), b, func(pgx.Tx) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorContains(t, err, "failed to begin transaction")
}

func TestWithTransaction_CommitFails(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("serialization")}}

	err := WithTransaction(context.Background(), b, func(pgx.Tx) error { return nil })
	assert.ErrorContains(t, err, "failed to commit transaction")
	assert.True(t, b.tx.rolledBack)
}

func TestWithTransactionResult(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	got, err := WithTransactionResult(context.Background(), b, func(pgx.Tx) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	b = &fakeBeginner{tx: &fakeTx{}}
	got, err = WithTransactionResult(context.Background(), b, func(pgx.Tx) (int, error) { return 7, errors.New("nope") })
	assert.Error(t, err)
	assert.Zero(t, got)
}
