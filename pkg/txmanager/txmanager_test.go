package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkhub/parkhub-booking/pkg/dbmetrics"
)

// fakeBeginner выдает транзакции, коммит которых завершается
// заранее заданной ошибкой (по одной на попытку)
type fakeBeginner struct {
	commitErrs []error
	begins     int
	rollbacks  int
}

func (b *fakeBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	attempt := b.begins
	b.begins++
	return &fakeTx{beginner: b, attempt: attempt}, nil
}

type fakeTx struct {
	beginner *fakeBeginner
	attempt  int
}

func (t *fakeTx) QueryRowContext(_ context.Context, _ string, _ ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) QueryContext(_ context.Context, _ string, _ ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) ExecContext(_ context.Context, _ string, _ ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) Commit() error {
	if t.attempt < len(t.beginner.commitErrs) {
		return t.beginner.commitErrs[t.attempt]
	}
	return nil
}

func (t *fakeTx) Rollback() error {
	t.beginner.rollbacks++
	return nil
}

func serializationErr() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies among transactions"}
}

func TestDoSerializable_Success(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, beginner.begins)
}

func TestDoSerializable_RetriesAfterCommitConflict(t *testing.T) {
	beginner := &fakeBeginner{commitErrs: []error{serializationErr()}}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls, "fn должна быть перезапущена в новой транзакции")
	assert.Equal(t, 2, beginner.begins)
}

func TestDoSerializable_RetriesAfterQueryConflict(t *testing.T) {
	// Конфликт может всплыть и до коммита, из запроса внутри fn
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("query failed: %w", serializationErr())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, beginner.rollbacks, "неудачная попытка должна быть откачена")
}

func TestDoSerializable_ExhaustedRetries(t *testing.T) {
	beginner := &fakeBeginner{commitErrs: []error{
		serializationErr(), serializationErr(), serializationErr(), serializationErr(),
	}}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, 1+serializationRetries, calls)
}

func TestDoSerializable_NoRetryOnOtherCommitErrors(t *testing.T) {
	beginner := &fakeBeginner{commitErrs: []error{errors.New("connection reset")}}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, 1, calls)
}

func TestDoSerializable_FnErrorRollsBackWithoutRetry(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	sentinel := errors.New("business rule violated")
	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, beginner.rollbacks)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.False(t, IsSerializationFailure(nil))
	assert.False(t, IsSerializationFailure(errors.New("boom")))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.True(t, IsSerializationFailure(serializationErr()))
	assert.True(t, IsSerializationFailure(fmt.Errorf("commit transaction: %w", serializationErr())))
}
