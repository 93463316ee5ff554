package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"fjacquet/spend-rollup/internal/logging"
	"fjacquet/spend-rollup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedSource_HitsInnerOnce(t *testing.T) {
	inner := NewMockSource(map[string][]models.Transaction{"42": {{ID: "t1", Amount: "10"}}})
	src := NewCachedSource(inner, time.Minute, logging.NewMockLogger())
	ctx := context.Background()

	first, err := src.Transactions(ctx, "42")
	require.NoError(t, err)
	first[0].Amount = "mutated"

	second, err := src.Transactions(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "10", second[0].Amount)
	assert.Equal(t, 1, inner.Calls)
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	inner := NewMockSource(nil)
	src := NewCachedSource(inner, time.Minute, logging.NewMockLogger())
	ctx := context.Background()

	_, err := src.Transactions(ctx, "42")
	assert.ErrorIs(t, err, ErrUserNotFound)

	inner.Data["42"] = []models.Transaction{{ID: "t1"}}
	txs, err := src.Transactions(ctx, "42")
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestCachedSource_ImportInvalidates(t *testing.T) {
	inner := NewMockSource(map[string][]models.Transaction{"42": {{ID: "t1", Amount: "10"}}})
	src := NewCachedSource(inner, time.Minute, logging.NewMockLogger())
	ctx := context.Background()

	_, err := src.Transactions(ctx, "42")
	require.NoError(t, err)
	_, err = src.ImportTransactions(ctx, "42", []models.Transaction{{ID: "t2", Amount: "5"}})
	require.NoError(t, err)

	txs, err := src.Transactions(ctx, "42")
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

type readOnlySource struct{ TransactionSource }

func TestCachedSource_ImportReadOnly(t *testing.T) {
	src := NewCachedSource(readOnlySource{NewMockSource(nil)}, time.Minute, logging.NewMockLogger())

	_, err := src.ImportTransactions(context.Background(), "42", nil)
	assert.True(t, errors.Is(err, ErrReadOnly))
}

func TestCachedSource_Users(t *testing.T) {
	inner := NewMockSource(map[string][]models.Transaction{"b": nil, "a": nil})
	src := NewCachedSource(inner, time.Minute, logging.NewMockLogger())

	users, err := src.Users(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, users)
}
