package store

import (
	"context"
	"path/filepath"
	"testing"

	"fjacquet/spend-rollup/internal/logging"
	"fjacquet/spend-rollup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `users:
  - id: 42
    transactions:
      - id: t1
        date: 2024-01-15
        amount: 20.50
        category: Food
      - id: t2
        date: "2024-01-20T10:00:00Z"
        amount: "-100"
        category: [Salary, Income]
        description: January pay
  - id: "7"
    transactions: []
`

func TestParseYAMLSource(t *testing.T) {
	src, err := ParseYAMLSource([]byte(sampleYAML))
	require.NoError(t, err)
	ctx := context.Background()

	txs, err := src.Transactions(ctx, "42")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, models.Transaction{ID: "t1", Date: "2024-01-15", Amount: "20.50", Category: "Food"}, txs[0])
	assert.Equal(t, "Salary", txs[1].Category, "a list of categories is flattened to its first entry")
	assert.Equal(t, "-100", txs[1].Amount)

	empty, err := src.Transactions(ctx, "7")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = src.Transactions(ctx, "99")
	assert.ErrorIs(t, err, ErrUserNotFound)

	users, err := src.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"42", "7"}, users)
}

func TestParseYAMLSource_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "users: [\n"},
		{"missing id", "users:\n  - transactions: []\n"},
		{"category map", "users:\n  - id: 1\n    transactions:\n      - category: {a: b}\n"},
		{"amount list", "users:\n  - id: 1\n    transactions:\n      - amount: [1, 2]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAMLSource([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadYAMLSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.yaml")
	writeFile(t, path, sampleYAML)

	src, err := LoadYAMLSource(path, logging.NewMockLogger())
	require.NoError(t, err)
	users, err := src.Users(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = LoadYAMLSource(filepath.Join(t.TempDir(), "missing.yaml"), logging.NewMockLogger())
	assert.Error(t, err)
}
