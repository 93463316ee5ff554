package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/spend-rollup/internal/currencyutils"
	"fjacquet/spend-rollup/internal/logging"
	"fjacquet/spend-rollup/internal/models"
	"fjacquet/spend-rollup/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeCSV(t, `ID,Date,Amount,Category,Description
t1,2024-01-15, 20.50 ,Food;Lunch,Canteen
,2024-01-20,-100,,Salary
t3,someday,abc,Misc,
`)
	logger := logging.NewMockLogger()

	txs, err := NewLoader(logger, false).LoadFile(path)
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, models.Transaction{ID: "t1", Date: "2024-01-15", Amount: "20.50", Category: "Food", Description: "Canteen"}, txs[0])
	assert.NotEmpty(t, txs[1].ID, "missing ids are generated")
	assert.Equal(t, models.CategoryUncategorized, txs[1].Category)
	assert.Equal(t, "abc", txs[2].Amount, "lenient mode keeps unparsable rows")
	assert.True(t, logger.HasEntry("INFO", "Loaded import file"))
}

func TestLoader_Strict(t *testing.T) {
	path := writeCSV(t, "ID,Date,Amount,Category,Description\nt1,2024-01-15,abc,Food,\n")

	_, err := NewLoader(logging.NewMockLogger(), true).LoadFile(path)

	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "Amount", parseErr.Field)
	assert.Contains(t, err.Error(), "row 1")
}

func TestLoader_StrictCanonicalAmounts(t *testing.T) {
	path := writeCSV(t, "ID,Date,Amount,Category,Description\nt1,2024-01-15,CHF 1'234.50,Food,\nt2,2024-01-16,\"1.234,56\",Rent,\n")

	txs, err := NewLoader(logging.NewMockLogger(), true).LoadFile(path)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "1234.5", txs[0].Amount)
	assert.Equal(t, "1234.56", txs[1].Amount)
}

func TestLoader_StrictOutOfRangeAmount(t *testing.T) {
	path := writeCSV(t, "ID,Date,Amount,Category,Description\nt1,2024-01-15,1e10000000,Food,\n")

	_, err := NewLoader(logging.NewMockLogger(), true).LoadFile(path)

	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "Amount", parseErr.Field)
	assert.ErrorIs(t, err, currencyutils.ErrAmountOutOfRange)
}

func TestLoader_StrictBadDate(t *testing.T) {
	path := writeCSV(t, "ID,Date,Amount,Category,Description\nt1,someday,1,Food,\n")

	_, err := NewLoader(logging.NewMockLogger(), true).LoadFile(path)

	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "Date", parseErr.Field)
}

func TestLoader_InvalidFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"missing amount", "ID,Date,Category\nt1,2024-01-15,Food\n"},
		{"missing date", "ID,Amount\nt1,10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(logging.NewMockLogger(), false).LoadFile(writeCSV(t, tt.content))
			var formatErr *parsererror.InvalidFormatError
			assert.True(t, errors.As(err, &formatErr), "got %v", err)
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader(logging.NewMockLogger(), false).LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestValidateUser(t *testing.T) {
	assert.NoError(t, ValidateUser("in.csv", "42"))

	var validationErr *parsererror.ValidationError
	assert.True(t, errors.As(ValidateUser("in.csv", "  "), &validationErr))
}
