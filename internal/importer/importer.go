// Package importer reads transaction files destined for a writable source.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/spend-rollup/internal/common"
	"fjacquet/spend-rollup/internal/currencyutils"
	"fjacquet/spend-rollup/internal/dateutils"
	"fjacquet/spend-rollup/internal/logging"
	"fjacquet/spend-rollup/internal/models"
	"fjacquet/spend-rollup/internal/parsererror"
	"fjacquet/spend-rollup/internal/validation"

	"github.com/shopspring/decimal"
)

const expectedFormat = "CSV with ID, Date, Amount, Category and Description columns"

var requiredColumns = []string{"Date", "Amount"}

// Loader turns CSV files into transactions.
type Loader struct {
	logger logging.Logger
	strict bool
}

// NewLoader creates a Loader. In strict mode a row with an unparsable amount or
// date rejects the whole file and amounts are stored in canonical form; otherwise
// rows are kept as they are.
func NewLoader(logger logging.Logger, strict bool) *Loader {
	return &Loader{logger: logger, strict: strict}
}

// LoadFile reads path, assigning ids to rows without one.
func (l *Loader) LoadFile(path string) ([]models.Transaction, error) {
	if err := validation.IsValidInputFile(path); err != nil {
		return nil, err
	}
	if err := checkHeader(path); err != nil {
		return nil, err
	}

	rows, err := common.ReadCSVFile[models.Transaction](path, l.logger)
	if err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		builder := models.NewTransactionBuilder().
			WithID(strings.TrimSpace(row.ID)).
			WithDate(strings.TrimSpace(row.Date)).
			WithCategory(row.Category).
			WithDescription(row.Description)
		if l.strict {
			amount, err := validateRow(row)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			builder.WithAmount(amount)
		} else {
			builder.WithRawAmount(strings.TrimSpace(row.Amount))
		}
		txs = append(txs, builder.Build())
	}

	l.logger.Info("Loaded import file",
		logging.Field{Key: logging.FieldInputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(txs)})
	return txs, nil
}

// validateRow returns the parsed amount of a row whose amount and date are both readable.
func validateRow(row models.Transaction) (decimal.Decimal, error) {
	amount, err := currencyutils.ParseAmount(row.Amount)
	if err != nil {
		return decimal.Zero, &parsererror.ParseError{Source: "import", Field: "Amount", Value: row.Amount, Err: err}
	}
	if _, _, err := dateutils.ParseDate(row.Date); err != nil {
		return decimal.Zero, &parsererror.ParseError{Source: "import", Field: "Date", Value: row.Date, Err: err}
	}
	return amount, nil
}

func checkHeader(path string) error {
	file, err := os.Open(path) // #nosec G304 -- path given on the command line
	if err != nil {
		return fmt.Errorf("error opening import file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = common.Delimiter()
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &parsererror.InvalidFormatError{FilePath: path, ExpectedFormat: expectedFormat, Msg: "file is empty"}
	}
	if err != nil {
		return &parsererror.InvalidFormatError{FilePath: path, ExpectedFormat: expectedFormat, Msg: err.Error()}
	}

	present := make(map[string]bool, len(header))
	for _, column := range header {
		present[strings.TrimSpace(column)] = true
	}
	for _, column := range requiredColumns {
		if !present[column] {
			return &parsererror.InvalidFormatError{
				FilePath:             path,
				ExpectedFormat:       expectedFormat,
				ActualContentSnippet: strings.Join(header, string(reader.Comma)),
				Msg:                  "missing column " + column,
			}
		}
	}
	return nil
}

// ValidateUser rejects an empty target user.
func ValidateUser(path, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return &parsererror.ValidationError{FilePath: path, Reason: "user id is required"}
	}
	return nil
}
