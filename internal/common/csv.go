// Package common provides the CSV plumbing shared by the transaction sources.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fjacquet/spend-rollup/internal/fileutils"
	"fjacquet/spend-rollup/internal/logging"
	"fjacquet/spend-rollup/internal/models"

	"github.com/gocarina/gocsv"
)

var (
	delimiterMu sync.RWMutex
	delimiter   = ','
)

// SetDelimiter sets the field delimiter used to read and write CSV files.
func SetDelimiter(delim rune) {
	delimiterMu.Lock()
	defer delimiterMu.Unlock()
	delimiter = delim
}

// Delimiter returns the configured CSV field delimiter.
func Delimiter() rune {
	delimiterMu.RLock()
	defer delimiterMu.RUnlock()
	return delimiter
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string, logger logging.Logger) ([]TCSVRow, error) {
	log := logger.WithField(logging.FieldInputFile, filePath)
	log.Debug("Reading CSV file")

	file, err := os.Open(filePath) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = Delimiter()
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if err == gocsv.ErrEmptyCSVFile {
			return []TCSVRow{}, nil
		}
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.Debug("Successfully read CSV data", logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

// WriteTransactionsToCSV writes transactions to csvFile, creating its directory
// when needed. Amounts are written exactly as stored.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string, logger logging.Logger) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log := logger.WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	)

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(csvFile)); err != nil {
		return err
	}

	file, err := os.OpenFile(csvFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionDataFile) // #nosec G304
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter()

	if err := gocsv.MarshalCSV(transactions, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal transactions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.Info("Wrote transactions to CSV file")
	return nil
}
