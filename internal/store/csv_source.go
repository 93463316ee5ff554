package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"fjacquet/spend-rollup/internal/common"
	"fjacquet/spend-rollup/internal/fileutils"
	"fjacquet/spend-rollup/internal/logging"
	"fjacquet/spend-rollup/internal/models"
)

const csvExtension = ".csv"

// CSVSource reads one <user>.csv file per user from a directory.
type CSVSource struct {
	dir    string
	logger logging.Logger
	mu     sync.Mutex
}

// NewCSVSource creates a CSVSource over dir.
func NewCSVSource(dir string, logger logging.Logger) *CSVSource {
	return &CSVSource{dir: dir, logger: logger}
}

func (s *CSVSource) userFile(userID string) (string, error) {
	if userID == "" || strings.ContainsAny(userID, `/\`) || userID == "." || userID == ".." {
		return "", &UserNotFoundError{UserID: userID}
	}
	return filepath.Join(s.dir, userID+csvExtension), nil
}

// Transactions implements TransactionSource.
func (s *CSVSource) Transactions(_ context.Context, userID string) ([]models.Transaction, error) {
	path, err := s.userFile(userID)
	if err != nil {
		return nil, err
	}
	if !fileutils.FileExists(path) {
		return nil, &UserNotFoundError{UserID: userID}
	}

	rows, err := common.ReadCSVFile[models.Transaction](path, s.logger)
	if err != nil {
		return nil, fmt.Errorf("reading transactions of %s: %w", userID, err)
	}
	return cloneTransactions(rows), nil
}

// Users implements TransactionSource.
func (s *CSVSource) Users(_ context.Context) ([]string, error) {
	files, err := fileutils.ListFilesWithExtension(s.dir, csvExtension)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}

	users := make([]string, 0, len(files))
	for _, name := range files {
		users = append(users, name[:len(name)-len(csvExtension)])
	}
	return users, nil
}

// ImportTransactions merges txs into the user's file, creating it if needed.
func (s *CSVSource) ImportTransactions(ctx context.Context, userID string, txs []models.Transaction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.userFile(userID)
	if err != nil {
		return 0, err
	}

	existing, err := s.Transactions(ctx, userID)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return 0, err
	}

	if err := common.WriteTransactionsToCSV(mergeByID(existing, txs), path, s.logger); err != nil {
		return 0, err
	}
	return len(txs), nil
}
