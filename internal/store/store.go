// Package store loads per-user transaction snapshots from the configured backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/spend-rollup/internal/models"
)

var (
	// ErrUserNotFound is matched by every UserNotFoundError.
	ErrUserNotFound = errors.New("user not found")
	// ErrReadOnly is returned when importing into a source that cannot store.
	ErrReadOnly = errors.New("source is read-only")
)

// UserNotFoundError reports a lookup for a user the source does not know.
type UserNotFoundError struct {
	UserID string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// Is makes errors.Is(err, ErrUserNotFound) hold.
func (e *UserNotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}

// TransactionSource returns the transaction snapshot of a user.
type TransactionSource interface {
	// Transactions returns every transaction of userID. An unknown user yields
	// a *UserNotFoundError; a known user without transactions an empty slice.
	Transactions(ctx context.Context, userID string) ([]models.Transaction, error)
	// Users lists the known user ids.
	Users(ctx context.Context) ([]string, error)
}

// Importer is implemented by sources that can persist new transactions.
type Importer interface {
	ImportTransactions(ctx context.Context, userID string, txs []models.Transaction) (int, error)
}

// FindFile looks for filename in the usual locations: as given, under ./data and
// under $HOME/.spend-rollup.
func FindFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("data", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".spend-rollup", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

func cloneTransactions(txs []models.Transaction) []models.Transaction {
	if txs == nil {
		return []models.Transaction{}
	}
	out := make([]models.Transaction, len(txs))
	copy(out, txs)
	return out
}

// mergeByID replaces transactions sharing an id and appends the others.
// Transactions without id are always appended.
func mergeByID(existing, incoming []models.Transaction) []models.Transaction {
	merged := cloneTransactions(existing)
	index := make(map[string]int, len(merged))
	for i, tx := range merged {
		if tx.ID != "" {
			index[tx.ID] = i
		}
	}
	for _, tx := range incoming {
		if i, ok := index[tx.ID]; ok && tx.ID != "" {
			merged[i] = tx
			continue
		}
		if tx.ID != "" {
			index[tx.ID] = len(merged)
		}
		merged = append(merged, tx)
	}
	return merged
}
