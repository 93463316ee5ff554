package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/spend-rollup/internal/fileutils"
	"fjacquet/spend-rollup/internal/logging"
	"fjacquet/spend-rollup/internal/models"
	"fjacquet/spend-rollup/internal/validation"

	_ "modernc.org/sqlite"
)

// SQLiteSource keeps users and their transactions in a SQLite database.
type SQLiteSource struct {
	db     *sql.DB
	logger logging.Logger
}

// OpenSQLiteSource opens (creating if needed) the database at dbPath and
// applies pending migrations.
func OpenSQLiteSource(dbPath string, logger logging.Logger) (*SQLiteSource, error) {
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	if info, err := os.Stat(dbPath); err == nil {
		if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
			logger.Warn("Database file is readable by others",
				logging.Field{Key: logging.FieldSourcePath, Value: dbPath},
				logging.Field{Key: logging.FieldError, Value: err.Error()})
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("SQLite source ready", logging.Field{Key: logging.FieldSourcePath, Value: dbPath})
	return &SQLiteSource{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *SQLiteSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteSource) userExists(ctx context.Context, userID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return true, nil
}

// Transactions implements TransactionSource.
func (s *SQLiteSource) Transactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	exists, err := s.userExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &UserNotFoundError{UserID: userID}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, amount, category, description
		FROM transactions
		WHERE user_id = ?
		ORDER BY date, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.Date, &tx.Amount, &tx.Category, &tx.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// Users implements TransactionSource.
func (s *SQLiteSource) Users(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, id)
	}
	return users, rows.Err()
}

// ImportTransactions upserts txs for userID in a single transaction, creating
// the user when unknown. Every transaction must carry an id.
func (s *SQLiteSource) ImportTransactions(ctx context.Context, userID string, txs []models.Transaction) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("user id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO users (id) VALUES (?)`, userID); err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (user_id, id, date, amount, category, description)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, id) DO UPDATE SET
			date = excluded.date,
			amount = excluded.amount,
			category = excluded.category,
			description = excluded.description`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, t := range txs {
		if t.ID == "" {
			return 0, fmt.Errorf("transaction without id")
		}
		if _, err := stmt.ExecContext(ctx, userID, t.ID, t.Date, t.Amount, t.Category, t.Description); err != nil {
			return 0, fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	s.logger.Info("Imported transactions",
		logging.Field{Key: logging.FieldUserID, Value: userID},
		logging.Field{Key: logging.FieldCount, Value: len(txs)})
	return len(txs), nil
}
