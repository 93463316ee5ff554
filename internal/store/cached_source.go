package store

import (
	"context"
	"time"

	"fjacquet/spend-rollup/internal/logging"
	"fjacquet/spend-rollup/internal/models"

	"github.com/patrickmn/go-cache"
)

const usersCacheKey = "\x00users"

// CachedSource memoizes the snapshots of another source for a fixed TTL.
// Callers always receive their own copy.
type CachedSource struct {
	inner  TransactionSource
	cache  *cache.Cache
	logger logging.Logger
}

// NewCachedSource wraps inner with a cache of the given TTL.
func NewCachedSource(inner TransactionSource, ttl time.Duration, logger logging.Logger) *CachedSource {
	return &CachedSource{
		inner:  inner,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Transactions implements TransactionSource. Errors are not cached.
func (s *CachedSource) Transactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	if cached, found := s.cache.Get(userID); found {
		s.logger.Debug("Transaction cache hit", logging.Field{Key: logging.FieldUserID, Value: userID})
		return cloneTransactions(cached.([]models.Transaction)), nil
	}

	txs, err := s.inner.Transactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(userID, cloneTransactions(txs), cache.DefaultExpiration)
	return txs, nil
}

// Users implements TransactionSource.
func (s *CachedSource) Users(ctx context.Context) ([]string, error) {
	if cached, found := s.cache.Get(usersCacheKey); found {
		return append([]string(nil), cached.([]string)...), nil
	}
	users, err := s.inner.Users(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(usersCacheKey, append([]string(nil), users...), cache.DefaultExpiration)
	return users, nil
}

// ImportTransactions forwards to the wrapped source when it is an Importer and
// drops the cached entries it affects.
func (s *CachedSource) ImportTransactions(ctx context.Context, userID string, txs []models.Transaction) (int, error) {
	importer, ok := s.inner.(Importer)
	if !ok {
		return 0, ErrReadOnly
	}
	n, err := importer.ImportTransactions(ctx, userID, txs)
	s.Invalidate(userID)
	return n, err
}

// Invalidate drops the cached snapshot of userID.
func (s *CachedSource) Invalidate(userID string) {
	s.cache.Delete(userID)
	s.cache.Delete(usersCacheKey)
}
