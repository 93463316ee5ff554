package rollup

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fjacquet/spend-rollup/internal/currencyutils"
	"fjacquet/spend-rollup/internal/logging"
	"fjacquet/spend-rollup/internal/models"
	"fjacquet/spend-rollup/internal/store"
)

// Compute builds the full summary of a transaction snapshot at instant now,
// interpreted in loc. The snapshot is never modified. A panic in any stage is
// returned as an error.
func Compute(txs []models.Transaction, now time.Time, loc *time.Location) (summary models.Summary, stats Stats, err error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	defer recoverInto(&err, "summary")

	normalized, stats := NormalizeAll(txs, loc)

	totals := Sum(normalized)
	summary.TotalSpent = currencyutils.RoundedFloat(totals.Spent)
	summary.TotalEarned = currencyutils.RoundedFloat(totals.Earned)
	summary.Balance = currencyutils.RoundedFloat(totals.Net())

	results := make([][]models.Bucket, len(models.Granularities))

	var g errgroup.Group
	for i, gran := range models.Granularities {
		g.Go(func() (err error) {
			defer recoverInto(&err, gran.Label()+" series")
			results[i], err = AggregateSeries(gran, normalized, now)
			return err
		})
	}
	g.Go(func() (err error) {
		defer recoverInto(&err, "averages")
		avg := ComputeAverages(normalized, now)
		summary.DayAvg, summary.WeekAvg = avg.Day, avg.Week
		summary.MonthAvg, summary.YearAvg = avg.Month, avg.Year
		summary.DailyAvg = avg.Day.Spent
		return nil
	})
	g.Go(func() (err error) {
		defer recoverInto(&err, "category breakdown")
		summary.SpendingByCategory = ReduceByCategory(normalized, now.Year(), now.Month())
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Summary{}, stats, err
	}

	series := make(map[models.Granularity][]models.Bucket, len(results))
	for i, gran := range models.Granularities {
		series[gran] = results[i]
	}
	summary.DailySpending = series[models.Daily]
	summary.WeeklySpending = series[models.Weekly]
	summary.MonthlySpending = series[models.Monthly]
	summary.YearlySpending = series[models.Yearly]

	summary.Today = SelectPeriod(summary.DailySpending, models.Daily, now)
	summary.ThisWeek = SelectPeriod(summary.WeeklySpending, models.Weekly, now)
	summary.ThisMonth = SelectPeriod(summary.MonthlySpending, models.Monthly, now)
	summary.ThisYear = SelectPeriod(summary.YearlySpending, models.Yearly, now)

	return summary, stats, nil
}

func recoverInto(err *error, stage string) {
	if r := recover(); r != nil {
		*err = &PanicError{Stage: stage, Value: r, Stack: debug.Stack()}
	}
}

// PanicError wraps a panic raised while computing a summary stage.
type PanicError struct {
	Stage string
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Value)
}

// Engine serves summaries for users of a transaction source.
type Engine struct {
	source   store.TransactionSource
	logger   logging.Logger
	location *time.Location
}

// NewEngine creates an Engine. A nil location means UTC.
func NewEngine(source store.TransactionSource, logger logging.Logger, location *time.Location) *Engine {
	if location == nil {
		location = time.UTC
	}
	return &Engine{source: source, logger: logger, location: location}
}

// Location returns the time zone periods are computed in.
func (e *Engine) Location() *time.Location {
	return e.location
}

// Summarize returns the summary of userID at now. It never fails: an unknown
// user, a source failure or an internal fault yields a summary with only its
// Error field set.
func (e *Engine) Summarize(ctx context.Context, userID string, now time.Time) (summary models.Summary) {
	start := time.Now()
	log := e.logger.WithFields(
		logging.Field{Key: logging.FieldRunID, Value: uuid.NewString()},
		logging.Field{Key: logging.FieldUserID, Value: userID},
		logging.Field{Key: logging.FieldNow, Value: now.In(e.location).Format(time.RFC3339)},
	)
	defer func() {
		if r := recover(); r != nil {
			err := &PanicError{Stage: "summary", Value: r, Stack: debug.Stack()}
			log.WithError(err).Error("Recovered from panic")
			summary = models.ErrorSummary(err.Error())
		}
	}()

	txs, err := e.source.Transactions(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Warn("User not found")
		} else {
			log.WithError(err).Error("Failed to load transactions")
		}
		return models.ErrorSummary(err.Error())
	}

	summary, stats, err := Compute(txs, now, e.location)
	if err != nil {
		log.WithError(err).Error("Failed to compute summary")
		return models.ErrorSummary(err.Error())
	}

	if stats.Invalid > 0 || stats.Undated > 0 {
		log.Debug("Skipped transactions during normalization",
			logging.Field{Key: logging.FieldSkipped, Value: stats.Invalid},
			logging.Field{Key: logging.FieldUndated, Value: stats.Undated})
	}
	log.Info("Summary computed",
		logging.Field{Key: logging.FieldCount, Value: stats.Total},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return summary
}

// Series returns a single bucket series of userID at now.
func (e *Engine) Series(ctx context.Context, userID string, g models.Granularity, now time.Time) ([]models.Bucket, error) {
	txs, err := e.source.Transactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	normalized, _ := NormalizeAll(txs, e.location)
	e.logger.Debug("Computing series",
		logging.Field{Key: logging.FieldUserID, Value: userID},
		logging.Field{Key: logging.FieldGranularity, Value: g.Label()})
	return AggregateSeries(g, normalized, now.In(e.location))
}

// Categories returns the signed per-category sums of userID for a calendar month.
func (e *Engine) Categories(ctx context.Context, userID string, year int, month time.Month) (map[string]float64, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	txs, err := e.source.Transactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	normalized, _ := NormalizeAll(txs, e.location)
	return ReduceByCategory(normalized, year, month), nil
}
