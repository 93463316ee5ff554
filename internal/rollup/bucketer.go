package rollup

import (
	"fmt"
	"time"

	"fjacquet/spend-rollup/internal/dateutils"
	"fjacquet/spend-rollup/internal/models"
)

// WindowSize is the fixed number of buckets produced for g.
func WindowSize(g models.Granularity) int {
	switch g {
	case models.Daily:
		return 7
	case models.Weekly, models.Monthly:
		return 12
	case models.Yearly:
		return 5
	}
	return 0
}

// PeriodStart returns the first instant of the g-period containing t, in t's location.
func PeriodStart(g models.Granularity, t time.Time) time.Time {
	switch g {
	case models.Daily:
		return dateutils.StartOfDay(t)
	case models.Weekly:
		return dateutils.StartOfWeek(t)
	case models.Monthly:
		return dateutils.StartOfMonth(t)
	case models.Yearly:
		return dateutils.StartOfYear(t)
	}
	return t
}

// step moves a period start by n periods of g.
func step(g models.Granularity, start time.Time, n int) time.Time {
	switch g {
	case models.Daily:
		return start.AddDate(0, 0, n)
	case models.Weekly:
		return start.AddDate(0, 0, 7*n)
	case models.Monthly:
		return start.AddDate(0, n, 0)
	case models.Yearly:
		return start.AddDate(n, 0, 0)
	}
	return start
}

// Key returns the bucket key of the g-period containing t: the day or the week's
// Sunday as YYYY-MM-DD, the month as YYYY-MM, the year as YYYY.
func Key(g models.Granularity, t time.Time) string {
	start := PeriodStart(g, t)
	switch g {
	case models.Daily, models.Weekly:
		return dateutils.ToISODate(start)
	case models.Monthly:
		return start.Format(dateutils.MonthKeyLayout)
	case models.Yearly:
		return start.Format(dateutils.YearKeyLayout)
	}
	return ""
}

// BuildWindows returns the empty bucket series of g ending with the period that
// contains now, most recent first.
func BuildWindows(g models.Granularity, now time.Time) ([]models.Bucket, error) {
	size := WindowSize(g)
	if size == 0 {
		return nil, fmt.Errorf("unsupported granularity %q", g)
	}

	current := PeriodStart(g, now)
	windows := make([]models.Bucket, size)
	for i := range windows {
		start := step(g, current, -i)
		windows[i] = models.Bucket{
			Granularity: g,
			Key:         Key(g, start),
			Start:       start,
			End:         dateutils.LastInstantBefore(step(g, start, 1)),
		}
	}
	return windows, nil
}

// Assign groups the countable transactions by bucket index. Transactions outside
// every window are dropped.
func Assign(windows []models.Bucket, txs []models.NormalizedTransaction) [][]models.NormalizedTransaction {
	index := make(map[string]int, len(windows))
	for i, w := range windows {
		index[w.Key] = i
	}

	groups := make([][]models.NormalizedTransaction, len(windows))
	if len(windows) == 0 {
		return groups
	}
	g := windows[0].Granularity
	for _, tx := range txs {
		if !tx.Countable() {
			continue
		}
		if i, ok := index[Key(g, tx.Date)]; ok {
			groups[i] = append(groups[i], tx)
		}
	}
	return groups
}
