package rollup

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/spend-rollup/internal/currencyutils"
	"fjacquet/spend-rollup/internal/dateutils"
	"fjacquet/spend-rollup/internal/models"
)

const day = 24 * time.Hour

// Spans are the divisors used by the averages.
type Spans struct {
	Days   int
	Weeks  int
	Months int
	Years  int
}

// OldestDate returns the earliest date of the dated transactions, or now when
// there are none.
func OldestDate(txs []models.NormalizedTransaction, now time.Time) time.Time {
	oldest := now
	found := false
	for _, tx := range txs {
		if !tx.Dated {
			continue
		}
		if !found || tx.Date.Before(oldest) {
			oldest = tx.Date
			found = true
		}
	}
	return oldest
}

// ComputeSpans derives the day/week/month/year divisors between oldest and now.
// Months and years are clamped to at least 1; days and weeks may be 0.
func ComputeSpans(oldest, now time.Time) Spans {
	oldest = oldest.In(now.Location())
	spans := Spans{
		Months: max(1, dateutils.MonthsBetween(oldest, now)+1),
		Years:  max(1, now.Year()-oldest.Year()),
	}

	days := math.Ceil(float64(now.Sub(oldest)) / float64(day))
	if days > 0 {
		spans.Days = int(days)
		spans.Weeks = int(math.Ceil(days / 7))
	}
	return spans
}

// ComputeAverages returns the historical averages over the whole snapshot. The
// totals include every valid amount, dated or not; only dated transactions move
// the start of the history.
func ComputeAverages(txs []models.NormalizedTransaction, now time.Time) models.Averages {
	totals := Sum(txs)
	spans := ComputeSpans(OldestDate(txs, now), now)

	return models.Averages{
		Day:   average(totals, spans.Days),
		Week:  average(totals, spans.Weeks),
		Month: average(totals, spans.Months),
		Year:  average(totals, spans.Years),
	}
}

func average(totals Totals, span int) models.PeriodTotals {
	return models.PeriodTotals{
		Spent:  divFloat(totals.Spent, span),
		Earned: divFloat(totals.Earned, span),
	}
}

func divFloat(total decimal.Decimal, span int) float64 {
	return currencyutils.Float(currencyutils.DivRound2(total, span))
}
