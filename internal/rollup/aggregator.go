package rollup

import (
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/spend-rollup/internal/currencyutils"
	"fjacquet/spend-rollup/internal/models"
)

// Totals holds unrounded spent/earned sums.
type Totals struct {
	Spent  decimal.Decimal
	Earned decimal.Decimal
}

// Net is Spent + Earned.
func (t Totals) Net() decimal.Decimal {
	return t.Spent.Add(t.Earned)
}

// Sum adds the valid amounts of txs: positives into Spent, negatives into Earned.
// Zero amounts contribute to neither.
func Sum(txs []models.NormalizedTransaction) Totals {
	totals := Totals{Spent: decimal.Zero, Earned: decimal.Zero}
	for _, tx := range txs {
		switch {
		case tx.IsSpent():
			totals.Spent = totals.Spent.Add(tx.Amount)
		case tx.IsEarned():
			totals.Earned = totals.Earned.Add(tx.Amount)
		}
	}
	return totals
}

// Aggregate fills spent, earned and net of bucket from its transactions, each
// rounded to cents. Net is computed from the rounded parts.
func Aggregate(bucket models.Bucket, txs []models.NormalizedTransaction) models.Bucket {
	totals := Sum(txs)
	spent := currencyutils.Round2(totals.Spent)
	earned := currencyutils.Round2(totals.Earned)

	bucket.Spent = currencyutils.Float(spent)
	bucket.Earned = currencyutils.Float(earned)
	bucket.Net = currencyutils.RoundedFloat(spent.Add(earned))
	return bucket
}

// AggregateSeries builds and fills the bucket series of g ending at now.
func AggregateSeries(g models.Granularity, txs []models.NormalizedTransaction, now time.Time) ([]models.Bucket, error) {
	windows, err := BuildWindows(g, now)
	if err != nil {
		return nil, err
	}
	groups := Assign(windows, txs)
	for i := range windows {
		windows[i] = Aggregate(windows[i], groups[i])
	}
	return windows, nil
}
