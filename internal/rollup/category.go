package rollup

import (
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/spend-rollup/internal/currencyutils"
	"fjacquet/spend-rollup/internal/models"
)

// ReduceByCategory sums the signed amounts per category for the transactions
// dated inside the given calendar month. Sums are neither split nor rounded, and
// categories without transactions in that month are absent.
func ReduceByCategory(txs []models.NormalizedTransaction, year int, month time.Month) map[string]float64 {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.Countable() || tx.Date.Year() != year || tx.Date.Month() != month {
			continue
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}

	out := make(map[string]float64, len(sums))
	for category, sum := range sums {
		out[category] = currencyutils.Float(sum)
	}
	return out
}
