// Package rollup turns a snapshot of raw transactions into the time-bucketed
// spend/earn summaries of the dashboard. Every function is a pure function of
// its inputs and of the "now" instant passed in by the caller.
package rollup

import (
	"strings"
	"time"

	"fjacquet/spend-rollup/internal/currencyutils"
	"fjacquet/spend-rollup/internal/dateutils"
	"fjacquet/spend-rollup/internal/models"
)

// Stats counts the data anomalies met while normalizing a snapshot.
type Stats struct {
	Total   int
	Invalid int // amount could not be parsed
	Undated int // date missing or unparsable
}

// Normalize parses the amount and date of tx. It never fails: an unparsable
// amount clears Valid, an unparsable date clears Dated.
func Normalize(tx models.Transaction, loc *time.Location) models.NormalizedTransaction {
	out := models.NormalizedTransaction{
		ID:       tx.ID,
		Category: strings.TrimSpace(tx.Category),
	}
	if out.Category == "" {
		out.Category = models.CategoryUncategorized
	}

	if amount, err := currencyutils.ParseAmount(tx.Amount); err == nil {
		out.Amount = amount
		out.Valid = true
	}
	if date, _, err := dateutils.ParseDateIn(tx.Date, loc); err == nil {
		out.Date = date
		out.Dated = true
	}
	return out
}

// NormalizeAll normalizes every transaction of the snapshot, preserving order.
func NormalizeAll(txs []models.Transaction, loc *time.Location) ([]models.NormalizedTransaction, Stats) {
	out := make([]models.NormalizedTransaction, len(txs))
	stats := Stats{Total: len(txs)}
	for i, tx := range txs {
		out[i] = Normalize(tx, loc)
		if !out[i].Valid {
			stats.Invalid++
		}
		if !out[i].Dated {
			stats.Undated++
		}
	}
	return out, stats
}
