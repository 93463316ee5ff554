package rollup

import (
	"time"

	"fjacquet/spend-rollup/internal/models"
)

// SelectPeriod returns the totals of the bucket whose key matches now under g.
// A zero pair is returned when the series has no such bucket.
func SelectPeriod(series []models.Bucket, g models.Granularity, now time.Time) models.PeriodTotals {
	key := Key(g, now)
	for _, b := range series {
		if b.Key == key {
			return b.Totals()
		}
	}
	return models.PeriodTotals{}
}
