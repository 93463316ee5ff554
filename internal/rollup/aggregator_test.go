package rollup

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"fjacquet/spend-rollup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_SameDayExample(t *testing.T) {
	series, err := AggregateSeries(models.Daily, normalize(t,
		tx("1", "2024-01-17", "20.50", "Food"),
		tx("2", "2024-01-17", "30.00", "Food"),
		tx("3", "2024-01-17", "-100", "Salary"),
	), wednesday)
	require.NoError(t, err)

	today := series[0]
	assert.Equal(t, "2024-01-17", today.Key)
	assert.Equal(t, 50.5, today.Spent)
	assert.Equal(t, -100.0, today.Earned)
	assert.Equal(t, -49.5, today.Net)
}

func TestAggregate_MonthlyExample(t *testing.T) {
	now := time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)
	series, err := AggregateSeries(models.Monthly, normalize(t,
		tx("1", "2024-01-10", "200", "A"),
		tx("2", "2024-01-25", "-100", "B"),
		tx("3", "2024-02-03", "100", "A"),
		tx("4", "2024-02-14", "-50", "B"),
	), now)
	require.NoError(t, err)

	assert.Equal(t, models.Bucket{
		Granularity: models.Monthly, Key: "2024-02",
		Start: series[0].Start, End: series[0].End,
		Spent: 100, Earned: -50, Net: 50,
	}, series[0])
	assert.Equal(t, "2024-01", series[1].Key)
	assert.Equal(t, 200.0, series[1].Spent)
	assert.Equal(t, -100.0, series[1].Earned)
	assert.Equal(t, 100.0, series[1].Net)
}

func TestAggregate_Rounding(t *testing.T) {
	b := Aggregate(models.Bucket{}, normalize(t,
		tx("1", "2024-01-17", "0.105", "A"),
		tx("2", "2024-01-17", "0.001", "A"),
		tx("3", "2024-01-17", "-0.333", "A"),
	))

	assert.Equal(t, 0.11, b.Spent)
	assert.Equal(t, -0.33, b.Earned)
	assert.Equal(t, -0.22, b.Net)
}

func TestAggregateSeries_EmptySetHasFixedLength(t *testing.T) {
	for _, g := range models.Granularities {
		series, err := AggregateSeries(g, nil, wednesday)
		require.NoError(t, err)
		assert.Len(t, series, WindowSize(g), g)
		for _, b := range series {
			assert.Zero(t, b.Spent)
			assert.Zero(t, b.Earned)
			assert.Zero(t, b.Net)
		}
	}
}

func TestAggregate_NetInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var txs []models.Transaction
	for i := 0; i < 500; i++ {
		date := wednesday.AddDate(0, 0, -rng.Intn(6*365))
		amount := fmt.Sprintf("%.3f", (rng.Float64()-0.5)*2000)
		txs = append(txs, tx(fmt.Sprint(i), date.Format(time.RFC3339), amount, "A"))
	}
	normalized := normalize(t, txs...)

	for _, g := range models.Granularities {
		series, err := AggregateSeries(g, normalized, wednesday)
		require.NoError(t, err)
		for _, b := range series {
			want := math.Round((b.Spent+b.Earned)*100) / 100
			assert.InDelta(t, want, b.Net, 1e-9, "%s %s", g, b.Key)
			assert.GreaterOrEqual(t, b.Spent, 0.0)
			assert.LessOrEqual(t, b.Earned, 0.0)
		}
	}
}
