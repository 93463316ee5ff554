package rollup

import (
	"testing"
	"time"

	"fjacquet/spend-rollup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(buckets []models.Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Key
	}
	return out
}

func TestBuildWindows_Keys(t *testing.T) {
	now := time.Date(2024, time.February, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		g    models.Granularity
		want []string
	}{
		{models.Daily, []string{"2024-02-15", "2024-02-14", "2024-02-13", "2024-02-12", "2024-02-11", "2024-02-10", "2024-02-09"}},
		{models.Weekly, []string{
			"2024-02-11", "2024-02-04", "2024-01-28", "2024-01-21", "2024-01-14", "2024-01-07",
			"2023-12-31", "2023-12-24", "2023-12-17", "2023-12-10", "2023-12-03", "2023-11-26",
		}},
		{models.Monthly, []string{
			"2024-02", "2024-01", "2023-12", "2023-11", "2023-10", "2023-09",
			"2023-08", "2023-07", "2023-06", "2023-05", "2023-04", "2023-03",
		}},
		{models.Yearly, []string{"2024", "2023", "2022", "2021", "2020"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.g), func(t *testing.T) {
			windows, err := BuildWindows(tt.g, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(windows))
		})
	}
}

func TestBuildWindows_Contiguous(t *testing.T) {
	for _, g := range models.Granularities {
		windows, err := BuildWindows(g, wednesday)
		require.NoError(t, err)
		require.Len(t, windows, WindowSize(g))

		assert.True(t, windows[0].Contains(wednesday), g)
		for i := 0; i+1 < len(windows); i++ {
			assert.Equal(t, windows[i].Start, windows[i+1].End.Add(time.Nanosecond), "%s window %d", g, i)
			assert.True(t, windows[i].Start.Before(windows[i].End))
		}
	}
}

func TestBuildWindows_Unsupported(t *testing.T) {
	_, err := BuildWindows(models.Granularity("hourly"), wednesday)
	assert.Error(t, err)
}

func TestAssign_SundayMidnightBoundary(t *testing.T) {
	windows, err := BuildWindows(models.Weekly, wednesday)
	require.NoError(t, err)

	groups := Assign(windows, normalize(t,
		tx("sunday", "2024-01-14T00:00:00.000Z", "10", "A"),
		tx("saturday", "2024-01-13T23:59:59.999Z", "20", "A"),
	))

	require.Len(t, groups[0], 1)
	assert.Equal(t, "sunday", groups[0][0].ID)
	require.Len(t, groups[1], 1)
	assert.Equal(t, "saturday", groups[1][0].ID)
}

func TestAssign_DropsOutOfWindowAndUncountable(t *testing.T) {
	windows, err := BuildWindows(models.Yearly, wednesday)
	require.NoError(t, err)

	groups := Assign(windows, normalize(t,
		tx("old", "2010-06-01", "10", "A"),
		tx("nan", "2024-01-01", "NaN", "A"),
		tx("undated", "", "10", "A"),
		tx("kept", "2020-12-31", "10", "A"),
	))

	total := 0
	for _, g := range groups {
		total += len(g)
	}
	assert.Equal(t, 1, total)
	require.Len(t, groups[4], 1)
	assert.Equal(t, "kept", groups[4][0].ID)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "2024-01-14", Key(models.Weekly, wednesday))
	assert.Equal(t, "2024-01-17", Key(models.Daily, wednesday))
	assert.Equal(t, "2024-01", Key(models.Monthly, wednesday))
	assert.Equal(t, "2024", Key(models.Yearly, wednesday))
}
