package models

// PeriodTotals is the spent/earned pair reported for a single period or average.
type PeriodTotals struct {
	Spent  float64 `json:"spent" yaml:"spent"`
	Earned float64 `json:"earned" yaml:"earned"`
}

// Averages holds the historical per-period averages.
type Averages struct {
	Day   PeriodTotals
	Week  PeriodTotals
	Month PeriodTotals
	Year  PeriodTotals
}

// Summary is the dashboard payload computed for one user at one instant.
// When Error is set the summary encodes as {"error": "..."} only.
type Summary struct {
	Balance     float64 `json:"balance" yaml:"balance"`
	TotalSpent  float64 `json:"totalSpent" yaml:"totalSpent"`
	TotalEarned float64 `json:"totalEarned" yaml:"totalEarned"`

	DailySpending   []Bucket `json:"dailySpending" yaml:"dailySpending"`
	WeeklySpending  []Bucket `json:"weeklySpending" yaml:"weeklySpending"`
	MonthlySpending []Bucket `json:"monthlySpending" yaml:"monthlySpending"`
	YearlySpending  []Bucket `json:"yearlySpending" yaml:"yearlySpending"`

	Today     PeriodTotals `json:"today" yaml:"today"`
	ThisWeek  PeriodTotals `json:"thisWeek" yaml:"thisWeek"`
	ThisMonth PeriodTotals `json:"thisMonth" yaml:"thisMonth"`
	ThisYear  PeriodTotals `json:"thisYear" yaml:"thisYear"`

	DayAvg   PeriodTotals `json:"dayAvg" yaml:"dayAvg"`
	WeekAvg  PeriodTotals `json:"weekAvg" yaml:"weekAvg"`
	MonthAvg PeriodTotals `json:"monthAvg" yaml:"monthAvg"`
	YearAvg  PeriodTotals `json:"yearAvg" yaml:"yearAvg"`
	DailyAvg float64      `json:"dailyAvg" yaml:"dailyAvg"`

	SpendingByCategory map[string]float64 `json:"spendingByCategory" yaml:"spendingByCategory"`

	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// summaryFields has Summary's layout without its marshal methods.
type summaryFields Summary

type summaryError struct {
	Error string `json:"error" yaml:"error"`
}

// ErrorSummary returns a summary that only carries msg.
func ErrorSummary(msg string) Summary {
	return Summary{Error: msg}
}

// Failed reports whether the summary degenerated to an error.
func (s Summary) Failed() bool {
	return s.Error != ""
}

// Series returns the bucket series of g.
func (s Summary) Series(g Granularity) []Bucket {
	switch g {
	case Daily:
		return s.DailySpending
	case Weekly:
		return s.WeeklySpending
	case Monthly:
		return s.MonthlySpending
	case Yearly:
		return s.YearlySpending
	}
	return nil
}

func (s Summary) encodable() interface{} {
	if s.Failed() {
		return summaryError{Error: s.Error}
	}
	return summaryFields(s)
}
