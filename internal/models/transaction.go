// Package models provides the data structures shared by the rollup engine, the
// transaction sources and the report writers.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a raw record as delivered by a source. Amount keeps the source's
// textual form: POSITIVE means money spent, NEGATIVE means money earned.
type Transaction struct {
	ID          string `csv:"ID" json:"id" yaml:"id"`
	Date        string `csv:"Date" json:"date" yaml:"date"`
	Amount      string `csv:"Amount" json:"amount" yaml:"amount"`
	Category    string `csv:"Category" json:"category" yaml:"category"`
	Description string `csv:"Description" json:"description" yaml:"description"`
}

// PrimaryCategory flattens a multi-label category ("Food;Groceries" or
// "Food, Groceries") to its first label.
func PrimaryCategory(labels ...string) string {
	for _, label := range labels {
		for _, part := range strings.FieldsFunc(label, func(r rune) bool { return r == ';' || r == ',' || r == '|' }) {
			if p := strings.TrimSpace(part); p != "" {
				return p
			}
		}
	}
	return ""
}

// NormalizedTransaction is a Transaction after amount and date parsing.
type NormalizedTransaction struct {
	ID       string
	Amount   decimal.Decimal
	Date     time.Time
	Category string

	// Valid is false when the amount could not be parsed; such transactions
	// contribute nothing to any sum.
	Valid bool
	// Dated is false when the date could not be parsed; such transactions are
	// excluded from every date-based computation.
	Dated bool
}

// Countable reports whether the transaction takes part in date-based sums.
func (t NormalizedTransaction) Countable() bool {
	return t.Valid && t.Dated
}

// IsSpent reports whether the transaction counts as money spent.
func (t NormalizedTransaction) IsSpent() bool {
	return t.Valid && t.Amount.IsPositive()
}

// IsEarned reports whether the transaction counts as money earned.
func (t NormalizedTransaction) IsEarned() bool {
	return t.Valid && t.Amount.IsNegative()
}
