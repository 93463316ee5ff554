// Package currencyutils parses and rounds the monetary amounts fed to the rollup engine.
package currencyutils

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyAmount is returned for blank amount strings.
var ErrEmptyAmount = errors.New("empty amount")

// ErrAmountOutOfRange is returned for amounts whose scale or precision no
// ledger could hold, such as "1e10000000".
var ErrAmountOutOfRange = errors.New("amount out of range")

const (
	maxExponent = 28
	maxDigits   = 34
)

var currencyMarks = regexp.MustCompile(`(?i)(CHF|EUR|USD|GBP)|[€$£¥₣₹₽₩\s]`)

// ParseAmount parses amounts like "1,234.56", "1.234,56", "-20.50" or "CHF 1'234.56".
// Blank, NaN and infinite inputs are rejected, as are exponents beyond ±28 and
// more than 34 significant digits.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if exp := amount.Exponent(); exp > maxExponent || exp < -maxExponent || amount.NumDigits() > maxDigits {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, ErrAmountOutOfRange)
	}
	return amount, nil
}

// StandardizeAmount strips currency marks and normalises thousands and decimal
// separators so that decimal.NewFromString can read the result.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyMarks.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	switch {
	case strings.Contains(amountStr, ",") && strings.Contains(amountStr, "."):
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case strings.Contains(amountStr, ","):
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.Replace(amountStr, ",", ".", 1)
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return amountStr
}

// Round2 rounds amount to cents, half away from zero.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// Float converts amount to float64, coercing non-finite results to 0.
func Float(amount decimal.Decimal) float64 {
	f, _ := amount.Float64()
	return FiniteOrZero(f)
}

// RoundedFloat is Float(Round2(amount)).
func RoundedFloat(amount decimal.Decimal) float64 {
	return Float(Round2(amount))
}

// FiniteOrZero replaces NaN and infinities with 0.
func FiniteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// DivRound2 divides total by span and rounds to cents. A non-positive span yields 0.
func DivRound2(total decimal.Decimal, span int) decimal.Decimal {
	if span <= 0 {
		return decimal.Zero
	}
	return Round2(total.Div(decimal.NewFromInt(int64(span))))
}
