package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionBuilder provides a fluent API for constructing raw transactions
type TransactionBuilder struct {
	tx Transaction
}

// NewTransactionBuilder creates a builder for an uncategorized transaction
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		tx: Transaction{
			Category: CategoryUncategorized,
		},
	}
}

// WithID sets the transaction ID
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.tx.ID = id
	return b
}

// WithDate sets the date string as is
func (b *TransactionBuilder) WithDate(dateStr string) *TransactionBuilder {
	b.tx.Date = dateStr
	return b
}

// WithAmount sets the signed amount; positive is spent, negative is earned
func (b *TransactionBuilder) WithAmount(amount decimal.Decimal) *TransactionBuilder {
	b.tx.Amount = amount.String()
	return b
}

// WithRawAmount sets the amount text without validating it
func (b *TransactionBuilder) WithRawAmount(amount string) *TransactionBuilder {
	b.tx.Amount = amount
	return b
}

// WithCategory sets the category, flattening multi-label values
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	if primary := PrimaryCategory(category); primary != "" {
		b.tx.Category = primary
	}
	return b
}

// WithDescription sets the description
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	b.tx.Description = description
	return b
}

// Build returns the transaction, generating an ID when none was set.
// Amount and date are not validated: unparsable values are the engine's concern.
func (b *TransactionBuilder) Build() Transaction {
	if b.tx.ID == "" {
		b.tx.ID = uuid.New().String()
	}
	return b.tx
}
