package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a settled financial movement. Transactions are
// created by manual entry or by the settlement of a bill, and are immutable
// afterwards except through explicit delete.
type Transaction struct {
	Base
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(19,4);not null" json:"amount"`
	Date        time.Time       `gorm:"not null" json:"date"`
	CategoryID  string          `gorm:"type:uuid;not null" json:"category_id"`
	AccountID   string          `gorm:"type:uuid;not null" json:"account_id"`
	Description string          `json:"description"`

	// Relationships
	Account  Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
