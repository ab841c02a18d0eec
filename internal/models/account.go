package models

import "github.com/shopspring/decimal"

// AccountKind represents the kind of monetary account
type AccountKind string

const (
	AccountKindCash       AccountKind = "cash"
	AccountKindBank       AccountKind = "bank"
	AccountKindCredit     AccountKind = "credit"
	AccountKindInvestment AccountKind = "investment"
)

// Account represents a monetary account that bills are settled against.
// Balance is signed: credit accounts may carry negative balances, and
// settlement is allowed to overdraw any account.
type Account struct {
	Base
	Name    string          `gorm:"not null" json:"name"`
	Kind    AccountKind     `gorm:"not null" json:"kind"`
	Balance decimal.Decimal `gorm:"type:decimal(19,4);not null" json:"balance"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
