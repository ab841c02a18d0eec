package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus represents the lifecycle state of a bill
type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
)

// RecurrenceType represents the period of a recurring bill
type RecurrenceType string

const (
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

// Bill represents a payable obligation. A bill is created pending and
// transitions to paid exactly once; paid bills are retained as history and
// are never resurrected.
//
// Installment and recurring modes are mutually exclusive. Installment chains
// are pre-materialized and linked by ParentBillID (nil on the first sibling,
// which is the chain parent). Recurrence chains are extended one successor at
// a time upon payment and carry no id link between members.
type Bill struct {
	Base
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(19,4);not null" json:"amount"`
	DueDate     time.Time       `gorm:"not null" json:"due_date"`
	CategoryID  string          `gorm:"type:uuid;not null" json:"category_id"`
	Status      BillStatus      `gorm:"not null;default:'pending'" json:"status"`

	// Installment fields, present iff IsInstallment.
	IsInstallment      bool    `gorm:"not null;default:false" json:"is_installment"`
	TotalInstallments  *int    `json:"total_installments,omitempty"`
	CurrentInstallment *int    `json:"current_installment,omitempty"`
	ParentBillID       *string `gorm:"type:uuid;index" json:"parent_bill_id,omitempty"`

	// Recurrence fields, present iff IsRecurring.
	IsRecurring       bool            `gorm:"not null;default:false" json:"is_recurring"`
	RecurrenceType    *RecurrenceType `json:"recurrence_type,omitempty"`
	RecurrenceEndDate *time.Time      `json:"recurrence_end_date,omitempty"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// IsPending reports whether the bill can still be paid or deleted.
func (b *Bill) IsPending() bool {
	return b.Status == BillStatusPending
}

// ChainRootID returns the id that identifies the bill's installment chain:
// the bill's own id for the first sibling, ParentBillID for the rest.
func (b *Bill) ChainRootID() string {
	if b.ParentBillID != nil {
		return *b.ParentBillID
	}
	return b.ID
}
