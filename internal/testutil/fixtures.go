package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"contas/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount creates a bank account with the given balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:    fmt.Sprintf("Test Account %d", nextID()),
		Kind:    models.AccountKindBank,
		Balance: balance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("Test Category %d", nextID()),
		Type: categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction of the given type and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, txType models.TransactionType, amount decimal.Decimal, categoryID, accountID string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Type:       txType,
		Amount:     amount,
		Date:       time.Now(),
		CategoryID: categoryID,
		AccountID:  accountID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBill creates a pending one-off bill.
func CreateTestBill(t *testing.T, db *gorm.DB, amount decimal.Decimal, dueDate time.Time, categoryID string) *models.Bill {
	t.Helper()

	bill := &models.Bill{
		Description: fmt.Sprintf("Test Bill %d", nextID()),
		Amount:      amount,
		DueDate:     dueDate,
		CategoryID:  categoryID,
		Status:      models.BillStatusPending,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}

// CreateTestRecurringBill creates a pending recurring bill.
func CreateTestRecurringBill(t *testing.T, db *gorm.DB, amount decimal.Decimal, dueDate time.Time, categoryID string, recurrence models.RecurrenceType, endDate *time.Time) *models.Bill {
	t.Helper()

	bill := &models.Bill{
		Description:       fmt.Sprintf("Test Recurring Bill %d", nextID()),
		Amount:            amount,
		DueDate:           dueDate,
		CategoryID:        categoryID,
		Status:            models.BillStatusPending,
		IsRecurring:       true,
		RecurrenceType:    &recurrence,
		RecurrenceEndDate: endDate,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test recurring bill: %v", err)
	}
	return bill
}

// Date builds a calendar date in UTC, the shape due dates use everywhere.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
