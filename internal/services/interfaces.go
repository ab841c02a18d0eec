package services

import (
	"time"

	"github.com/shopspring/decimal"

	"contas/internal/models"
	"contas/internal/pagination"
	"contas/internal/reports"
)

// AccountUpdateFields holds the optional fields of an account update.
// Balance is deliberately absent: balances move only through settlement.
type AccountUpdateFields struct {
	Name *string
	Kind *models.AccountKind
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(name string, kind models.AccountKind, initialBalance decimal.Decimal) (*models.Account, error)
	GetAccounts(page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(accountID string) (*models.Account, error)
	UpdateAccount(accountID string, fields AccountUpdateFields) (*models.Account, error)
	CanDeleteAccount(accountID string) (bool, error)
	DeleteAccount(accountID string) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, categoryType models.CategoryType, icon, color string) (*models.Category, error)
	GetCategories(categoryType *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(categoryID string) (*models.Category, error)
	UpdateCategory(categoryID string, name, icon, color string) (*models.Category, error)
	CanDeleteCategory(categoryID string) (bool, error)
	DeleteCategory(categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
	AccountID  *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(transactionType models.TransactionType, amount decimal.Decimal, date time.Time, categoryID, accountID, description string) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID string) (*models.Transaction, error)
	DeleteTransaction(transactionID string) error
}

// CreateBillInput carries a bill-creation request. For installment bills the
// amount is the literal per-installment value; the engine does not divide a
// total across siblings.
type CreateBillInput struct {
	Description       string
	Amount            decimal.Decimal
	DueDate           time.Time
	CategoryID        string
	IsInstallment     bool
	TotalInstallments int
	IsRecurring       bool
	RecurrenceType    models.RecurrenceType
	RecurrenceEndDate *time.Time
}

// BillFilter holds optional filter parameters for listing bills.
type BillFilter struct {
	Status   *models.BillStatus
	FromDate *time.Time
	ToDate   *time.Time
}

// PaymentOutcome is the result of settling a bill: the paid bill, the
// transaction written for it, and the recurrence successor when one was
// spawned.
type PaymentOutcome struct {
	Bill        *models.Bill        `json:"bill"`
	Transaction *models.Transaction `json:"transaction"`
	NextBill    *models.Bill        `json:"next_bill,omitempty"`
}

// BillServicer defines the contract for the bill lifecycle: creation
// (including installment materialization), settlement, and deletion.
type BillServicer interface {
	CreateBill(input CreateBillInput) ([]models.Bill, error)
	GetBills(page pagination.PageRequest, filter BillFilter) (*pagination.PageResponse[models.Bill], error)
	GetBillByID(billID string) (*models.Bill, error)
	GetInstallmentChain(billID string) ([]models.Bill, error)
	PayBill(billID, accountID string) (*PaymentOutcome, error)
	DeleteBill(billID string) error
}

// DashboardSnapshot aggregates the report views consumed by the dashboard.
type DashboardSnapshot struct {
	Totals        reports.Totals             `json:"totals"`
	TotalBalance  decimal.Decimal            `json:"total_balance"`
	ByCategory    map[string]decimal.Decimal `json:"by_category"`
	MonthlySeries []reports.MonthPoint       `json:"monthly_series"`
	DueBuckets    reports.DueBuckets         `json:"due_buckets"`
	DueDates      []reports.DueDateGroup     `json:"due_dates"`
}

// ReportServicer defines the contract for read-side aggregation.
type ReportServicer interface {
	Dashboard(windowMonths int) (*DashboardSnapshot, error)
}
