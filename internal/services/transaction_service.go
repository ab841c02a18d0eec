package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "contas/internal/errors"
	"contas/internal/models"
	"contas/internal/pagination"
)

// transactionService handles manual transaction entry and lookup.
// Settlement-created transactions are written by the bill service inside the
// settlement transaction; they share the same table and invariants.
type transactionService struct {
	db              *gorm.DB
	accountService  AccountServicer
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		accountService:  accountService,
		categoryService: categoryService,
	}
}

// CreateTransaction creates a manually entered transaction. The category's
// type must match the transaction type. Manual entries do not move account
// balances; only settlement does.
func (s *transactionService) CreateTransaction(
	transactionType models.TransactionType,
	amount decimal.Decimal,
	date time.Time,
	categoryID, accountID, description string,
) (*models.Transaction, error) {
	if transactionType != models.TransactionTypeIncome && transactionType != models.TransactionTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid transaction type")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if date.IsZero() {
		date = time.Now()
	}

	category, err := s.categoryService.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}
	if string(category.Type) != string(transactionType) {
		return nil, apperrors.ErrCategoryTypeMismatch
	}

	if _, err := s.accountService.GetAccountByID(accountID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		Type:        transactionType,
		Amount:      amount,
		Date:        date,
		CategoryID:  categoryID,
		AccountID:   accountID,
		Description: description,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	return transaction, nil
}

// GetTransactions retrieves a paginated, filtered list of transactions.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID
func (s *transactionService) GetTransactionByID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, wrapStoreError(err)
	}
	return &transaction, nil
}

// DeleteTransaction deletes a transaction.
func (s *transactionService) DeleteTransaction(transactionID string) error {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return wrapStoreError(err)
	}
	return nil
}
