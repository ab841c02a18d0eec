package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "contas/internal/errors"
	"contas/internal/events"
	"contas/internal/logger"
	"contas/internal/metrics"
	"contas/internal/models"
	"contas/internal/pagination"
)

// accountService handles account-related business logic.
type accountService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB, publisher events.Publisher) AccountServicer {
	return &accountService{db: db, publisher: publisher}
}

var validAccountKinds = map[models.AccountKind]bool{
	models.AccountKindCash:       true,
	models.AccountKindBank:       true,
	models.AccountKindCredit:     true,
	models.AccountKindInvestment: true,
}

// CreateAccount creates a new account with the given opening balance.
func (s *accountService) CreateAccount(name string, kind models.AccountKind, initialBalance decimal.Decimal) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if !validAccountKinds[kind] {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid account kind")
	}

	account := &models.Account{
		Name:    name,
		Kind:    kind,
		Balance: initialBalance,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	return account, nil
}

// GetAccounts retrieves a paginated list of accounts.
func (s *accountService) GetAccounts(page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Account{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).Order("name").Find(&accounts).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, wrapStoreError(err)
	}
	return &account, nil
}

// UpdateAccount updates an account's name and kind. Balance is not
// updatable here: it moves only through settlement.
func (s *accountService) UpdateAccount(accountID string, fields AccountUpdateFields) (*models.Account, error) {
	account, err := s.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Kind != nil {
		if !validAccountKinds[*fields.Kind] {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid account kind")
		}
		updates["kind"] = *fields.Kind
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, wrapStoreError(err)
		}
		if err := s.db.Where("id = ?", account.ID).First(account).Error; err != nil {
			return nil, wrapStoreError(err)
		}
	}

	return account, nil
}

// CanDeleteAccount reports whether the account is unreferenced by any
// transaction. The answer is advisory: DeleteAccount re-checks inside its
// own transaction.
func (s *accountService) CanDeleteAccount(accountID string) (bool, error) {
	if _, err := s.GetAccountByID(accountID); err != nil {
		return false, err
	}
	refs, err := countAccountReferences(s.db, accountID)
	if err != nil {
		return false, err
	}
	return refs == 0, nil
}

// DeleteAccount removes an account if nothing references it. The reference
// check runs inside the same transaction as the delete, so a concurrent
// transaction insert cannot slip between check and act.
func (s *accountService) DeleteAccount(accountID string) error {
	account, err := s.GetAccountByID(accountID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		refs, err := countAccountReferences(tx, accountID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return apperrors.WithMessage(apperrors.ErrAccountInUse,
				"Account is referenced by existing transactions")
		}

		if err := tx.Delete(account).Error; err != nil {
			return wrapStoreError(err)
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrAccountInUse.Code {
			metrics.IntegrityRejections.WithLabelValues("account").Inc()
		}
		return err
	}

	s.publish(events.TypeAccountDeleted, accountID)
	return nil
}

// countAccountReferences counts ledger records that reference the account.
func countAccountReferences(db *gorm.DB, accountID string) (int64, error) {
	var count int64
	if err := db.Model(&models.Transaction{}).Where("account_id = ?", accountID).Count(&count).Error; err != nil {
		return 0, wrapStoreError(err)
	}
	return count, nil
}

func (s *accountService) publish(eventType, entityID string) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.Publish(ctx, events.New(eventType, entityID)); err != nil {
		logger.Get().Warnw("failed to publish event",
			"type", eventType,
			"entity_id", entityID,
			"error", err,
		)
	}
}
