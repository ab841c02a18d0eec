package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "contas/internal/errors"
	"contas/internal/events"
	"contas/internal/logger"
	"contas/internal/metrics"
	"contas/internal/models"
	"contas/internal/pagination"
	"contas/internal/uuid"
)

// billService owns the bill lifecycle: creation (including installment
// materialization), settlement, and deletion.
type billService struct {
	db              *gorm.DB
	categoryService CategoryServicer
	accountService  AccountServicer
	publisher       events.Publisher
}

// NewBillService creates a new BillServicer.
func NewBillService(db *gorm.DB, categoryService CategoryServicer, accountService AccountServicer, publisher events.Publisher) BillServicer {
	return &billService{
		db:              db,
		categoryService: categoryService,
		accountService:  accountService,
		publisher:       publisher,
	}
}

// CreateBill validates the request and inserts either a single pending bill
// or, for installment mode, the full sibling chain in one atomic batch.
// Partial chains are never observable.
func (s *billService) CreateBill(input CreateBillInput) ([]models.Bill, error) {
	if err := s.validateCreate(input); err != nil {
		return nil, err
	}

	if input.IsInstallment {
		return s.materializeInstallments(input)
	}

	bill := models.Bill{
		Description: input.Description,
		Amount:      input.Amount,
		DueDate:     input.DueDate,
		CategoryID:  input.CategoryID,
		Status:      models.BillStatusPending,
	}
	mode := "single"
	if input.IsRecurring {
		recurrence := input.RecurrenceType
		bill.IsRecurring = true
		bill.RecurrenceType = &recurrence
		bill.RecurrenceEndDate = input.RecurrenceEndDate
		mode = "recurring"
	}

	if err := s.db.Create(&bill).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	metrics.BillsCreated.WithLabelValues(mode).Inc()
	s.publish(events.TypeBillCreated, bill.ID)
	return []models.Bill{bill}, nil
}

func (s *billService) validateCreate(input CreateBillInput) error {
	if input.Description == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if !input.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.DueDate.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "due date is required")
	}
	if input.IsInstallment && input.IsRecurring {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "a bill cannot be both installment and recurring")
	}
	if input.IsInstallment && input.TotalInstallments < 2 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "installment bills need at least 2 installments")
	}
	if input.IsRecurring {
		switch input.RecurrenceType {
		case models.RecurrenceWeekly, models.RecurrenceMonthly, models.RecurrenceYearly:
		default:
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid recurrence type")
		}
		if input.RecurrenceEndDate != nil && !input.RecurrenceEndDate.After(input.DueDate) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "recurrence end date must be after the due date")
		}
	}

	// Bills are always expenses; the referenced category must be too.
	category, err := s.categoryService.GetCategoryByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category.Type != models.CategoryTypeExpense {
		return apperrors.WithMessage(apperrors.ErrCategoryTypeMismatch, "bills must reference an expense category")
	}

	return nil
}

// materializeInstallments builds the full sibling chain up front. Each
// sibling carries the literal per-installment amount from the request; due
// dates are monthly-spaced from the first regardless of any recurrence
// concept. The first sibling is the chain parent (nil parent_bill_id) and
// the rest point at it.
func (s *billService) materializeInstallments(input CreateBillInput) ([]models.Bill, error) {
	total := input.TotalInstallments
	parentID := uuid.New()

	bills := make([]models.Bill, 0, total)
	for k := 1; k <= total; k++ {
		installment := k
		bill := models.Bill{
			Description:        input.Description,
			Amount:             input.Amount,
			DueDate:            addMonthsClamped(input.DueDate, k-1),
			CategoryID:         input.CategoryID,
			Status:             models.BillStatusPending,
			IsInstallment:      true,
			TotalInstallments:  &total,
			CurrentInstallment: &installment,
		}
		if k == 1 {
			bill.ID = parentID
		} else {
			parent := parentID
			bill.ParentBillID = &parent
		}
		bills = append(bills, bill)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&bills).Error; err != nil {
			return wrapStoreError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BillsCreated.WithLabelValues("installment").Add(float64(total))
	s.publish(events.TypeBillCreated, parentID)
	return bills, nil
}

// GetBills retrieves a paginated, filtered list of bills ordered by due date.
func (s *billService) GetBills(page pagination.PageRequest, filter BillFilter) (*pagination.PageResponse[models.Bill], error) {
	page.Defaults()

	base := s.db.Model(&models.Bill{})
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		base = base.Where("due_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("due_date <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	var bills []models.Bill
	if err := base.Scopes(pagination.Paginate(page)).
		Order("due_date").
		Find(&bills).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	result := pagination.NewPageResponse(bills, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBillByID retrieves a bill by ID
func (s *billService) GetBillByID(billID string) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.Where("id = ?", billID).First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, wrapStoreError(err)
	}
	return &bill, nil
}

// GetInstallmentChain returns all siblings of the installment chain the
// given bill belongs to, ordered by installment number.
func (s *billService) GetInstallmentChain(billID string) ([]models.Bill, error) {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return nil, err
	}
	if !bill.IsInstallment {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bill is not part of an installment chain")
	}

	root := bill.ChainRootID()
	var chain []models.Bill
	if err := s.db.
		Where("id = ? OR parent_bill_id = ?", root, root).
		Order("current_installment").
		Find(&chain).Error; err != nil {
		return nil, wrapStoreError(err)
	}
	return chain, nil
}

// PayBill settles a pending bill against an account as one atomic unit:
// flip the status, debit the account, write the expense transaction, and
// spawn the recurrence successor when there is one. The status flip is a
// compare-and-set on pending, so of two concurrent payments exactly one
// succeeds and the other reports the bill as already paid.
//
// Overdraft is allowed: settlement never checks the account balance.
func (s *billService) PayBill(billID, accountID string) (*PaymentOutcome, error) {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		metrics.Settlements.WithLabelValues("not_found").Inc()
		return nil, err
	}
	if !bill.IsPending() {
		metrics.Settlements.WithLabelValues("conflict").Inc()
		return nil, apperrors.ErrBillAlreadyPaid
	}
	if _, err := s.accountService.GetAccountByID(accountID); err != nil {
		metrics.Settlements.WithLabelValues("not_found").Inc()
		return nil, err
	}

	outcome := &PaymentOutcome{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Bill{}).
			Where("id = ? AND status = ?", billID, models.BillStatusPending).
			Update("status", models.BillStatusPaid)
		if res.Error != nil {
			return wrapStoreError(res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race to a concurrent settlement.
			return apperrors.ErrBillAlreadyPaid
		}
		bill.Status = models.BillStatusPaid

		// Store-side decrement, not read-modify-write: concurrent payments
		// against the same account must not lose updates.
		res = tx.Model(&models.Account{}).
			Where("id = ?", accountID).
			UpdateColumn("balance", gorm.Expr("balance - ?", bill.Amount))
		if res.Error != nil {
			return wrapStoreError(res.Error)
		}
		if res.RowsAffected == 0 {
			// Account deleted since the precondition check. Roll the whole
			// settlement back rather than commit a paid bill that never
			// debited anything.
			return apperrors.ErrAccountNotFound
		}

		transaction := &models.Transaction{
			Type:        models.TransactionTypeExpense,
			Amount:      bill.Amount,
			Date:        time.Now(), // settlement time, not the due date
			CategoryID:  bill.CategoryID,
			AccountID:   accountID,
			Description: bill.Description,
		}
		if err := tx.Create(transaction).Error; err != nil {
			return wrapStoreError(err)
		}

		if next := NextOccurrence(bill); next != nil {
			if err := tx.Create(next).Error; err != nil {
				return wrapStoreError(err)
			}
			outcome.NextBill = next
		}

		outcome.Bill = bill
		outcome.Transaction = transaction
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case apperrors.ErrBillAlreadyPaid.Code:
				metrics.Settlements.WithLabelValues("conflict").Inc()
			case apperrors.ErrAccountNotFound.Code:
				metrics.Settlements.WithLabelValues("not_found").Inc()
			}
		}
		return nil, err
	}

	metrics.Settlements.WithLabelValues("paid").Inc()
	s.publish(events.TypeBillPaid, bill.ID)
	if outcome.NextBill != nil {
		metrics.RecurrencesSpawned.Inc()
		s.publish(events.TypeBillCreated, outcome.NextBill.ID)
	}
	return outcome, nil
}

// DeleteBill removes a pending bill. Paid bills are history, tied to their
// transaction, and cannot be deleted.
func (s *billService) DeleteBill(billID string) error {
	bill, err := s.GetBillByID(billID)
	if err != nil {
		return err
	}
	if !bill.IsPending() {
		return apperrors.ErrBillNotPending
	}

	if err := s.db.Delete(bill).Error; err != nil {
		return wrapStoreError(err)
	}

	s.publish(events.TypeBillDeleted, billID)
	return nil
}

func (s *billService) publish(eventType, entityID string) {
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
