package services

import (
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"contas/internal/models"
	"contas/internal/reports"
)

// reportService produces the read-side dashboard aggregates. It never
// mutates anything and runs safely alongside any number of writers.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// Dashboard pulls a snapshot of accounts, categories, transactions, and
// pending bills, then applies the pure rollup functions from the reports
// package. The four reads run concurrently.
func (s *reportService) Dashboard(windowMonths int) (*DashboardSnapshot, error) {
	if windowMonths <= 0 {
		windowMonths = 6
	}

	var (
		accounts     []models.Account
		categories   []models.Category
		transactions []models.Transaction
		pendingBills []models.Bill
	)

	var g errgroup.Group
	g.Go(func() error {
		if err := s.db.Find(&accounts).Error; err != nil {
			return wrapStoreError(err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.db.Find(&categories).Error; err != nil {
			return wrapStoreError(err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.db.Order("date").Find(&transactions).Error; err != nil {
			return wrapStoreError(err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.db.
			Where("status = ?", models.BillStatusPending).
			Order("due_date").
			Find(&pendingBills).Error; err != nil {
			return wrapStoreError(err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &DashboardSnapshot{
		Totals:        reports.ComputeTotals(transactions),
		TotalBalance:  reports.TotalBalance(accounts),
		ByCategory:    reports.ByCategory(transactions, categories),
		MonthlySeries: reports.MonthlySeries(transactions, windowMonths, now),
		DueBuckets:    reports.BucketBills(pendingBills, now),
		DueDates:      reports.GroupByDueDate(pendingBills),
	}, nil
}
