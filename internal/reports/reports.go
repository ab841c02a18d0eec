// Package reports computes dashboard rollups from point-in-time snapshots of
// the ledger. Everything here is a pure function over slices: no database
// access, no mutation, safe to run concurrently with any writer.
package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"contas/internal/models"
)

// Totals holds the income and expense sums for a set of transactions.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ComputeTotals sums transaction amounts by type.
func ComputeTotals(transactions []models.Transaction) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case models.TransactionTypeExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	return totals
}

// TotalBalance sums account balances. Balances are signed, so credit
// accounts may pull the total down.
func TotalBalance(accounts []models.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// ByCategory sums expense transactions per category name. Categories with no
// expense transactions are absent; income transactions are ignored.
func ByCategory(transactions []models.Transaction, categories []models.Category) map[string]decimal.Decimal {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	result := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		name, ok := names[t.CategoryID]
		if !ok {
			continue
		}
		if sum, ok := result[name]; ok {
			result[name] = sum.Add(t.Amount)
		} else {
			result[name] = t.Amount
		}
	}
	return result
}

// MonthPoint is one month of the income/expense series.
type MonthPoint struct {
	Month   string          `json:"month"` // YYYY-MM
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// MonthlySeries groups transactions by calendar month over the trailing
// window ending at now's month. Months without transactions are omitted.
func MonthlySeries(transactions []models.Transaction, windowMonths int, now time.Time) []MonthPoint {
	if windowMonths <= 0 {
		windowMonths = 6
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(windowMonths - 1), 0)
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, 1, 0)

	byMonth := make(map[string]*MonthPoint)
	for _, t := range transactions {
		if t.Date.Before(start) || !t.Date.Before(end) {
			continue
		}
		key := t.Date.Format("2006-01")
		point, ok := byMonth[key]
		if !ok {
			point = &MonthPoint{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			byMonth[key] = point
		}
		switch t.Type {
		case models.TransactionTypeIncome:
			point.Income = point.Income.Add(t.Amount)
		case models.TransactionTypeExpense:
			point.Expense = point.Expense.Add(t.Amount)
		}
	}

	series := make([]MonthPoint, 0, len(byMonth))
	for cursor := start; cursor.Before(end); cursor = cursor.AddDate(0, 1, 0) {
		if point, ok := byMonth[cursor.Format("2006-01")]; ok {
			series = append(series, *point)
		}
	}
	return series
}

// DueBucket classifies a pending bill's due date relative to today.
type DueBucket string

const (
	BucketOverdue  DueBucket = "overdue"
	BucketToday    DueBucket = "today"
	BucketUpcoming DueBucket = "upcoming"
)

// BucketDueDate returns the due bucket for a bill. Paid bills are not
// bucketed; the second return is false for them.
func BucketDueDate(bill models.Bill, today time.Time) (DueBucket, bool) {
	if !bill.IsPending() {
		return "", false
	}
	billDay := dateOnly(bill.DueDate)
	todayDay := dateOnly(today)
	switch {
	case billDay.Equal(todayDay):
		return BucketToday, true
	case billDay.Before(todayDay):
		return BucketOverdue, true
	default:
		return BucketUpcoming, true
	}
}

// DueBuckets holds pending bills classified by due bucket.
type DueBuckets struct {
	Overdue  []models.Bill `json:"overdue"`
	Today    []models.Bill `json:"today"`
	Upcoming []models.Bill `json:"upcoming"`
}

// BucketBills classifies all pending bills; paid bills are skipped.
func BucketBills(bills []models.Bill, today time.Time) DueBuckets {
	var buckets DueBuckets
	for _, b := range bills {
		bucket, ok := BucketDueDate(b, today)
		if !ok {
			continue
		}
		switch bucket {
		case BucketOverdue:
			buckets.Overdue = append(buckets.Overdue, b)
		case BucketToday:
			buckets.Today = append(buckets.Today, b)
		case BucketUpcoming:
			buckets.Upcoming = append(buckets.Upcoming, b)
		}
	}
	return buckets
}

// DueDateGroup is the set of bills sharing one due date.
type DueDateGroup struct {
	Date  string        `json:"date"` // YYYY-MM-DD
	Bills []models.Bill `json:"bills"`
}

// GroupByDueDate groups bills by calendar due date, ascending. Used to
// render the due-date timeline.
func GroupByDueDate(bills []models.Bill) []DueDateGroup {
	byDate := make(map[string][]models.Bill)
	for _, b := range bills {
		key := b.DueDate.Format("2006-01-02")
		byDate[key] = append(byDate[key], b)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	groups := make([]DueDateGroup, 0, len(dates))
	for _, date := range dates {
		groups = append(groups, DueDateGroup{Date: date, Bills: byDate[date]})
	}
	return groups
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
