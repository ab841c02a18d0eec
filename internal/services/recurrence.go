package services

import (
	"time"

	"contas/internal/models"
)

// Advance returns the due date advanced by exactly one period. Monthly and
// yearly advances keep the day of month, clamped to the last valid day of
// the target month (Jan 31 -> Feb 28/29). An unrecognized period yields the
// zero time: a corrupted row must terminate its chain, not respawn a
// successor due the same day forever.
func Advance(dueDate time.Time, recurrence models.RecurrenceType) time.Time {
	switch recurrence {
	case models.RecurrenceWeekly:
		return dueDate.AddDate(0, 0, 7)
	case models.RecurrenceMonthly:
		return addMonthsClamped(dueDate, 1)
	case models.RecurrenceYearly:
		return addMonthsClamped(dueDate, 12)
	}
	return time.Time{}
}

// NextOccurrence computes the successor of a recurring bill, or nil when the
// chain terminates (next due date past the recurrence end date). The
// successor carries no reference back to its predecessor; recurrence chains
// are linked only by equal description and category, unlike installment
// chains which share a parent id.
func NextOccurrence(bill *models.Bill) *models.Bill {
	if !bill.IsRecurring || bill.RecurrenceType == nil {
		return nil
	}

	nextDue := Advance(bill.DueDate, *bill.RecurrenceType)
	if nextDue.IsZero() {
		return nil
	}
	if bill.RecurrenceEndDate != nil && nextDue.After(*bill.RecurrenceEndDate) {
		return nil
	}

	recurrence := *bill.RecurrenceType
	next := &models.Bill{
		Description:    bill.Description,
		Amount:         bill.Amount,
		DueDate:        nextDue,
		CategoryID:     bill.CategoryID,
		Status:         models.BillStatusPending,
		IsRecurring:    true,
		RecurrenceType: &recurrence,
	}
	if bill.RecurrenceEndDate != nil {
		endDate := *bill.RecurrenceEndDate
		next.RecurrenceEndDate = &endDate
	}
	return next
}

// addMonthsClamped adds months without the overflow behavior of
// time.AddDate: the day of month is clamped instead of spilling into the
// next month.
func addMonthsClamped(date time.Time, months int) time.Time {
	firstOfTarget := time.Date(date.Year(), date.Month()+time.Month(months), 1,
		0, 0, 0, 0, date.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()

	day := date.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		0, 0, 0, 0, date.Location())
}
