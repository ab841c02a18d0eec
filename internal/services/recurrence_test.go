package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"contas/internal/models"
	"contas/internal/testutil"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		name       string
		date       time.Time
		recurrence models.RecurrenceType
		want       time.Time
	}{
		{"weekly", testutil.Date(2024, time.January, 10), models.RecurrenceWeekly, testutil.Date(2024, time.January, 17)},
		{"weekly_across_month", testutil.Date(2024, time.January, 29), models.RecurrenceWeekly, testutil.Date(2024, time.February, 5)},
		{"monthly", testutil.Date(2024, time.January, 10), models.RecurrenceMonthly, testutil.Date(2024, time.February, 10)},
		{"monthly_clamps_to_feb", testutil.Date(2024, time.January, 31), models.RecurrenceMonthly, testutil.Date(2024, time.February, 29)},
		{"monthly_clamps_to_feb_non_leap", testutil.Date(2023, time.January, 31), models.RecurrenceMonthly, testutil.Date(2023, time.February, 28)},
		{"monthly_clamps_30", testutil.Date(2024, time.March, 31), models.RecurrenceMonthly, testutil.Date(2024, time.April, 30)},
		{"monthly_across_year", testutil.Date(2024, time.December, 15), models.RecurrenceMonthly, testutil.Date(2025, time.January, 15)},
		{"yearly", testutil.Date(2024, time.January, 10), models.RecurrenceYearly, testutil.Date(2025, time.January, 10)},
		{"yearly_clamps_leap_day", testutil.Date(2024, time.February, 29), models.RecurrenceYearly, testutil.Date(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(tt.date, tt.recurrence)
			if !got.Equal(tt.want) {
				t.Errorf("Advance(%s, %s) = %s, want %s",
					tt.date.Format("2006-01-02"), tt.recurrence,
					got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}

	t.Run("unknown_period_yields_zero_time", func(t *testing.T) {
		got := Advance(testutil.Date(2024, time.January, 10), models.RecurrenceType("daily"))
		if !got.IsZero() {
			t.Errorf("expected the zero time for an unknown period, got %s", got.Format("2006-01-02"))
		}
	})
}

func TestNextOccurrence(t *testing.T) {
	recurrence := models.RecurrenceMonthly

	t.Run("produces_successor", func(t *testing.T) {
		end := testutil.Date(2024, time.March, 10)
		bill := &models.Bill{
			Description:       "Aluguel",
			Amount:            decimal.NewFromInt(150),
			DueDate:           testutil.Date(2024, time.January, 10),
			CategoryID:        "cat-1",
			Status:            models.BillStatusPaid,
			IsRecurring:       true,
			RecurrenceType:    &recurrence,
			RecurrenceEndDate: &end,
		}

		next := NextOccurrence(bill)
		if next == nil {
			t.Fatal("expected a successor bill")
		}
		if !next.DueDate.Equal(testutil.Date(2024, time.February, 10)) {
			t.Errorf("expected due date 2024-02-10, got %s", next.DueDate.Format("2006-01-02"))
		}
		if next.Status != models.BillStatusPending {
			t.Errorf("expected pending successor, got %s", next.Status)
		}
		if next.Description != bill.Description {
			t.Errorf("expected description %q, got %q", bill.Description, next.Description)
		}
		if !next.Amount.Equal(bill.Amount) {
			t.Errorf("expected amount %s, got %s", bill.Amount, next.Amount)
		}
		// Recurrence chains are not linked by id.
		if next.ParentBillID != nil {
			t.Error("successor must not carry a parent bill reference")
		}
		if next.IsInstallment || next.TotalInstallments != nil || next.CurrentInstallment != nil {
			t.Error("successor must not carry installment fields")
		}
	})

	t.Run("successor_due_equal_to_end_date_allowed", func(t *testing.T) {
		end := testutil.Date(2024, time.February, 10)
		bill := &models.Bill{
			Amount:            decimal.NewFromInt(50),
			DueDate:           testutil.Date(2024, time.January, 10),
			IsRecurring:       true,
			RecurrenceType:    &recurrence,
			RecurrenceEndDate: &end,
		}

		if NextOccurrence(bill) == nil {
			t.Error("successor due exactly on the end date should be produced")
		}
	})

	t.Run("terminates_past_end_date", func(t *testing.T) {
		end := testutil.Date(2024, time.March, 10)
		bill := &models.Bill{
			Amount:            decimal.NewFromInt(50),
			DueDate:           testutil.Date(2024, time.March, 10),
			IsRecurring:       true,
			RecurrenceType:    &recurrence,
			RecurrenceEndDate: &end,
		}

		if next := NextOccurrence(bill); next != nil {
			t.Errorf("expected chain termination, got successor due %s", next.DueDate.Format("2006-01-02"))
		}
	})

	t.Run("open_ended_without_end_date", func(t *testing.T) {
		bill := &models.Bill{
			Amount:         decimal.NewFromInt(50),
			DueDate:        testutil.Date(2030, time.December, 31),
			IsRecurring:    true,
			RecurrenceType: &recurrence,
		}

		if NextOccurrence(bill) == nil {
			t.Error("open-ended recurrence should always produce a successor")
		}
	})

	t.Run("corrupted_period_terminates_chain", func(t *testing.T) {
		bad := models.RecurrenceType("daily")
		bill := &models.Bill{
			Amount:         decimal.NewFromInt(50),
			DueDate:        testutil.Date(2024, time.January, 10),
			IsRecurring:    true,
			RecurrenceType: &bad,
		}

		if next := NextOccurrence(bill); next != nil {
			t.Errorf("expected no successor for a corrupted period, got one due %s", next.DueDate.Format("2006-01-02"))
		}
	})

	t.Run("non_recurring_bill", func(t *testing.T) {
		bill := &models.Bill{
			Amount:  decimal.NewFromInt(50),
			DueDate: testutil.Date(2024, time.January, 10),
		}

		if NextOccurrence(bill) != nil {
			t.Error("non-recurring bill must not produce a successor")
		}
	})
}
