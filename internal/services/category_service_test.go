package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"contas/internal/events"
	"contas/internal/models"
	"contas/internal/pagination"
	"contas/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db, events.NopPublisher{})

	t.Run("expense_category", func(t *testing.T) {
		category, err := svc.CreateCategory("Moradia", models.CategoryTypeExpense, "home", "#FF5733")
		testutil.AssertNoError(t, err)
		if category.Type != models.CategoryTypeExpense {
			t.Errorf("expected expense category, got %s", category.Type)
		}
	})

	t.Run("duplicate_name_same_type", func(t *testing.T) {
		_, err := svc.CreateCategory("Moradia", models.CategoryTypeExpense, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("same_name_other_type_allowed", func(t *testing.T) {
		_, err := svc.CreateCategory("Moradia", models.CategoryTypeIncome, "", "")
		testutil.AssertNoError(t, err)
	})

	t.Run("invalid_type", func(t *testing.T) {
		_, err := svc.CreateCategory("Misc", models.CategoryType("transfer"), "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db, events.NopPublisher{})

	testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
	testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
	testutil.CreateTestCategory(t, db, models.CategoryTypeIncome)

	expense := models.CategoryTypeExpense
	page, err := svc.GetCategories(&expense, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 2 {
		t.Errorf("expected 2 expense categories, got %d", page.TotalItems)
	}

	page, err = svc.GetCategories(nil, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 3 {
		t.Errorf("expected 3 categories total, got %d", page.TotalItems)
	}
}

func TestUpdateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db, events.NopPublisher{})
	category := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)

	updated, err := svc.UpdateCategory(category.ID, "Lazer", "party", "#00FF00")
	testutil.AssertNoError(t, err)
	if updated.Name != "Lazer" {
		t.Errorf("expected renamed category, got %s", updated.Name)
	}
	// Type never changes on update.
	if updated.Type != models.CategoryTypeExpense {
		t.Errorf("category type must be immutable, got %s", updated.Type)
	}
}

func TestDeleteCategory(t *testing.T) {
	t.Run("unreferenced_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, events.NopPublisher{})
		category := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)

		ok, err := svc.CanDeleteCategory(category.ID)
		testutil.AssertNoError(t, err)
		if !ok {
			t.Error("unreferenced category should be deletable")
		}

		testutil.AssertNoError(t, svc.DeleteCategory(category.ID))
	})

	t.Run("referenced_by_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, events.NopPublisher{})
		category := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
		account := testutil.CreateTestAccount(t, db, decimal.Zero)
		testutil.CreateTestTransaction(t, db, models.TransactionTypeExpense, decimal.NewFromInt(10), category.ID, account.ID)

		err := svc.DeleteCategory(category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")

		_, err = svc.GetCategoryByID(category.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("referenced_by_bill", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, events.NopPublisher{})
		category := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
		testutil.CreateTestBill(t, db, decimal.NewFromInt(10), testutil.Date(2024, time.January, 5), category.ID)

		ok, err := svc.CanDeleteCategory(category.ID)
		testutil.AssertNoError(t, err)
		if ok {
			t.Error("category referenced by a bill should not be deletable")
		}

		err = svc.DeleteCategory(category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, events.NopPublisher{})

		err := svc.DeleteCategory("3f6fdab2-6f6c-4f08-9c3e-0f8a5ad4a020")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
