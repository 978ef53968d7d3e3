package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/halarumdigital/agente-financeiro/internal/models"
	"github.com/halarumdigital/agente-financeiro/internal/pagination"
	"github.com/halarumdigital/agente-financeiro/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("valid_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		categories := NewCategoryService(db)
		svc := NewTransactionService(db, categories)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)

		tx, err := svc.CreateTransaction(CreateTransactionInput{
			Type:        models.TransactionTypeExpense,
			Amount:      decimal.NewFromFloat(45.50),
			Description: "Almoço",
			CategoryID:  cat.ID,
			Date:        testutil.Date(2026, time.March, 10),
			Source:      models.TransactionSourceTelegram,
		})
		testutil.AssertNoError(t, err)

		if tx.ID == 0 {
			t.Fatal("expected non-zero transaction ID")
		}
		testutil.AssertDecimalEqual(t, "45.50", tx.Amount)
		if tx.Source != models.TransactionSourceTelegram {
			t.Errorf("expected telegram source, got %s", tx.Source)
		}
		if !tx.Date.Equal(testutil.Date(2026, time.March, 10)) {
			t.Errorf("expected date 2026-03-10, got %s", tx.Date)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		categories := NewCategoryService(db)
		svc := NewTransactionService(db, categories)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeIncome)

		tx, err := svc.CreateTransaction(CreateTransactionInput{
			Type:        models.TransactionTypeIncome,
			Amount:      decimal.NewFromInt(3000),
			Description: "Salário",
			CategoryID:  cat.ID,
		})
		testutil.AssertNoError(t, err)

		if tx.Source != models.TransactionSourceManual {
			t.Errorf("expected manual source by default, got %s", tx.Source)
		}
		now := time.Now()
		if !tx.Date.Equal(testutil.Date(now.Year(), now.Month(), now.Day())) {
			t.Errorf("expected today's date by default, got %s", tx.Date)
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		categories := NewCategoryService(db)
		svc := NewTransactionService(db, categories)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)

		_, err := svc.CreateTransaction(CreateTransactionInput{
			Type:        models.TransactionTypeExpense,
			Amount:      decimal.Zero,
			Description: "nada",
			CategoryID:  cat.ID,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("category_type_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		categories := NewCategoryService(db)
		svc := NewTransactionService(db, categories)
		cat := testutil.CreateTestCategory(t, db, models.CategoryTypeIncome)

		_, err := svc.CreateTransaction(CreateTransactionInput{
			Type:        models.TransactionTypeExpense,
			Amount:      decimal.NewFromInt(10),
			Description: "café",
			CategoryID:  cat.ID,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		categories := NewCategoryService(db)
		svc := NewTransactionService(db, categories)

		_, err := svc.CreateTransaction(CreateTransactionInput{
			Type:        models.TransactionTypeExpense,
			Amount:      decimal.NewFromInt(10),
			Description: "café",
			CategoryID:  999,
		})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		categories := NewCategoryService(db)
		svc := NewTransactionService(db, categories)

		_, err := svc.CreateTransaction(CreateTransactionInput{
			Type:        "transfer",
			Amount:      decimal.NewFromInt(10),
			Description: "x",
			CategoryID:  1,
		})
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})
}

func TestGetTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	categories := NewCategoryService(db)
	svc := NewTransactionService(db, categories)

	expense := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
	income := testutil.CreateTestCategory(t, db, models.CategoryTypeIncome)

	testutil.CreateTestTransactionOnDate(t, db, expense.ID, models.TransactionTypeExpense, "10", testutil.Date(2026, time.March, 1))
	testutil.CreateTestTransactionOnDate(t, db, expense.ID, models.TransactionTypeExpense, "20", testutil.Date(2026, time.March, 5))
	testutil.CreateTestTransactionOnDate(t, db, income.ID, models.TransactionTypeIncome, "3000", testutil.Date(2026, time.March, 5))

	t.Run("unfiltered_newest_first", func(t *testing.T) {
		page, err := svc.GetTransactions(pagination.PageRequest{Page: 1, PageSize: 10}, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 3 {
			t.Fatalf("expected 3 transactions, got %d", page.TotalItems)
		}
		if !page.Data[0].Date.After(page.Data[len(page.Data)-1].Date) {
			t.Error("expected newest-first ordering")
		}
		if page.Data[0].Category == nil {
			t.Error("expected category to be preloaded")
		}
	})

	t.Run("filter_by_type", func(t *testing.T) {
		incomeType := models.TransactionTypeIncome
		page, err := svc.GetTransactions(pagination.PageRequest{Page: 1, PageSize: 10}, TransactionFilter{Type: &incomeType})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Fatalf("expected 1 income transaction, got %d", page.TotalItems)
		}
	})

	t.Run("filter_by_date_range", func(t *testing.T) {
		from := testutil.Date(2026, time.March, 2)
		to := testutil.Date(2026, time.March, 5)
		page, err := svc.GetTransactions(pagination.PageRequest{Page: 1, PageSize: 10}, TransactionFilter{FromDate: &from, ToDate: &to})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Fatalf("expected 2 transactions in range, got %d", page.TotalItems)
		}
	})

	t.Run("filter_by_category", func(t *testing.T) {
		page, err := svc.GetTransactions(pagination.PageRequest{Page: 1, PageSize: 10}, TransactionFilter{CategoryID: &expense.ID})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Fatalf("expected 2 transactions for category, got %d", page.TotalItems)
		}
	})
}

func TestGetRecentTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	categories := NewCategoryService(db)
	svc := NewTransactionService(db, categories)

	cat := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
	for day := 1; day <= 7; day++ {
		testutil.CreateTestTransactionOnDate(t, db, cat.ID, models.TransactionTypeExpense, "5", testutil.Date(2026, time.April, day))
	}

	recent, err := svc.GetRecentTransactions(5)
	testutil.AssertNoError(t, err)
	if len(recent) != 5 {
		t.Fatalf("expected 5 transactions, got %d", len(recent))
	}
	if !recent[0].Date.Equal(testutil.Date(2026, time.April, 7)) {
		t.Errorf("expected most recent first, got %s", recent[0].Date)
	}
}

func TestGetMonthSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	categories := NewCategoryService(db)
	svc := NewTransactionService(db, categories)

	expense := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
	income := testutil.CreateTestCategory(t, db, models.CategoryTypeIncome)

	testutil.CreateTestTransactionOnDate(t, db, income.ID, models.TransactionTypeIncome, "3000", testutil.Date(2026, time.May, 1))
	testutil.CreateTestTransactionOnDate(t, db, expense.ID, models.TransactionTypeExpense, "850.75", testutil.Date(2026, time.May, 15))
	testutil.CreateTestTransactionOnDate(t, db, expense.ID, models.TransactionTypeExpense, "149.25", testutil.Date(2026, time.May, 31))
	// Outside the month, must not count.
	testutil.CreateTestTransactionOnDate(t, db, expense.ID, models.TransactionTypeExpense, "500", testutil.Date(2026, time.June, 1))

	summary, err := svc.GetMonthSummary(2026, time.May)
	testutil.AssertNoError(t, err)

	testutil.AssertDecimalEqual(t, "3000", summary.Income)
	testutil.AssertDecimalEqual(t, "1000", summary.Expense)
	testutil.AssertDecimalEqual(t, "2000", summary.Balance)
}
