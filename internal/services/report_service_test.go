package services

import (
	"testing"
	"time"

	"github.com/halarumdigital/agente-financeiro/internal/models"
	"github.com/halarumdigital/agente-financeiro/internal/testutil"
)

func setupReportService(t *testing.T) (ReportServicer, *reportFixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	categories := NewCategoryService(db)
	transactions := NewTransactionService(db, categories)
	svc := NewReportService(db, transactions)

	f := &reportFixtures{
		food:      testutil.CreateTestCategoryWithName(t, db, "Alimentação", models.CategoryTypeExpense),
		transport: testutil.CreateTestCategoryWithName(t, db, "Transporte", models.CategoryTypeExpense),
		salary:    testutil.CreateTestCategoryWithName(t, db, "Salário", models.CategoryTypeIncome),
	}

	// March 2026: income 3000 on the 1st, expenses 300 food and 100
	// transport spread over the 1st and 3rd, nothing on the 2nd.
	testutil.CreateTestTransactionOnDate(t, db, f.salary.ID, models.TransactionTypeIncome, "3000", testutil.Date(2026, time.March, 1))
	testutil.CreateTestTransactionOnDate(t, db, f.food.ID, models.TransactionTypeExpense, "120", testutil.Date(2026, time.March, 1))
	testutil.CreateTestTransactionOnDate(t, db, f.food.ID, models.TransactionTypeExpense, "180", testutil.Date(2026, time.March, 3))
	testutil.CreateTestTransactionOnDate(t, db, f.transport.ID, models.TransactionTypeExpense, "100", testutil.Date(2026, time.March, 3))

	return svc, f
}

type reportFixtures struct {
	food      *models.Category
	transport *models.Category
	salary    *models.Category
}

func TestReportByCategory(t *testing.T) {
	svc, f := setupReportService(t)

	t.Run("expenses_only", func(t *testing.T) {
		expenseType := models.CategoryTypeExpense
		report, err := svc.ByCategory(testutil.Date(2026, time.March, 1), testutil.Date(2026, time.March, 31), &expenseType)
		testutil.AssertNoError(t, err)

		if len(report.Categories) != 2 {
			t.Fatalf("expected 2 expense categories, got %d", len(report.Categories))
		}
		// Ordered by total, largest first.
		if report.Categories[0].CategoryID != f.food.ID {
			t.Errorf("expected Alimentação first, got %s", report.Categories[0].Category)
		}
		testutil.AssertDecimalEqual(t, "300", report.Categories[0].Total)
		if report.Categories[0].Count != 2 {
			t.Errorf("expected 2 transactions for Alimentação, got %d", report.Categories[0].Count)
		}
		if report.Categories[0].Percentage != 75.0 {
			t.Errorf("expected 75%% for Alimentação, got %f", report.Categories[0].Percentage)
		}
		testutil.AssertDecimalEqual(t, "400", report.Totals.Expense)
	})

	t.Run("all_types", func(t *testing.T) {
		report, err := svc.ByCategory(testutil.Date(2026, time.March, 1), testutil.Date(2026, time.March, 31), nil)
		testutil.AssertNoError(t, err)

		if len(report.Categories) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(report.Categories))
		}
		testutil.AssertDecimalEqual(t, "3000", report.Totals.Income)
		testutil.AssertDecimalEqual(t, "400", report.Totals.Expense)
		testutil.AssertDecimalEqual(t, "2600", report.Totals.Balance)
	})

	t.Run("empty_range", func(t *testing.T) {
		report, err := svc.ByCategory(testutil.Date(2025, time.January, 1), testutil.Date(2025, time.January, 31), nil)
		testutil.AssertNoError(t, err)
		if len(report.Categories) != 0 {
			t.Errorf("expected no categories, got %d", len(report.Categories))
		}
	})
}

func TestReportByPeriod(t *testing.T) {
	svc, _ := setupReportService(t)

	t.Run("daily_series_is_dense", func(t *testing.T) {
		series, err := svc.ByPeriod(testutil.Date(2026, time.March, 1), testutil.Date(2026, time.March, 3), "day")
		testutil.AssertNoError(t, err)

		if len(series) != 3 {
			t.Fatalf("expected 3 periods, got %d", len(series))
		}
		if series[0].Period != "2026-03-01" || series[2].Period != "2026-03-03" {
			t.Errorf("unexpected period labels: %s .. %s", series[0].Period, series[2].Period)
		}

		testutil.AssertDecimalEqual(t, "3000", series[0].Income)
		testutil.AssertDecimalEqual(t, "120", series[0].Expense)
		testutil.AssertDecimalEqual(t, "2880", series[0].Balance)

		// The empty day still appears, zero-valued.
		testutil.AssertDecimalEqual(t, "0", series[1].Income)
		testutil.AssertDecimalEqual(t, "0", series[1].Expense)

		testutil.AssertDecimalEqual(t, "280", series[2].Expense)
	})

	t.Run("monthly_grouping", func(t *testing.T) {
		series, err := svc.ByPeriod(testutil.Date(2026, time.February, 1), testutil.Date(2026, time.March, 31), "month")
		testutil.AssertNoError(t, err)

		if len(series) != 2 {
			t.Fatalf("expected 2 months, got %d", len(series))
		}
		if series[0].Period != "2026-02" || series[1].Period != "2026-03" {
			t.Errorf("unexpected month labels: %s, %s", series[0].Period, series[1].Period)
		}
		testutil.AssertDecimalEqual(t, "0", series[0].Income)
		testutil.AssertDecimalEqual(t, "3000", series[1].Income)
		testutil.AssertDecimalEqual(t, "400", series[1].Expense)
	})

	t.Run("weekly_uses_iso_weeks", func(t *testing.T) {
		series, err := svc.ByPeriod(testutil.Date(2026, time.March, 1), testutil.Date(2026, time.March, 3), "week")
		testutil.AssertNoError(t, err)

		// 2026-03-01 is a Sunday (ISO week 9), 03-02 starts week 10.
		if len(series) != 2 {
			t.Fatalf("expected 2 ISO weeks, got %d", len(series))
		}
		if series[0].Period != "2026-W09" || series[1].Period != "2026-W10" {
			t.Errorf("unexpected week labels: %s, %s", series[0].Period, series[1].Period)
		}
	})

	t.Run("invalid_group_by", func(t *testing.T) {
		_, err := svc.ByPeriod(testutil.Date(2026, time.March, 1), testutil.Date(2026, time.March, 3), "quarter")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("inverted_range", func(t *testing.T) {
		_, err := svc.ByPeriod(testutil.Date(2026, time.March, 3), testutil.Date(2026, time.March, 1), "day")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestReportSummary(t *testing.T) {
	svc, _ := setupReportService(t)

	summary, err := svc.Summary(testutil.Date(2026, time.March, 1), testutil.Date(2026, time.March, 31))
	testutil.AssertNoError(t, err)

	testutil.AssertDecimalEqual(t, "3000", summary.Income)
	testutil.AssertDecimalEqual(t, "400", summary.Expense)
	testutil.AssertDecimalEqual(t, "2600", summary.Balance)
}

func TestGetDashboard(t *testing.T) {
	svc, _ := setupReportService(t)

	dashboard, err := svc.GetDashboard(testutil.Date(2026, time.March, 1), testutil.Date(2026, time.March, 31))
	testutil.AssertNoError(t, err)

	testutil.AssertDecimalEqual(t, "2600", dashboard.Summary.Balance)
	if len(dashboard.RecentTransactions) != 4 {
		t.Errorf("expected 4 recent transactions, got %d", len(dashboard.RecentTransactions))
	}
	if len(dashboard.ExpensesByCategory) != 2 {
		t.Errorf("expected 2 expense categories, got %d", len(dashboard.ExpensesByCategory))
	}
	if dashboard.Period.StartDate != "2026-03-01" {
		t.Errorf("unexpected period start %s", dashboard.Period.StartDate)
	}
}
