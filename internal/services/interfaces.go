package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/halarumdigital/agente-financeiro/internal/models"
	"github.com/halarumdigital/agente-financeiro/internal/pagination"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, categoryType models.CategoryType, icon, color string) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	GetCategoriesByType(categoryType models.CategoryType) ([]models.Category, error)
	GetCategoryByID(categoryID uint) (*models.Category, error)
	GetCategoryByName(name string, categoryType models.CategoryType) (*models.Category, error)
	// FindBestMatch resolves a free-text category name to a concrete category
	// of the given type, falling back to "Outros" and then to the first
	// category of the type. It fails only when the type has no categories.
	FindBestMatch(name string, categoryType models.CategoryType) (*models.Category, error)
	ActiveNamesByType(categoryType models.CategoryType) ([]string, error)
	UpdateCategory(categoryID uint, name, icon, color string) (*models.Category, error)
	DeleteCategory(categoryID uint) error
}

// CreateTransactionInput carries the fields for a new transaction.
type CreateTransactionInput struct {
	Type              models.TransactionType
	Amount            decimal.Decimal
	Description       string
	CategoryID        uint
	Date              time.Time
	Notes             string
	Source            models.TransactionSource
	TelegramMessageID *int
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *uint
}

// PeriodSummary aggregates income and expense over a date range.
type PeriodSummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(input CreateTransactionInput) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID uint) (*models.Transaction, error)
	GetRecentTransactions(limit int) ([]models.Transaction, error)
	GetMonthSummary(year int, month time.Month) (*PeriodSummary, error)
	GetDateRangeSummary(start, end time.Time) (*PeriodSummary, error)
}

// SavingsBoxServicer defines the contract for savings-box business logic.
// Deposit and Withdraw are the only operations that mutate a box's balance;
// both pair the balance change with a ledger row in one database transaction.
type SavingsBoxServicer interface {
	CreateSavingsBox(name, description string, goalAmount decimal.Decimal, icon, color string) (*models.SavingsBox, error)
	GetSavingsBoxes() ([]models.SavingsBox, error)
	GetTotalSaved() (decimal.Decimal, error)
	GetSavingsBoxByID(boxID uint) (*models.SavingsBox, error)
	GetSavingsBoxByName(name string) (*models.SavingsBox, error)
	GetBoxTransactions(boxID uint, limit int) ([]models.SavingsBoxTransaction, error)
	Deposit(boxID uint, amount decimal.Decimal, description string) (*models.SavingsBox, error)
	Withdraw(boxID uint, amount decimal.Decimal, description string) (*models.SavingsBox, error)
	DeleteSavingsBox(boxID uint) error
}

// CreateBillInput carries the fields for a new bill.
type CreateBillInput struct {
	Name               string
	Description        string
	Amount             decimal.Decimal
	DueDay             int
	CategoryID         *uint
	IsRecurring        bool
	ReminderDaysBefore int
}

// UpdateBillInput carries optional field updates for a bill. Nil fields are
// left unchanged.
type UpdateBillInput struct {
	Name               *string
	Description        *string
	Amount             *decimal.Decimal
	DueDay             *int
	CategoryID         *uint
	IsRecurring        *bool
	ReminderDaysBefore *int
}

// BillServicer defines the contract for bill-related business logic.
type BillServicer interface {
	CreateBill(input CreateBillInput) (*models.Bill, error)
	GetBills() ([]models.Bill, error)
	GetMonthlyBillsTotal() (decimal.Decimal, error)
	GetBillByID(billID uint) (*models.Bill, error)
	GetBillByName(name string) (*models.Bill, error)
	GetUpcomingBills(days int) ([]models.Bill, error)
	UpdateBill(billID uint, input UpdateBillInput) (*models.Bill, error)
	DeleteBill(billID uint) error
	// MarkPaid stamps last_paid_date only (REST flow).
	MarkPaid(billID uint, date time.Time) error
	// PayBill stamps last_paid_date and books the matching expense
	// transaction in one database transaction (bot flow).
	PayBill(billID uint, date time.Time) (*models.Transaction, error)
	// RemindersDue returns the active bills eligible for a reminder today:
	// due in exactly reminder_days_before days (or due today), not already
	// reminded today, not already paid this month.
	RemindersDue(today time.Time) ([]models.Bill, error)
	MarkReminderSent(billID uint, date time.Time) error
	// SnoozeReminder rewinds last_reminder_date so the next scan re-fires.
	SnoozeReminder(billID uint, today time.Time) error
}

// CategoryTotal is one row of the by-category report.
type CategoryTotal struct {
	CategoryID uint                `json:"category_id"`
	Category   string              `json:"category"`
	Type       models.CategoryType `json:"type"`
	Color      string              `json:"color"`
	Icon       string              `json:"icon"`
	Total      decimal.Decimal     `json:"total"`
	Count      int64               `json:"count"`
	Percentage float64             `json:"percentage"`
}

// CategoryReport aggregates per-category totals for a date range.
type CategoryReport struct {
	Categories []CategoryTotal `json:"categories"`
	Totals     PeriodSummary   `json:"totals"`
}

// PeriodTotal is one row of the by-period time series. The series is dense:
// every period in the requested range appears, zero-valued when empty.
type PeriodTotal struct {
	Period  string          `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// Dashboard bundles the default dashboard payload.
type Dashboard struct {
	Summary            PeriodSummary        `json:"summary"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
	ExpensesByCategory []CategoryTotal      `json:"expenses_by_category"`
	Period             struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	} `json:"period"`
}

// ReportServicer defines the contract for the read-only reporting queries.
type ReportServicer interface {
	ByCategory(start, end time.Time, typeFilter *models.CategoryType) (*CategoryReport, error)
	ByPeriod(start, end time.Time, groupBy string) ([]PeriodTotal, error)
	Transactions(start, end time.Time, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	Summary(start, end time.Time) (*PeriodSummary, error)
	GetDashboard(start, end time.Time) (*Dashboard, error)
}
