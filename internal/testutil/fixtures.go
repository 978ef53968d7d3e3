package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/halarumdigital/agente-financeiro/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date builds a midnight-UTC calendar date, matching how the services store
// transaction and bill dates.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestCategory creates an active category of the given type with a
// unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Categoria %d", nextID()), categoryType)
}

// CreateTestCategoryWithName creates an active category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:     name,
		Type:     categoryType,
		Icon:     "tag",
		Color:    "#6B7280",
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction dated today.
func CreateTestTransaction(t *testing.T, db *gorm.DB, categoryID uint, transactionType models.TransactionType, amount string) *models.Transaction {
	t.Helper()
	now := time.Now()
	return CreateTestTransactionOnDate(t, db, categoryID, transactionType, amount, Date(now.Year(), now.Month(), now.Day()))
}

// CreateTestTransactionOnDate creates a transaction on the given date.
func CreateTestTransactionOnDate(t *testing.T, db *gorm.DB, categoryID uint, transactionType models.TransactionType, amount string, date time.Time) *models.Transaction {
	t.Helper()

	value, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", amount, err)
	}

	transaction := &models.Transaction{
		Type:        transactionType,
		Amount:      value,
		Description: fmt.Sprintf("Lançamento %d", nextID()),
		CategoryID:  categoryID,
		Date:        date,
		Source:      models.TransactionSourceManual,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestSavingsBox creates an active savings box with the given balance.
func CreateTestSavingsBox(t *testing.T, db *gorm.DB, balance string) *models.SavingsBox {
	t.Helper()

	value, err := decimal.NewFromString(balance)
	if err != nil {
		t.Fatalf("invalid fixture balance %q: %v", balance, err)
	}

	box := &models.SavingsBox{
		Name:          fmt.Sprintf("Caixinha %d", nextID()),
		GoalAmount:    decimal.NewFromInt(1000),
		CurrentAmount: value,
		Icon:          "piggy-bank",
		Color:         "#22C55E",
		IsActive:      true,
	}
	if err := db.Create(box).Error; err != nil {
		t.Fatalf("failed to create test savings box: %v", err)
	}
	return box
}

// CreateTestBill creates an active recurring bill with the given due day.
func CreateTestBill(t *testing.T, db *gorm.DB, dueDay int) *models.Bill {
	t.Helper()

	bill := &models.Bill{
		Name:               fmt.Sprintf("Conta %d", nextID()),
		Amount:             decimal.NewFromInt(150),
		DueDay:             dueDay,
		IsRecurring:        true,
		ReminderDaysBefore: 1,
		IsActive:           true,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}
