package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// TransactionSource identifies where a transaction was created.
type TransactionSource string

const (
	TransactionSourceManual      TransactionSource = "manual"
	TransactionSourceTelegram    TransactionSource = "telegram"
	TransactionSourceBillPayment TransactionSource = "bill_payment"
)

// Transaction represents a financial transaction. Transactions are immutable
// once created: there is no update path, only creation and listing.
type Transaction struct {
	Base
	Type              TransactionType   `gorm:"not null" json:"type"`
	Amount            decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description       string            `json:"description"`
	CategoryID        uint              `gorm:"not null" json:"category_id"`
	Date              time.Time         `gorm:"type:date;not null" json:"date"`
	Notes             string            `json:"notes"`
	Source            TransactionSource `gorm:"not null;default:manual" json:"source"`
	TelegramMessageID *int              `json:"telegram_message_id,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
