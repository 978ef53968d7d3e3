package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsBoxTransactionType represents a ledger entry direction.
type SavingsBoxTransactionType string

const (
	SavingsBoxDeposit  SavingsBoxTransactionType = "deposit"
	SavingsBoxWithdraw SavingsBoxTransactionType = "withdraw"
)

// SavingsBox is a named sub-ledger of money set aside toward an optional
// goal. CurrentAmount is mutated only through deposit/withdraw, each of
// which writes a matching SavingsBoxTransaction in the same database
// transaction, so CurrentAmount always equals the running ledger sum.
type SavingsBox struct {
	Base
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `json:"description"`
	GoalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"goal_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"current_amount"`
	Icon          string          `gorm:"default:piggy-bank" json:"icon"`
	Color         string          `gorm:"default:#22C55E" json:"color"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`

	Transactions []SavingsBoxTransaction `gorm:"foreignKey:SavingsBoxID" json:"transactions,omitempty"`
}

// SavingsBoxTransaction is an append-only ledger row for a savings box.
type SavingsBoxTransaction struct {
	Base
	SavingsBoxID uint                      `gorm:"not null" json:"savings_box_id"`
	Type         SavingsBoxTransactionType `gorm:"not null" json:"type"`
	Amount       decimal.Decimal           `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description  string                    `json:"description"`
	Date         time.Time                 `gorm:"type:date;not null" json:"date"`
}
