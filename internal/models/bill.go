package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a recurring monthly obligation identified by a day-of-month due
// date rather than an absolute date. "Next occurrence" is computed against
// the current calendar day at read time.
type Bill struct {
	Base
	Name               string          `gorm:"not null" json:"name"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	DueDay             int             `gorm:"not null" json:"due_day"`
	CategoryID         *uint           `json:"category_id,omitempty"`
	IsRecurring        bool            `gorm:"not null;default:true" json:"is_recurring"`
	ReminderDaysBefore int             `gorm:"not null;default:1" json:"reminder_days_before"`
	IsActive           bool            `gorm:"not null;default:true" json:"is_active"`
	LastReminderDate   *time.Time      `gorm:"type:date" json:"last_reminder_date,omitempty"`
	LastPaidDate       *time.Time      `gorm:"type:date" json:"last_paid_date,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
