package models

import "time"

// Base contains common columns for all tables. Rows are never physically
// removed; entities that support deletion carry an IsActive flag instead so
// historical transactions keep valid references.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
