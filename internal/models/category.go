package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome     CategoryType = "income"
	CategoryTypeExpense    CategoryType = "expense"
	CategoryTypeInvestment CategoryType = "investment"
)

// FallbackCategoryName is the catch-all category used when free-text
// resolution finds no better match.
const FallbackCategoryName = "Outros"

// Category represents a transaction category
type Category struct {
	Base
	Name     string       `gorm:"not null" json:"name"`
	Type     CategoryType `gorm:"not null" json:"type"`
	Icon     string       `json:"icon"`
	Color    string       `json:"color"`
	IsActive bool         `gorm:"not null;default:true" json:"is_active"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
