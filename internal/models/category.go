package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction/bill category
type Category struct {
	Base
	Name  string       `gorm:"not null" json:"name"`
	Type  CategoryType `gorm:"not null" json:"type"`
	Icon  string       `json:"icon"`
	Color string       `json:"color,omitempty"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Bills        []Bill        `gorm:"foreignKey:CategoryID" json:"bills,omitempty"`
}
