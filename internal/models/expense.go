package models

import "time"

// Expense categories.
const (
	ExpenseCategoryMaintenance = "maintenance"
	ExpenseCategoryUtilities   = "utilities"
	ExpenseCategorySupplies    = "supplies"
	ExpenseCategorySalary      = "salary"
	ExpenseCategoryOther       = "other"
)

// Expense is an entry in the outgoing-money ledger. Wholly independent of
// payments; never reconciled against them.
type Expense struct {
	BaseModel
	Category    string    `json:"category" gorm:"not null;size:30;index"`
	Description string    `json:"description" gorm:"not null;size:255"`
	Amount      int64     `json:"amount" gorm:"not null"`
	ExpenseDate time.Time `json:"expense_date" gorm:"type:date;not null;index"`
	Notes       *string   `json:"notes" gorm:"type:text"`
}

func (e *Expense) TableName() string {
	return "expenses"
}

// ValidExpenseCategory reports whether c is one of the accepted categories.
func ValidExpenseCategory(c string) bool {
	switch c {
	case ExpenseCategoryMaintenance, ExpenseCategoryUtilities,
		ExpenseCategorySupplies, ExpenseCategorySalary, ExpenseCategoryOther:
		return true
	}
	return false
}
