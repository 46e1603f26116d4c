package account

import (
	"time"

	"cardledger-go/internal/domain/expense"
)

type Type string

const (
	TypeCreditCard Type = "credit_card"
	TypeDebitCard  Type = "debit_card"
	TypePrepaid    Type = "prepaid"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCreditCard, TypeDebitCard, TypePrepaid:
		return true
	}
	return false
}

type Account struct {
	ID        string            `gorm:"type:uuid;primaryKey"`
	UserID    string            `gorm:"type:uuid;index;not null"`
	Alias     string            `gorm:"not null"`
	CCName    string            `gorm:"column:cc_name"`
	Type      Type              `gorm:"size:16;not null"`
	Enabled   bool              `gorm:"not null;default:true"`
	Expenses  []expense.Expense `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"autoCreateTime"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime"`
}

// PaymentsIn returns the account's persisted payments dated inside the
// given calendar month. Undated payments never match.
func (a Account) PaymentsIn(month, year int) []expense.Payment {
	var payments []expense.Payment
	for _, e := range a.Expenses {
		for _, p := range e.Payments {
			if !p.HasDate() {
				continue
			}
			if int(p.PaymentDate.Month()) == month && p.PaymentDate.Year() == year {
				payments = append(payments, p)
			}
		}
	}
	return payments
}

type CreateAccountInput struct {
	UserID string
	Alias  string
	CCName string
	Type   Type
}

type UpdateAccountInput struct {
	UserID    string
	AccountID string
	Alias     string
	CCName    string
	Enabled   *bool
}
