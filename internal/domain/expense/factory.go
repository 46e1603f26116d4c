package expense

import (
	"fmt"
	"strings"
	"time"

	"cardledger-go/internal/domain/money"
)

type NewPurchaseInput struct {
	ID               string
	AccountID        string
	Title            string
	CCName           string
	AcquiredAt       time.Time
	Amount           money.Amount
	Installments     int
	FirstPaymentDate time.Time
	CategoryID       string
}

// NewPurchase builds a purchase aggregate with its full installment
// plan already generated. Construction never partially succeeds: either
// every field validates and the payments exist, or nothing is built.
func NewPurchase(input NewPurchaseInput) (*Expense, error) {
	if err := validateCommon(input.ID, input.AccountID, input.Title, input.AcquiredAt); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if input.Installments < 1 {
		return nil, fmt.Errorf("installments must be at least 1")
	}

	e := &Expense{
		ID:               input.ID,
		AccountID:        input.AccountID,
		Title:            strings.TrimSpace(input.Title),
		CCName:           strings.TrimSpace(input.CCName),
		AcquiredAt:       input.AcquiredAt,
		Amount:           input.Amount,
		Kind:             KindPurchase,
		Installments:     input.Installments,
		FirstPaymentDate: input.FirstPaymentDate,
		CategoryID:       input.CategoryID,
	}
	e.generateInstallments()
	return e, nil
}

type NewSubscriptionInput struct {
	ID               string
	AccountID        string
	Title            string
	CCName           string
	AcquiredAt       time.Time
	Amount           money.Amount
	FirstPaymentDate time.Time
	CategoryID       string
}

// NewSubscription builds an open-ended subscription with an empty
// payment stream. Amount is the nominal charge until the first real
// payment arrives, after which it tracks the most recent payment.
func NewSubscription(input NewSubscriptionInput) (*Expense, error) {
	if err := validateCommon(input.ID, input.AccountID, input.Title, input.AcquiredAt); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}

	return &Expense{
		ID:               input.ID,
		AccountID:        input.AccountID,
		Title:            strings.TrimSpace(input.Title),
		CCName:           strings.TrimSpace(input.CCName),
		AcquiredAt:       input.AcquiredAt,
		Amount:           input.Amount,
		Kind:             KindSubscription,
		Installments:     0,
		FirstPaymentDate: input.FirstPaymentDate,
		Status:           StatusActive,
		CategoryID:       input.CategoryID,
		Payments:         []Payment{},
	}, nil
}

type NewPaymentInput struct {
	ID          string
	ExpenseID   string
	Amount      money.Amount
	Status      PaymentStatus
	PaymentDate time.Time
}

// NewPayment validates and builds one payment. The installment number
// is assigned by the owning expense when the payment joins its stream.
func NewPayment(input NewPaymentInput) (Payment, error) {
	if input.ID == "" {
		return Payment{}, fmt.Errorf("payment id is required")
	}
	if input.ExpenseID == "" {
		return Payment{}, fmt.Errorf("expense id is required")
	}
	if input.Amount.IsNegative() {
		return Payment{}, fmt.Errorf("amount must not be negative")
	}
	status := input.Status
	if status == "" {
		status = PaymentUnconfirmed
	}
	if !status.Valid() {
		return Payment{}, fmt.Errorf("invalid payment status %q", input.Status)
	}

	return Payment{
		ID:          input.ID,
		ExpenseID:   input.ExpenseID,
		Amount:      input.Amount,
		Status:      status,
		PaymentDate: input.PaymentDate,
	}, nil
}

func validateCommon(id, accountID, title string, acquiredAt time.Time) error {
	if id == "" {
		return fmt.Errorf("expense id is required")
	}
	if accountID == "" {
		return fmt.Errorf("account id is required")
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if acquiredAt.IsZero() {
		return fmt.Errorf("acquired_at is required")
	}
	return nil
}
