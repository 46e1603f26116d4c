package period

import (
	"fmt"
	"time"

	"cardledger-go/internal/domain/account"
	"cardledger-go/internal/domain/expense"
	"cardledger-go/internal/domain/money"
)

// PeriodPayment is a denormalized read-model row: one payment joined
// with the descriptive fields of its expense and account. Rows are
// built fresh per query and never persisted.
type PeriodPayment struct {
	PaymentID     string
	ExpenseID     string
	AccountID     string
	Title         string
	CCName        string
	AcquiredAt    time.Time
	ExpenseKind   expense.Kind
	ExpenseStatus expense.Status
	Installments  int
	CategoryID    string
	AccountAlias  string
	AccountType   account.Type
	Enabled       bool
	Amount        money.Amount
	NoInstallment int
	Status        expense.PaymentStatus
	PaymentDate   time.Time
	IsLastPayment bool
}

// NewPeriodPayment validates that payment, expense and account belong
// together before flattening them into one row.
func NewPeriodPayment(p expense.Payment, e expense.Expense, a account.Account) (PeriodPayment, error) {
	if p.ID == "" {
		return PeriodPayment{}, fmt.Errorf("payment has no identity")
	}
	if p.ExpenseID != e.ID {
		return PeriodPayment{}, fmt.Errorf("payment %s does not belong to expense %s", p.ID, e.ID)
	}
	if e.AccountID != a.ID {
		return PeriodPayment{}, fmt.Errorf("expense %s does not belong to account %s", e.ID, a.ID)
	}

	return PeriodPayment{
		PaymentID:     p.ID,
		ExpenseID:     e.ID,
		AccountID:     a.ID,
		Title:         e.Title,
		CCName:        e.CCName,
		AcquiredAt:    e.AcquiredAt,
		ExpenseKind:   e.Kind,
		ExpenseStatus: e.Status,
		Installments:  e.Installments,
		CategoryID:    e.CategoryID,
		AccountAlias:  a.Alias,
		AccountType:   a.Type,
		Enabled:       a.Enabled,
		Amount:        p.Amount,
		NoInstallment: p.NoInstallment,
		Status:        p.Status,
		PaymentDate:   p.PaymentDate,
		IsLastPayment: p.IsLastPayment,
	}, nil
}

// Period aggregates the payments due across a user's accounts for one
// calendar month. Built fresh per request; never persisted.
type Period struct {
	ID       string
	Month    int
	Year     int
	Payments []PeriodPayment

	seen map[string]struct{}
}

func NewPeriod(month, year int) (*Period, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}
	if year < 2000 {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidPeriod, year)
	}

	return &Period{
		ID:       fmt.Sprintf("%04d-%02d", year, month),
		Month:    month,
		Year:     year,
		Payments: []PeriodPayment{},
		seen:     make(map[string]struct{}),
	}, nil
}

// AddPayment appends a row to the period. Adding a payment whose
// identity is already present is a no-op.
func (p *Period) AddPayment(row PeriodPayment) error {
	if row.PaymentID == "" {
		return fmt.Errorf("period payment has no identity")
	}
	if _, ok := p.seen[row.PaymentID]; ok {
		return nil
	}

	p.seen[row.PaymentID] = struct{}{}
	p.Payments = append(p.Payments, row)
	return nil
}

func (p *Period) TotalPayments() int {
	return len(p.Payments)
}

func (p *Period) TotalAmount() money.Amount {
	total := money.Zero()
	for _, row := range p.Payments {
		total = total.Add(row.Amount)
	}
	return total
}

func (p *Period) TotalPaidAmount() money.Amount {
	return p.sumByStatus(expense.PaymentPaid)
}

func (p *Period) TotalConfirmedAmount() money.Amount {
	return p.sumByStatus(expense.PaymentConfirmed, expense.PaymentPaid)
}

func (p *Period) TotalPendingAmount() money.Amount {
	return p.sumByStatus(expense.PaymentUnconfirmed)
}

// PendingPayments and CompletedPayments partition the period's rows by
// final status.
func (p *Period) PendingPayments() []PeriodPayment {
	result := make([]PeriodPayment, 0, len(p.Payments))
	for _, row := range p.Payments {
		if !row.Status.IsFinal() {
			result = append(result, row)
		}
	}
	return result
}

func (p *Period) CompletedPayments() []PeriodPayment {
	result := make([]PeriodPayment, 0, len(p.Payments))
	for _, row := range p.Payments {
		if row.Status.IsFinal() {
			result = append(result, row)
		}
	}
	return result
}

func (p *Period) sumByStatus(statuses ...expense.PaymentStatus) money.Amount {
	total := money.Zero()
	for _, row := range p.Payments {
		for _, status := range statuses {
			if row.Status == status {
				total = total.Add(row.Amount)
				break
			}
		}
	}
	return total
}
