package expense

import (
	"time"

	"cardledger-go/internal/domain/money"
)

type PaymentStatus string

const (
	PaymentUnconfirmed PaymentStatus = "unconfirmed"
	PaymentConfirmed   PaymentStatus = "confirmed"
	PaymentPaid        PaymentStatus = "paid"
	PaymentCanceled    PaymentStatus = "canceled"
	PaymentSimulated   PaymentStatus = "simulated"
)

// IsFinal reports whether the payment can no longer be touched by
// rebalancing.
func (s PaymentStatus) IsFinal() bool {
	return s == PaymentPaid || s == PaymentCanceled
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentUnconfirmed, PaymentConfirmed, PaymentPaid, PaymentCanceled, PaymentSimulated:
		return true
	}
	return false
}

// Kind is the closed set of expense variants.
type Kind string

const (
	KindPurchase     Kind = "purchase"
	KindSubscription Kind = "subscription"
)

func (k Kind) Valid() bool {
	return k == KindPurchase || k == KindSubscription
}

type Status string

const (
	// Purchase lifecycle.
	StatusPending  Status = "pending"
	StatusFinished Status = "finished"
	// Subscription lifecycle. Cancellation is decided outside this
	// package; the field is only carried.
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

type Payment struct {
	ID            string        `gorm:"type:uuid;primaryKey"`
	ExpenseID     string        `gorm:"type:uuid;index;not null"`
	Amount        money.Amount  `gorm:"type:numeric(12,2);not null"`
	NoInstallment int           `gorm:"not null"`
	Status        PaymentStatus `gorm:"size:16;not null"`
	PaymentDate   time.Time     `gorm:"type:date"`
	IsLastPayment bool          `gorm:"not null"`
}

func (p Payment) HasDate() bool {
	return !p.PaymentDate.IsZero()
}

// Expense is the aggregate root for one purchase or subscription and
// the full set of payments that settle it. Payments is never nil on an
// aggregate built through the factories or loaded by a repository.
type Expense struct {
	ID               string       `gorm:"type:uuid;primaryKey"`
	AccountID        string       `gorm:"type:uuid;index;not null"`
	Title            string       `gorm:"not null"`
	CCName           string       `gorm:"column:cc_name"`
	AcquiredAt       time.Time    `gorm:"type:date;not null"`
	Amount           money.Amount `gorm:"type:numeric(12,2);not null"`
	Kind             Kind         `gorm:"size:16;not null"`
	Installments     int          `gorm:"not null"`
	FirstPaymentDate time.Time    `gorm:"type:date"`
	Status           Status       `gorm:"size:16;not null"`
	CategoryID       string
	Payments         []Payment    `gorm:"foreignKey:ExpenseID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time    `gorm:"autoCreateTime"`
	UpdatedAt        time.Time    `gorm:"autoUpdateTime"`
}

// PaidAmount is the sum of payments already settled.
func (e *Expense) PaidAmount() money.Amount {
	total := money.Zero()
	for _, p := range e.Payments {
		if p.Status == PaymentPaid {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// PendingAmount is the sum of payments still owed: everything that is
// neither paid nor canceled.
func (e *Expense) PendingAmount() money.Amount {
	total := money.Zero()
	for _, p := range e.Payments {
		if !p.Status.IsFinal() {
			total = total.Add(p.Amount)
		}
	}
	return total
}

func (e *Expense) DoneInstallments() int {
	count := 0
	for _, p := range e.Payments {
		if p.Status == PaymentPaid {
			count++
		}
	}
	return count
}

func (e *Expense) PendingInstallments() int {
	count := 0
	for _, p := range e.Payments {
		if !p.Status.IsFinal() {
			count++
		}
	}
	return count
}

// PendingFinancingAmount is the part of the pending amount that is
// financed over installments. Single-payment purchases and
// subscriptions carry no financing.
func (e *Expense) PendingFinancingAmount() (money.Amount, error) {
	switch e.Kind {
	case KindPurchase:
		if e.Installments == 1 {
			return money.Zero(), nil
		}
		return e.PendingAmount(), nil
	case KindSubscription:
		return money.Zero(), nil
	default:
		return money.Amount{}, ErrUnknownKind
	}
}

// UpdatePayment routes a payment edit to the variant's own
// consistency-repair algorithm. The aggregate is left untouched when
// an error is returned.
func (e *Expense) UpdatePayment(paymentID string, update Payment) error {
	switch e.Kind {
	case KindPurchase:
		return e.updatePurchasePayment(paymentID, update)
	case KindSubscription:
		return e.updateSubscriptionPayment(paymentID, update)
	default:
		return ErrUnknownKind
	}
}

func (e *Expense) findPayment(paymentID string) int {
	for i, p := range e.Payments {
		if p.ID == paymentID {
			return i
		}
	}
	return -1
}

// LatestPayment returns the payment with the most recent date, or nil
// when the expense has no dated payments.
func (e *Expense) LatestPayment() *Payment {
	var latest *Payment
	for i := range e.Payments {
		p := &e.Payments[i]
		if !p.HasDate() {
			continue
		}
		if latest == nil || p.PaymentDate.After(latest.PaymentDate) {
			latest = p
		}
	}
	return latest
}

// addMonths advances a date by whole calendar months, clamping the day
// to the target month's last day (Jan 31 + 1 month = Feb 28/29).
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	shifted := first.AddDate(0, months, 0)

	last := daysInMonth(shifted.Year(), shifted.Month())
	if day > last {
		day = last
	}
	return time.Date(shifted.Year(), shifted.Month(), day, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
