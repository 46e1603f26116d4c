package expense

import (
	"fmt"
	"sort"
)

// AddNewPayment appends a charge to the subscription's stream and
// restores the stream invariants: payments sorted ascending by date
// (undated last), installment numbers matching position, Amount
// tracking the most recent payment, Installments tracking the count.
func (e *Expense) AddNewPayment(payment Payment) error {
	if e.Kind != KindSubscription {
		return ErrFixedInstallments
	}
	if payment.ExpenseID != e.ID {
		return fmt.Errorf("%w: got %q, want %q", ErrMismatchedExpense, payment.ExpenseID, e.ID)
	}

	e.Payments = append(clonePayments(e.Payments), payment)
	e.resequence()
	return nil
}

// RemovePayment drops a charge from the stream.
func (e *Expense) RemovePayment(paymentID string) error {
	if e.Kind != KindSubscription {
		return ErrFixedInstallments
	}

	idx := e.findPayment(paymentID)
	if idx < 0 {
		return ErrPaymentNotFound
	}

	payments := clonePayments(e.Payments)
	e.Payments = append(payments[:idx], payments[idx+1:]...)
	e.resequence()
	return nil
}

func (e *Expense) updateSubscriptionPayment(paymentID string, update Payment) error {
	idx := e.findPayment(paymentID)
	if idx < 0 {
		return ErrPaymentNotFound
	}

	payments := clonePayments(e.Payments)
	target := &payments[idx]
	target.Amount = update.Amount
	if update.Status != "" {
		target.Status = update.Status
	}
	if !update.PaymentDate.IsZero() {
		target.PaymentDate = update.PaymentDate
	}

	e.Payments = payments
	e.resequence()
	return nil
}

// NextPayment projects the subscription's next charge: one month after
// the latest existing payment (or FirstPaymentDate when the stream is
// empty), amount scaled by factor. Nothing is persisted; the returned
// payment has no identity yet.
func (e *Expense) NextPayment(factor float64, simulated bool) (Payment, error) {
	if e.Kind != KindSubscription {
		return Payment{}, ErrFixedInstallments
	}
	if factor <= 0 {
		return Payment{}, fmt.Errorf("%w: %v", ErrInvalidFactor, factor)
	}

	date := e.FirstPaymentDate
	if latest := e.LatestPayment(); latest != nil {
		date = addMonths(latest.PaymentDate, 1)
	}

	status := PaymentUnconfirmed
	if simulated {
		status = PaymentSimulated
	}

	return Payment{
		ExpenseID:     e.ID,
		Amount:        e.Amount.MulFloat(factor),
		NoInstallment: len(e.Payments) + 1,
		Status:        status,
		PaymentDate:   date,
	}, nil
}

// resequence restores the subscription invariants after any mutation
// of the payment stream.
func (e *Expense) resequence() {
	sort.SliceStable(e.Payments, func(i, j int) bool {
		a, b := e.Payments[i], e.Payments[j]
		if !a.HasDate() {
			return false
		}
		if !b.HasDate() {
			return true
		}
		return a.PaymentDate.Before(b.PaymentDate)
	})

	for i := range e.Payments {
		e.Payments[i].NoInstallment = i + 1
		e.Payments[i].IsLastPayment = false
	}

	e.Installments = len(e.Payments)
	if latest := e.LatestPayment(); latest != nil {
		e.Amount = latest.Amount
	}
}
