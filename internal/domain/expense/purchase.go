package expense

import (
	"fmt"

	"cardledger-go/internal/domain/money"
)

// generateInstallments splits the purchase amount into Installments
// payments, one month apart starting from FirstPaymentDate (or
// AcquiredAt when unset). The split works in integer cents: every
// payment gets total/n cents and the first total%n payments carry one
// extra cent, so the payments always sum to the amount exactly.
func (e *Expense) generateInstallments() {
	n := int64(e.Installments)
	total := e.Amount.Cents()
	base := total / n
	extra := total % n

	start := e.FirstPaymentDate
	if start.IsZero() {
		start = e.AcquiredAt
	}

	payments := make([]Payment, 0, e.Installments)
	for i := int64(0); i < n; i++ {
		cents := base
		if i < extra {
			cents++
		}
		payments = append(payments, Payment{
			ExpenseID:     e.ID,
			Amount:        money.FromCents(cents),
			NoInstallment: int(i) + 1,
			Status:        PaymentUnconfirmed,
			PaymentDate:   addMonths(start, int(i)),
			IsLastPayment: i == n-1,
		})
	}

	e.Payments = payments
	e.Status = StatusPending
}

// updatePurchasePayment overwrites the target payment with the edit and
// rebalances the remaining non-final payments so the cent-exact sum
// invariant holds. The edited payment acts as an anchor: its new amount
// is kept and the leftover is redistributed across the others. On any
// error the aggregate is left exactly as it was.
func (e *Expense) updatePurchasePayment(paymentID string, update Payment) error {
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

	if err := rebalance(payments, e.Amount.Cents(), idx); err != nil {
		return err
	}

	maintainLastPaymentFlag(payments)

	e.Payments = payments
	e.Status = purchaseStatus(payments)
	return nil
}

// rebalance distributes the total minus all final payments across the
// non-final payments, keeping the payment at anchorIdx fixed when it is
// itself non-final. Distribution is deterministic: base cents each,
// with the first remainder payments (in existing order) getting one
// extra cent.
func rebalance(payments []Payment, totalCents int64, anchorIdx int) error {
	remaining := totalCents
	for _, p := range payments {
		if p.Status.IsFinal() {
			remaining -= p.Amount.Cents()
		}
	}
	if remaining < 0 {
		return fmt.Errorf("%w: final payments exceed total by %d cents", ErrInvariantViolation, -remaining)
	}

	if !payments[anchorIdx].Status.IsFinal() {
		remaining -= payments[anchorIdx].Amount.Cents()
		if remaining < 0 {
			return fmt.Errorf("%w: edited payment exceeds remaining amount by %d cents", ErrInvariantViolation, -remaining)
		}
	}

	var targets []*Payment
	for i := range payments {
		if i == anchorIdx || payments[i].Status.IsFinal() {
			continue
		}
		targets = append(targets, &payments[i])
	}

	if len(targets) == 0 {
		if remaining != 0 {
			return fmt.Errorf("%w: %d cents left with no payment to carry them", ErrInvariantViolation, remaining)
		}
		return nil
	}

	base := remaining / int64(len(targets))
	extra := remaining % int64(len(targets))
	for i, t := range targets {
		cents := base
		if int64(i) < extra {
			cents++
		}
		t.Amount = money.FromCents(cents)
	}

	return nil
}

// maintainLastPaymentFlag marks the final remaining installment: the
// non-final payment after which no non-final installment exists.
func maintainLastPaymentFlag(payments []Payment) {
	last := -1
	for i := range payments {
		payments[i].IsLastPayment = false
		if !payments[i].Status.IsFinal() {
			last = i
		}
	}
	if last >= 0 {
		payments[last].IsLastPayment = true
	}
}

func purchaseStatus(payments []Payment) Status {
	for _, p := range payments {
		if !p.Status.IsFinal() {
			return StatusPending
		}
	}
	return StatusFinished
}

func clonePayments(payments []Payment) []Payment {
	cloned := make([]Payment, len(payments))
	copy(cloned, payments)
	return cloned
}
