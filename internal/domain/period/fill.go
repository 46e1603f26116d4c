package period

import (
	"fmt"
	"time"

	"cardledger-go/internal/domain/account"
	"cardledger-go/internal/domain/expense"
	"cardledger-go/pkg/logger"
)

// FillFromAccount adds every payment of the account's expenses that
// falls in the period's month. When expenses is nil the account's own
// nested expenses are used. Subscriptions with no recorded payment for
// the month get a simulated one projected from their latest recorded
// payment. Rows that fail validation are skipped and logged; one bad
// payment must not hide the rest of the month. Disabled accounts are
// projected like any other; each row carries the Enabled flag so
// consumers can filter.
func (p *Period) FillFromAccount(acc account.Account, expenses []expense.Expense, log logger.Logger) {
	if expenses == nil {
		expenses = acc.Expenses
	}
	byID := make(map[string]*expense.Expense, len(expenses))
	for i := range expenses {
		byID[expenses[i].ID] = &expenses[i]
	}

	scoped := acc
	scoped.Expenses = expenses

	represented := make(map[string]struct{})
	for _, payment := range scoped.PaymentsIn(p.Month, p.Year) {
		e, ok := byID[payment.ExpenseID]
		if !ok {
			log.Warn("skipping payment with unknown expense", "payment_id", payment.ID, "expense_id", payment.ExpenseID)
			continue
		}

		row, err := NewPeriodPayment(payment, *e, acc)
		if err != nil {
			log.Warn("skipping period payment", "payment_id", payment.ID, "error", err)
			continue
		}
		if err := p.AddPayment(row); err != nil {
			log.Warn("skipping period payment", "payment_id", payment.ID, "error", err)
			continue
		}
		represented[e.ID] = struct{}{}
	}

	for i := range expenses {
		e := expenses[i]
		if _, ok := represented[e.ID]; ok {
			continue
		}
		if e.Kind != expense.KindSubscription || e.Status != expense.StatusActive {
			continue
		}

		simulated, ok := p.simulatedPayment(e)
		if !ok {
			continue
		}
		row, err := NewPeriodPayment(simulated, e, acc)
		if err != nil {
			log.Warn("skipping simulated payment", "expense_id", e.ID, "error", err)
			continue
		}
		if err := p.AddPayment(row); err != nil {
			log.Warn("skipping simulated payment", "expense_id", e.ID, "error", err)
		}
	}
}

// simulatedPayment projects the subscription's payment stream forward
// into the period. Only subscriptions with at least one recorded
// payment are projected; the day of the month the subscription is
// billed on is kept, clamped to the period's last day.
func (p *Period) simulatedPayment(e expense.Expense) (expense.Payment, bool) {
	latest := e.LatestPayment()
	if latest == nil {
		return expense.Payment{}, false
	}

	targetIdx := p.Year*12 + p.Month - 1
	elapsed := targetIdx - monthIndex(latest.PaymentDate)
	if elapsed <= 0 {
		return expense.Payment{}, false
	}

	day := latest.PaymentDate.Day()
	if !e.FirstPaymentDate.IsZero() {
		day = e.FirstPaymentDate.Day()
	}
	noInstallment := latest.NoInstallment + elapsed

	if last := daysInMonth(p.Year, time.Month(p.Month)); day > last {
		day = last
	}

	return expense.Payment{
		ID:            fmt.Sprintf("%s:%04d-%02d", e.ID, p.Year, p.Month),
		ExpenseID:     e.ID,
		Amount:        e.Amount,
		NoInstallment: noInstallment,
		Status:        expense.PaymentSimulated,
		PaymentDate:   time.Date(p.Year, time.Month(p.Month), day, 0, 0, 0, 0, time.UTC),
	}, true
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
