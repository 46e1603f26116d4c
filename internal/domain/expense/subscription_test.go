package expense

import (
	"errors"
	"testing"
	"time"

	"cardledger-go/internal/domain/money"
)

func newTestSubscription(t *testing.T) *Expense {
	t.Helper()
	e, err := NewSubscription(NewSubscriptionInput{
		ID:               "sub-1",
		AccountID:        "acc-1",
		Title:            "Streaming",
		AcquiredAt:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:           money.FromFloat(9.99),
		FirstPaymentDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return e
}

func subPayment(id string, amount float64, date time.Time) Payment {
	return Payment{
		ID:          id,
		ExpenseID:   "sub-1",
		Amount:      money.FromFloat(amount),
		Status:      PaymentPaid,
		PaymentDate: date,
	}
}

func TestAddNewPaymentKeepsStreamOrdered(t *testing.T) {
	e := newTestSubscription(t)

	// Added out of order on purpose.
	payments := []Payment{
		subPayment("pay-feb", 10.99, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)),
		subPayment("pay-jan", 9.99, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)),
		subPayment("pay-mar", 11.99, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
	}
	for _, p := range payments {
		if err := e.AddNewPayment(p); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	wantIDs := []string{"pay-jan", "pay-feb", "pay-mar"}
	for i, p := range e.Payments {
		if p.ID != wantIDs[i] {
			t.Fatalf("position %d: expected %s, got %s", i, wantIDs[i], p.ID)
		}
		if p.NoInstallment != i+1 {
			t.Fatalf("position %d: expected installment %d, got %d", i, i+1, p.NoInstallment)
		}
	}
	if e.Installments != 3 {
		t.Fatalf("expected 3 installments, got %d", e.Installments)
	}
	if !e.Amount.EqualFloat(11.99) {
		t.Fatalf("expected amount tracking latest payment, got %s", e.Amount)
	}
}

func TestAddNewPaymentUndatedSortsLast(t *testing.T) {
	e := newTestSubscription(t)

	if err := e.AddNewPayment(subPayment("pay-dated", 9.99, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	undated := subPayment("pay-undated", 9.99, time.Time{})
	if err := e.AddNewPayment(undated); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if e.Payments[1].ID != "pay-undated" {
		t.Fatalf("expected undated payment last, got %s", e.Payments[1].ID)
	}
	if !e.Amount.EqualFloat(9.99) {
		t.Fatalf("expected amount from latest dated payment, got %s", e.Amount)
	}
}

func TestAddNewPaymentRejectsForeignPayment(t *testing.T) {
	e := newTestSubscription(t)

	p := subPayment("pay-1", 9.99, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	p.ExpenseID = "other-expense"
	err := e.AddNewPayment(p)
	if !errors.Is(err, ErrMismatchedExpense) {
		t.Fatalf("expected ErrMismatchedExpense, got %v", err)
	}
	if len(e.Payments) != 0 {
		t.Fatalf("expected stream unchanged, got %d payments", len(e.Payments))
	}
}

func TestAddNewPaymentRejectsPurchase(t *testing.T) {
	e := newTestPurchase(t, 100, 3)

	err := e.AddNewPayment(subPayment("pay-1", 10, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	if !errors.Is(err, ErrFixedInstallments) {
		t.Fatalf("expected ErrFixedInstallments, got %v", err)
	}
}

func TestRemovePaymentRenumbers(t *testing.T) {
	e := newTestSubscription(t)
	for _, p := range []Payment{
		subPayment("pay-jan", 9.99, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)),
		subPayment("pay-feb", 9.99, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)),
		subPayment("pay-mar", 9.99, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
	} {
		if err := e.AddNewPayment(p); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	if err := e.RemovePayment("pay-feb"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(e.Payments) != 2 || e.Installments != 2 {
		t.Fatalf("expected 2 payments, got %d (installments %d)", len(e.Payments), e.Installments)
	}
	if e.Payments[0].ID != "pay-jan" || e.Payments[0].NoInstallment != 1 {
		t.Fatalf("unexpected first payment %s/%d", e.Payments[0].ID, e.Payments[0].NoInstallment)
	}
	if e.Payments[1].ID != "pay-mar" || e.Payments[1].NoInstallment != 2 {
		t.Fatalf("unexpected second payment %s/%d", e.Payments[1].ID, e.Payments[1].NoInstallment)
	}
}

func TestRemovePaymentNotFound(t *testing.T) {
	e := newTestSubscription(t)

	err := e.RemovePayment("missing")
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestUpdateSubscriptionPaymentReordersByNewDate(t *testing.T) {
	e := newTestSubscription(t)
	for _, p := range []Payment{
		subPayment("pay-jan", 9.99, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)),
		subPayment("pay-feb", 9.99, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)),
	} {
		if err := e.AddNewPayment(p); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	update := e.Payments[0]
	update.Amount = money.FromFloat(12.50)
	update.PaymentDate = time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	if err := e.UpdatePayment("pay-jan", update); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if e.Payments[1].ID != "pay-jan" {
		t.Fatalf("expected moved payment last, got %s", e.Payments[1].ID)
	}
	if e.Payments[0].NoInstallment != 1 || e.Payments[1].NoInstallment != 2 {
		t.Fatalf("expected renumbered stream, got %d/%d", e.Payments[0].NoInstallment, e.Payments[1].NoInstallment)
	}
	if !e.Amount.EqualFloat(12.50) {
		t.Fatalf("expected amount tracking latest payment, got %s", e.Amount)
	}
}

func TestNextPaymentFromLatest(t *testing.T) {
	e := newTestSubscription(t)
	if err := e.AddNewPayment(subPayment("pay-jan", 9.99, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	next, err := e.NextPayment(1, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if !next.PaymentDate.Equal(want) {
		t.Fatalf("expected date %s, got %s", want, next.PaymentDate)
	}
	if !next.Amount.EqualFloat(9.99) {
		t.Fatalf("expected 9.99, got %s", next.Amount)
	}
	if next.Status != PaymentUnconfirmed {
		t.Fatalf("expected unconfirmed, got %s", next.Status)
	}
	if next.ID != "" {
		t.Fatalf("preview must not carry an identity, got %q", next.ID)
	}
}

func TestNextPaymentEmptyStreamUsesFirstPaymentDate(t *testing.T) {
	e := newTestSubscription(t)

	next, err := e.NextPayment(1, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !next.PaymentDate.Equal(e.FirstPaymentDate) {
		t.Fatalf("expected first payment date, got %s", next.PaymentDate)
	}
	if next.Status != PaymentSimulated {
		t.Fatalf("expected simulated, got %s", next.Status)
	}
	if next.NoInstallment != 1 {
		t.Fatalf("expected installment 1, got %d", next.NoInstallment)
	}
}

func TestNextPaymentScalesByFactor(t *testing.T) {
	e := newTestSubscription(t)

	next, err := e.NextPayment(1.5, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := next.Amount.Cents(); got != 1499 {
		t.Fatalf("expected 1499 cents, got %d", got)
	}
}

func TestNextPaymentInvalidFactor(t *testing.T) {
	e := newTestSubscription(t)

	if _, err := e.NextPayment(0, false); !errors.Is(err, ErrInvalidFactor) {
		t.Fatalf("expected ErrInvalidFactor, got %v", err)
	}
	if _, err := e.NextPayment(-2, false); !errors.Is(err, ErrInvalidFactor) {
		t.Fatalf("expected ErrInvalidFactor, got %v", err)
	}
}

func TestNextPaymentRejectsPurchase(t *testing.T) {
	e := newTestPurchase(t, 100, 3)

	if _, err := e.NextPayment(1, false); !errors.Is(err, ErrFixedInstallments) {
		t.Fatalf("expected ErrFixedInstallments, got %v", err)
	}
}
