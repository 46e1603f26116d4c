package expense

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"cardledger-go/internal/domain/money"
)

func newTestPurchase(t *testing.T, amount float64, installments int) *Expense {
	t.Helper()
	e, err := NewPurchase(NewPurchaseInput{
		ID:           "exp-1",
		AccountID:    "acc-1",
		Title:        "Laptop",
		AcquiredAt:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Amount:       money.FromFloat(amount),
		Installments: installments,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for i := range e.Payments {
		e.Payments[i].ID = fmt.Sprintf("pay-%d", i+1)
	}
	return e
}

func sumCents(payments []Payment) int64 {
	var total int64
	for _, p := range payments {
		total += p.Amount.Cents()
	}
	return total
}

func TestNewPurchaseGeneratesExactInstallments(t *testing.T) {
	e := newTestPurchase(t, 100.00, 3)

	if len(e.Payments) != 3 {
		t.Fatalf("expected 3 payments, got %d", len(e.Payments))
	}
	want := []int64{3334, 3333, 3333}
	for i, p := range e.Payments {
		if p.Amount.Cents() != want[i] {
			t.Fatalf("payment %d: expected %d cents, got %d", i, want[i], p.Amount.Cents())
		}
		if p.NoInstallment != i+1 {
			t.Fatalf("payment %d: expected installment %d, got %d", i, i+1, p.NoInstallment)
		}
		if p.Status != PaymentUnconfirmed {
			t.Fatalf("payment %d: expected unconfirmed, got %s", i, p.Status)
		}
	}
	if sumCents(e.Payments) != e.Amount.Cents() {
		t.Fatalf("payments sum to %d cents, amount is %d", sumCents(e.Payments), e.Amount.Cents())
	}
	if !e.Payments[2].IsLastPayment {
		t.Fatalf("expected last payment flagged")
	}
	if e.Status != StatusPending {
		t.Fatalf("expected pending status, got %s", e.Status)
	}
}

func TestNewPurchaseInstallmentDates(t *testing.T) {
	e, err := NewPurchase(NewPurchaseInput{
		ID:               "exp-1",
		AccountID:        "acc-1",
		Title:            "Fridge",
		AcquiredAt:       time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Amount:           money.FromFloat(300),
		Installments:     3,
		FirstPaymentDate: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []time.Time{
		time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	for i, p := range e.Payments {
		if !p.PaymentDate.Equal(want[i]) {
			t.Fatalf("payment %d: expected date %s, got %s", i, want[i], p.PaymentDate)
		}
	}
}

func TestUpdatePaymentRebalancesAfterPaid(t *testing.T) {
	e := newTestPurchase(t, 100.00, 3)

	update := e.Payments[0]
	update.Status = PaymentPaid
	if err := e.UpdatePayment(e.Payments[0].ID, update); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := e.Payments[0].Amount.Cents(); got != 3334 {
		t.Fatalf("paid payment changed: expected 3334 cents, got %d", got)
	}
	if got := e.Payments[1].Amount.Cents(); got != 3333 {
		t.Fatalf("expected 3333 cents, got %d", got)
	}
	if got := e.Payments[2].Amount.Cents(); got != 3333 {
		t.Fatalf("expected 3333 cents, got %d", got)
	}
	if sumCents(e.Payments) != e.Amount.Cents() {
		t.Fatalf("sum invariant broken: %d vs %d", sumCents(e.Payments), e.Amount.Cents())
	}
}

func TestUpdatePaymentAnchorsEditedAmount(t *testing.T) {
	e := newTestPurchase(t, 100.00, 3)

	update := e.Payments[0]
	update.Amount = money.FromFloat(50)
	if err := e.UpdatePayment(e.Payments[0].ID, update); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := e.Payments[0].Amount.Cents(); got != 5000 {
		t.Fatalf("expected edited amount kept at 5000 cents, got %d", got)
	}
	if got := e.Payments[1].Amount.Cents(); got != 2500 {
		t.Fatalf("expected 2500 cents, got %d", got)
	}
	if got := e.Payments[2].Amount.Cents(); got != 2500 {
		t.Fatalf("expected 2500 cents, got %d", got)
	}
}

func TestUpdatePaymentOddRemainderIsDeterministic(t *testing.T) {
	e := newTestPurchase(t, 100.00, 4)

	update := e.Payments[0]
	update.Amount = money.FromFloat(0.01)
	if err := e.UpdatePayment(e.Payments[0].ID, update); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// 99.99 over three payments: 33.33 each.
	want := []int64{1, 3333, 3333, 3333}
	for i, p := range e.Payments {
		if p.Amount.Cents() != want[i] {
			t.Fatalf("payment %d: expected %d cents, got %d", i, want[i], p.Amount.Cents())
		}
	}

	update = e.Payments[0]
	update.Amount = money.FromFloat(0.02)
	if err := e.UpdatePayment(e.Payments[0].ID, update); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// 99.98 over three payments: the first two carry the extra cent.
	want = []int64{2, 3333, 3333, 3332}
	for i, p := range e.Payments {
		if p.Amount.Cents() != want[i] {
			t.Fatalf("payment %d: expected %d cents, got %d", i, want[i], p.Amount.Cents())
		}
	}
}

func TestUpdatePaymentOverdrawFailsAtomically(t *testing.T) {
	e := newTestPurchase(t, 100.00, 3)
	before := clonePayments(e.Payments)

	update := e.Payments[0]
	update.Amount = money.FromFloat(150)
	err := e.UpdatePayment(e.Payments[0].ID, update)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}

	for i, p := range e.Payments {
		if !p.Amount.Equal(before[i].Amount) || p.Status != before[i].Status {
			t.Fatalf("payment %d mutated after failed update", i)
		}
	}
}

func TestUpdatePaymentLeftoverWithNoCarrierFails(t *testing.T) {
	e := newTestPurchase(t, 100.00, 2)

	update := e.Payments[0]
	update.Status = PaymentPaid
	if err := e.UpdatePayment(e.Payments[0].ID, update); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Only one open payment remains. Shrinking it leaves cents that no
	// other payment can absorb.
	update = e.Payments[1]
	update.Amount = money.FromFloat(10)
	err := e.UpdatePayment(e.Payments[1].ID, update)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
	if got := e.Payments[1].Amount.Cents(); got != 5000 {
		t.Fatalf("expected aggregate unchanged at 5000 cents, got %d", got)
	}
}

func TestUpdatePaymentCancelRedistributes(t *testing.T) {
	e := newTestPurchase(t, 90.00, 3)

	update := e.Payments[1]
	update.Status = PaymentCanceled
	update.Amount = money.Zero()
	if err := e.UpdatePayment(e.Payments[1].ID, update); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := e.Payments[0].Amount.Cents(); got != 4500 {
		t.Fatalf("expected 4500 cents, got %d", got)
	}
	if got := e.Payments[2].Amount.Cents(); got != 4500 {
		t.Fatalf("expected 4500 cents, got %d", got)
	}
	if !e.Payments[2].IsLastPayment {
		t.Fatalf("expected last open payment flagged")
	}
}

func TestPurchaseFinishesWhenAllPaymentsFinal(t *testing.T) {
	e := newTestPurchase(t, 60.00, 2)

	for _, id := range []string{e.Payments[0].ID, e.Payments[1].ID} {
		idx := e.findPayment(id)
		update := e.Payments[idx]
		update.Status = PaymentPaid
		if err := e.UpdatePayment(id, update); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	if e.Status != StatusFinished {
		t.Fatalf("expected finished, got %s", e.Status)
	}
	for _, p := range e.Payments {
		if p.IsLastPayment {
			t.Fatalf("no payment should stay flagged once all are final")
		}
	}
}

func TestPurchaseAmounts(t *testing.T) {
	e := newTestPurchase(t, 100.00, 4)

	update := e.Payments[0]
	update.Status = PaymentPaid
	if err := e.UpdatePayment(e.Payments[0].ID, update); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := e.PaidAmount(); !got.EqualFloat(25) {
		t.Fatalf("expected paid 25, got %s", got)
	}
	if got := e.PendingAmount(); !got.EqualFloat(75) {
		t.Fatalf("expected pending 75, got %s", got)
	}
	if got := e.DoneInstallments(); got != 1 {
		t.Fatalf("expected 1 done installment, got %d", got)
	}
	if got := e.PendingInstallments(); got != 3 {
		t.Fatalf("expected 3 pending installments, got %d", got)
	}

	financing, err := e.PendingFinancingAmount()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !financing.EqualFloat(75) {
		t.Fatalf("expected financing 75, got %s", financing)
	}
}

func TestSinglePaymentPurchaseHasNoFinancing(t *testing.T) {
	e := newTestPurchase(t, 40.00, 1)

	financing, err := e.PendingFinancingAmount()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !financing.IsZero() {
		t.Fatalf("expected zero financing, got %s", financing)
	}
}

func TestUpdatePaymentUnknownID(t *testing.T) {
	e := newTestPurchase(t, 100.00, 3)

	err := e.UpdatePayment("missing", Payment{Amount: money.FromFloat(10)})
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestUpdatePaymentUnknownKind(t *testing.T) {
	e := newTestPurchase(t, 100.00, 3)
	e.Kind = Kind("loan")

	err := e.UpdatePayment(e.Payments[0].ID, e.Payments[0])
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestNewPurchaseValidation(t *testing.T) {
	base := NewPurchaseInput{
		ID:           "exp-1",
		AccountID:    "acc-1",
		Title:        "TV",
		AcquiredAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:       money.FromFloat(100),
		Installments: 3,
	}

	bad := base
	bad.Title = "  "
	if _, err := NewPurchase(bad); err == nil {
		t.Fatalf("expected error for blank title")
	}

	bad = base
	bad.Amount = money.Zero()
	if _, err := NewPurchase(bad); err == nil {
		t.Fatalf("expected error for zero amount")
	}

	bad = base
	bad.Installments = 0
	if _, err := NewPurchase(bad); err == nil {
		t.Fatalf("expected error for zero installments")
	}
}
