package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardledger-go/internal/domain/expense"
	"cardledger-go/internal/domain/money"
)

type fakeAccountRepo struct {
	accounts map[string]*Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*Account)}
}

func (r *fakeAccountRepo) ListAccounts(ctx context.Context, userID string) ([]Account, error) {
	items := make([]Account, 0)
	for _, a := range r.accounts {
		if a.UserID == userID {
			items = append(items, *a)
		}
	}
	return items, nil
}

func (r *fakeAccountRepo) GetAccountByID(ctx context.Context, userID, accountID string) (*Account, error) {
	a, ok := r.accounts[accountID]
	if !ok || a.UserID != userID {
		return nil, ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeAccountRepo) CreateAccount(ctx context.Context, a *Account) error {
	r.accounts[a.ID] = a
	return nil
}

func (r *fakeAccountRepo) UpdateAccount(ctx context.Context, a *Account) error {
	if _, ok := r.accounts[a.ID]; !ok {
		return ErrAccountNotFound
	}
	r.accounts[a.ID] = a
	return nil
}

func (r *fakeAccountRepo) DeleteAccount(ctx context.Context, userID, accountID string) (bool, error) {
	a, ok := r.accounts[accountID]
	if !ok || a.UserID != userID {
		return false, nil
	}
	delete(r.accounts, accountID)
	return true, nil
}

func TestCreateAccountSuccess(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo)

	created, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		UserID: "user-1",
		Alias:  "  Main Card  ",
		CCName: "VISA *1234",
		Type:   TypeCreditCard,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if created.Alias != "Main Card" {
		t.Fatalf("expected trimmed alias, got %q", created.Alias)
	}
	if !created.Enabled {
		t.Fatalf("expected account enabled by default")
	}
	if repo.accounts[created.ID] == nil {
		t.Fatalf("account not stored")
	}
}

func TestCreateAccountValidation(t *testing.T) {
	svc := NewService(newFakeAccountRepo())

	if _, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		UserID: "user-1",
		Alias:  "   ",
		Type:   TypeCreditCard,
	}); err == nil {
		t.Fatalf("expected error for blank alias")
	}

	_, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		UserID: "user-1",
		Alias:  "Main",
		Type:   Type("checking"),
	})
	if !errors.Is(err, ErrInvalidAccountType) {
		t.Fatalf("expected ErrInvalidAccountType, got %v", err)
	}
}

func TestUpdateAccountPartial(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.accounts["acc-1"] = &Account{
		ID:      "acc-1",
		UserID:  "user-1",
		Alias:   "Main",
		CCName:  "VISA *1234",
		Type:    TypeCreditCard,
		Enabled: true,
	}
	svc := NewService(repo)

	disabled := false
	updated, err := svc.UpdateAccount(context.Background(), UpdateAccountInput{
		UserID:    "user-1",
		AccountID: "acc-1",
		Alias:     "Travel",
		Enabled:   &disabled,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if updated.Alias != "Travel" {
		t.Fatalf("expected alias updated, got %q", updated.Alias)
	}
	if updated.CCName != "VISA *1234" {
		t.Fatalf("expected cc name untouched, got %q", updated.CCName)
	}
	if updated.Enabled {
		t.Fatalf("expected account disabled")
	}
}

func TestUpdateAccountWrongUser(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.accounts["acc-1"] = &Account{ID: "acc-1", UserID: "user-1", Alias: "Main", Type: TypeCreditCard}
	svc := NewService(repo)

	_, err := svc.UpdateAccount(context.Background(), UpdateAccountInput{
		UserID:    "user-2",
		AccountID: "acc-1",
		Alias:     "Stolen",
	})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestDeleteAccountNotFound(t *testing.T) {
	svc := NewService(newFakeAccountRepo())

	err := svc.DeleteAccount(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestPaymentsInFiltersByMonth(t *testing.T) {
	a := Account{
		ID:     "acc-1",
		UserID: "user-1",
		Expenses: []expense.Expense{
			{
				ID: "exp-1",
				Payments: []expense.Payment{
					{ID: "pay-jan", Amount: money.FromFloat(10), PaymentDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
					{ID: "pay-feb", Amount: money.FromFloat(10), PaymentDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
					{ID: "pay-undated", Amount: money.FromFloat(10)},
				},
			},
			{
				ID: "exp-2",
				Payments: []expense.Payment{
					{ID: "pay-feb-2", Amount: money.FromFloat(20), PaymentDate: time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)},
				},
			},
		},
	}

	got := a.PaymentsIn(2, 2026)
	if len(got) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(got))
	}
	ids := map[string]bool{got[0].ID: true, got[1].ID: true}
	if !ids["pay-feb"] || !ids["pay-feb-2"] {
		t.Fatalf("unexpected payments %v", ids)
	}
}
