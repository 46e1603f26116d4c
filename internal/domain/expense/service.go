package expense

import (
	"context"
	"fmt"
	"time"

	"cardledger-go/internal/domain/money"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreatePurchaseInput struct {
	AccountID        string
	Title            string
	CCName           string
	AcquiredAt       time.Time
	Amount           float64
	Installments     int
	FirstPaymentDate time.Time
	CategoryID       string
}

func (s *Service) CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*Expense, error) {
	e, err := NewPurchase(NewPurchaseInput{
		ID:               uuid.NewString(),
		AccountID:        input.AccountID,
		Title:            input.Title,
		CCName:           input.CCName,
		AcquiredAt:       input.AcquiredAt,
		Amount:           money.FromFloat(input.Amount),
		Installments:     input.Installments,
		FirstPaymentDate: input.FirstPaymentDate,
		CategoryID:       input.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	for i := range e.Payments {
		e.Payments[i].ID = uuid.NewString()
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("create purchase: %w", err)
	}
	return e, nil
}

type CreateSubscriptionInput struct {
	AccountID        string
	Title            string
	CCName           string
	AcquiredAt       time.Time
	Amount           float64
	FirstPaymentDate time.Time
	CategoryID       string
	// FirstPayment optionally records the charge that opened the
	// subscription.
	FirstPayment *SubscriptionPaymentInput
}

type SubscriptionPaymentInput struct {
	Amount      float64
	PaymentDate time.Time
	Status      PaymentStatus
}

func (s *Service) CreateSubscription(ctx context.Context, input CreateSubscriptionInput) (*Expense, error) {
	e, err := NewSubscription(NewSubscriptionInput{
		ID:               uuid.NewString(),
		AccountID:        input.AccountID,
		Title:            input.Title,
		CCName:           input.CCName,
		AcquiredAt:       input.AcquiredAt,
		Amount:           money.FromFloat(input.Amount),
		FirstPaymentDate: input.FirstPaymentDate,
		CategoryID:       input.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	if input.FirstPayment != nil {
		payment, err := NewPayment(NewPaymentInput{
			ID:          uuid.NewString(),
			ExpenseID:   e.ID,
			Amount:      money.FromFloat(input.FirstPayment.Amount),
			Status:      input.FirstPayment.Status,
			PaymentDate: input.FirstPayment.PaymentDate,
		})
		if err != nil {
			return nil, err
		}
		if err := e.AddNewPayment(payment); err != nil {
			return nil, err
		}
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return e, nil
}

type UpdatePaymentInput struct {
	Amount      *float64
	Status      *PaymentStatus
	PaymentDate *time.Time
}

// UpdatePayment edits one payment and persists the whole rebalanced
// aggregate atomically. Partial persistence of only the edited payment
// would break the sum invariant for the others.
func (s *Service) UpdatePayment(ctx context.Context, expenseID, paymentID string, input UpdatePaymentInput) (*Expense, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, fmt.Errorf("invalid payment status %q", *input.Status)
	}

	var updated *Expense
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		e, err := tx.GetExpenseByID(ctx, expenseID)
		if err != nil {
			return err
		}

		idx := e.findPayment(paymentID)
		if idx < 0 {
			return ErrPaymentNotFound
		}

		update := e.Payments[idx]
		if input.Amount != nil {
			update.Amount = money.FromFloat(*input.Amount)
		}
		if input.Status != nil {
			update.Status = *input.Status
		}
		if input.PaymentDate != nil {
			update.PaymentDate = *input.PaymentDate
		}

		if err := e.UpdatePayment(paymentID, update); err != nil {
			return err
		}

		if err := tx.SaveExpense(ctx, e); err != nil {
			return fmt.Errorf("save expense: %w", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

type AddPaymentInput struct {
	Amount      float64
	PaymentDate time.Time
	Status      PaymentStatus
}

func (s *Service) AddSubscriptionPayment(ctx context.Context, expenseID string, input AddPaymentInput) (*Expense, error) {
	var updated *Expense
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		e, err := tx.GetExpenseByID(ctx, expenseID)
		if err != nil {
			return err
		}

		payment, err := NewPayment(NewPaymentInput{
			ID:          uuid.NewString(),
			ExpenseID:   e.ID,
			Amount:      money.FromFloat(input.Amount),
			Status:      input.Status,
			PaymentDate: input.PaymentDate,
		})
		if err != nil {
			return err
		}

		if err := e.AddNewPayment(payment); err != nil {
			return err
		}

		if err := tx.SaveExpense(ctx, e); err != nil {
			return fmt.Errorf("save expense: %w", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) RemoveSubscriptionPayment(ctx context.Context, expenseID, paymentID string) (*Expense, error) {
	var updated *Expense
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		e, err := tx.GetExpenseByID(ctx, expenseID)
		if err != nil {
			return err
		}

		if err := e.RemovePayment(paymentID); err != nil {
			return err
		}

		if err := tx.SaveExpense(ctx, e); err != nil {
			return fmt.Errorf("save expense: %w", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// NextPayment previews the subscription's upcoming charge without
// persisting anything.
func (s *Service) NextPayment(ctx context.Context, expenseID string, factor float64, simulated bool) (Payment, error) {
	e, err := s.repo.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return Payment{}, err
	}
	return e.NextPayment(factor, simulated)
}

func (s *Service) DeleteExpense(ctx context.Context, expenseID string) error {
	deleted, err := s.repo.DeleteExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *Service) GetExpense(ctx context.Context, expenseID string) (*Expense, error) {
	return s.repo.GetExpenseByID(ctx, expenseID)
}

func (s *Service) ListExpenses(ctx context.Context, accountID string) ([]Expense, error) {
	return s.repo.ListExpenses(ctx, accountID)
}
