package expense

import "context"

// Repository loads and stores whole aggregates: an expense always
// travels with its full payment set. Mutations that rebalance payments
// must be persisted through SaveExpense inside Transaction so the
// payment set is replaced atomically.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListExpenses(ctx context.Context, accountID string) ([]Expense, error)
	GetExpenseByID(ctx context.Context, expenseID string) (*Expense, error)
	CreateExpense(ctx context.Context, expense *Expense) error
	SaveExpense(ctx context.Context, expense *Expense) error
	DeleteExpense(ctx context.Context, expenseID string) (bool, error)
}
