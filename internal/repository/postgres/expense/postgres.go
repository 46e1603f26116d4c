package expense

import (
	"context"
	"errors"

	expensedomain "cardledger-go/internal/domain/expense"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(expensedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListExpenses(ctx context.Context, accountID string) ([]expensedomain.Expense, error) {
	var items []expensedomain.Expense
	err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("no_installment asc")
		}).
		Where("account_id = ?", accountID).
		Order("acquired_at desc, created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetExpenseByID(ctx context.Context, expenseID string) (*expensedomain.Expense, error) {
	var item expensedomain.Expense
	err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("no_installment asc")
		}).
		Where("id = ?", expenseID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensedomain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *expensedomain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// SaveExpense persists the aggregate as a whole: the expense row is
// updated and the payment set is replaced. Payment edits rebalance
// sibling payments, so writing only the edited row would corrupt the
// stored aggregate.
func (r *PostgresRepository) SaveExpense(ctx context.Context, expense *expensedomain.Expense) error {
	db := r.db.WithContext(ctx)

	err := db.Model(&expensedomain.Expense{}).
		Where("id = ?", expense.ID).
		Updates(map[string]interface{}{
			"title":              expense.Title,
			"cc_name":            expense.CCName,
			"acquired_at":        expense.AcquiredAt,
			"amount":             expense.Amount,
			"installments":       expense.Installments,
			"first_payment_date": expense.FirstPaymentDate,
			"status":             expense.Status,
			"category_id":        expense.CategoryID,
			"updated_at":         expense.UpdatedAt,
		}).Error
	if err != nil {
		return err
	}

	if err := db.Where("expense_id = ?", expense.ID).Delete(&expensedomain.Payment{}).Error; err != nil {
		return err
	}
	if len(expense.Payments) == 0 {
		return nil
	}
	return db.Create(&expense.Payments).Error
}

func (r *PostgresRepository) DeleteExpense(ctx context.Context, expenseID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&expensedomain.Expense{}, "id = ?", expenseID)
	return result.RowsAffected > 0, result.Error
}
