package account

import (
	"context"
	"errors"

	accountdomain "cardledger-go/internal/domain/account"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListAccounts loads the user's accounts with their full expense and
// payment trees. The period projection is built from this query.
func (r *PostgresRepository) ListAccounts(ctx context.Context, userID string) ([]accountdomain.Account, error) {
	var items []accountdomain.Account
	err := r.db.WithContext(ctx).
		Preload("Expenses", func(db *gorm.DB) *gorm.DB {
			return db.Order("acquired_at desc, created_at desc")
		}).
		Preload("Expenses.Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("no_installment asc")
		}).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetAccountByID(ctx context.Context, userID, accountID string) (*accountdomain.Account, error) {
	var item accountdomain.Account
	err := r.db.WithContext(ctx).
		Preload("Expenses", func(db *gorm.DB) *gorm.DB {
			return db.Order("acquired_at desc, created_at desc")
		}).
		Preload("Expenses.Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("no_installment asc")
		}).
		Where("user_id = ? AND id = ?", userID, accountID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accountdomain.ErrAccountNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) CreateAccount(ctx context.Context, account *accountdomain.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *PostgresRepository) UpdateAccount(ctx context.Context, account *accountdomain.Account) error {
	return r.db.WithContext(ctx).
		Model(&accountdomain.Account{}).
		Where("id = ? AND user_id = ?", account.ID, account.UserID).
		Updates(map[string]interface{}{
			"alias":      account.Alias,
			"cc_name":    account.CCName,
			"enabled":    account.Enabled,
			"updated_at": account.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteAccount(ctx context.Context, userID, accountID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&accountdomain.Account{}, "user_id = ? AND id = ?", userID, accountID)
	return result.RowsAffected > 0, result.Error
}
