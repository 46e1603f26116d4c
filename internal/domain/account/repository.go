package account

import "context"

// Repository returns accounts fully populated: every account carries
// its expenses and every expense its payments. The period projection
// depends on this.
type Repository interface {
	ListAccounts(ctx context.Context, userID string) ([]Account, error)
	GetAccountByID(ctx context.Context, userID, accountID string) (*Account, error)
	CreateAccount(ctx context.Context, account *Account) error
	UpdateAccount(ctx context.Context, account *Account) error
	DeleteAccount(ctx context.Context, userID, accountID string) (bool, error)
}
