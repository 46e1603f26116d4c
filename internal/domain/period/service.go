package period

import (
	"context"

	"cardledger-go/internal/domain/account"
	"cardledger-go/pkg/logger"
)

// AccountRepository is the slice of the account storage the projection
// needs: fully populated accounts for one user.
type AccountRepository interface {
	ListAccounts(ctx context.Context, userID string) ([]account.Account, error)
}

type Service struct {
	accounts AccountRepository
	log      logger.Logger
}

func NewService(accounts AccountRepository, log logger.Logger) *Service {
	return &Service{accounts: accounts, log: log}
}

// GetPeriod builds the payment projection for one calendar month across
// all of the user's accounts.
func (s *Service) GetPeriod(ctx context.Context, userID string, month, year int) (*Period, error) {
	p, err := NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, acc := range accounts {
		p.FillFromAccount(acc, nil, s.log)
	}

	return p, nil
}
