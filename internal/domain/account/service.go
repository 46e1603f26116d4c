package account

import (
	"context"
	"fmt"
	"strings"

	"cardledger-go/internal/domain/expense"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateAccount(ctx context.Context, input CreateAccountInput) (*Account, error) {
	alias := strings.TrimSpace(input.Alias)
	if alias == "" {
		return nil, fmt.Errorf("alias is required")
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountType, input.Type)
	}

	account := &Account{
		ID:       uuid.NewString(),
		UserID:   input.UserID,
		Alias:    alias,
		CCName:   strings.TrimSpace(input.CCName),
		Type:     input.Type,
		Enabled:  true,
		Expenses: []expense.Expense{},
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) ListAccounts(ctx context.Context, userID string) ([]Account, error) {
	return s.repo.ListAccounts(ctx, userID)
}

func (s *Service) GetAccount(ctx context.Context, userID, accountID string) (*Account, error) {
	return s.repo.GetAccountByID(ctx, userID, accountID)
}

func (s *Service) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*Account, error) {
	account, err := s.repo.GetAccountByID(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, err
	}

	if alias := strings.TrimSpace(input.Alias); alias != "" {
		account.Alias = alias
	}
	if ccName := strings.TrimSpace(input.CCName); ccName != "" {
		account.CCName = ccName
	}
	if input.Enabled != nil {
		account.Enabled = *input.Enabled
	}

	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) DeleteAccount(ctx context.Context, userID, accountID string) error {
	deleted, err := s.repo.DeleteAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAccountNotFound
	}
	return nil
}
