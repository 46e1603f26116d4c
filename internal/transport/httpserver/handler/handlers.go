package handler

import (
	"cardledger-go/internal/transport/httpserver/handler/accounts"
	"cardledger-go/internal/transport/httpserver/handler/common"
	"cardledger-go/internal/transport/httpserver/handler/expenses"
	"cardledger-go/internal/transport/httpserver/handler/periods"
)

type Handlers struct {
	Common   *common.Handlers
	Accounts *accounts.Handlers
	Expenses *expenses.Handlers
	Periods  *periods.Handlers
}

func New(commonH *common.Handlers, accountsH *accounts.Handlers, expensesH *expenses.Handlers, periodsH *periods.Handlers) *Handlers {
	return &Handlers{
		Common:   commonH,
		Accounts: accountsH,
		Expenses: expensesH,
		Periods:  periodsH,
	}
}
