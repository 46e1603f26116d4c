package expense

import "errors"

var (
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrMismatchedExpense  = errors.New("payment belongs to another expense")
	ErrInvalidFactor      = errors.New("factor must be positive")
	ErrInvariantViolation = errors.New("payment amounts inconsistent with expense amount")
	ErrFixedInstallments  = errors.New("purchase has a fixed installment plan")
	ErrUnknownKind        = errors.New("unknown expense kind")
)
