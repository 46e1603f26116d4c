package expenses

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	accountdomain "cardledger-go/internal/domain/account"
	expensedomain "cardledger-go/internal/domain/expense"
	"cardledger-go/internal/transport/httpserver/middleware"
	"cardledger-go/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Accounts *accountdomain.Service
	Expenses *expensedomain.Service
	log      logger.Logger
}

func New(accounts *accountdomain.Service, expenses *expensedomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Accounts: accounts, Expenses: expenses, log: log}
}

type createExpenseRequest struct {
	AccountID        string               `json:"account_id"`
	Title            string               `json:"title"`
	CCName           string               `json:"cc_name"`
	AcquiredAt       string               `json:"acquired_at"`
	Amount           float64              `json:"amount"`
	ExpenseType      string               `json:"expense_type"`
	Installments     int                  `json:"installments"`
	FirstPaymentDate string               `json:"first_payment_date"`
	CategoryID       string               `json:"category_id"`
	FirstPayment     *firstPaymentRequest `json:"first_payment"`
}

type firstPaymentRequest struct {
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Status      string  `json:"status"`
}

type updatePaymentRequest struct {
	Amount      *float64 `json:"amount"`
	Status      *string  `json:"status"`
	PaymentDate *string  `json:"payment_date"`
}

type addPaymentRequest struct {
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Status      string  `json:"status"`
}

// authorizeExpense loads the expense and verifies it belongs to one of
// the caller's accounts. Foreign expenses are indistinguishable from
// missing ones.
func (h *Handlers) authorizeExpense(ctx context.Context, userID, expenseID string) (*expensedomain.Expense, error) {
	e, err := h.Expenses.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := h.Accounts.GetAccount(ctx, userID, e.AccountID); err != nil {
		if errors.Is(err, accountdomain.ErrAccountNotFound) {
			return nil, expensedomain.ErrExpenseNotFound
		}
		return nil, err
	}
	return e, nil
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	accountID := strings.TrimSpace(chi.URLParam(r, "id"))
	if accountID == "" {
		accountID = strings.TrimSpace(r.URL.Query().Get("account_id"))
	}
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "account_id is required")
		return
	}
	if _, err := h.Accounts.GetAccount(r.Context(), userID, accountID); err != nil {
		if errors.Is(err, accountdomain.ErrAccountNotFound) {
			h.log.BusinessError("expenses.list: account not found", err, "user_id", userID, "account_id", accountID)
			writeError(w, http.StatusNotFound, "account_not_found", "account not found")
			return
		}
		h.log.InternalError("expenses.list: get account failed", err, "user_id", userID, "account_id", accountID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items, err := h.Expenses.ListExpenses(r.Context(), accountID)
	if err != nil {
		h.log.InternalError("expenses.list failed", err, "user_id", userID, "account_id", accountID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	deep := parseBoolParam(r.URL.Query().Get("deep"))
	response := make([]expensedomain.ExpenseDTO, 0, len(items))
	for _, item := range items {
		response = append(response, item.DTO(deep))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	acquiredAt, err := parseDateParam(req.AcquiredAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid acquired_at")
		return
	}
	firstPaymentDate, err := parseDateParam(req.FirstPaymentDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid first_payment_date")
		return
	}

	if _, err := h.Accounts.GetAccount(r.Context(), userID, req.AccountID); err != nil {
		if errors.Is(err, accountdomain.ErrAccountNotFound) {
			h.log.BusinessError("expenses.create: account not found", err, "user_id", userID, "account_id", req.AccountID)
			writeError(w, http.StatusNotFound, "account_not_found", "account not found")
			return
		}
		h.log.InternalError("expenses.create: get account failed", err, "user_id", userID, "account_id", req.AccountID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	var created *expensedomain.Expense
	switch expensedomain.Kind(req.ExpenseType) {
	case expensedomain.KindPurchase:
		created, err = h.Expenses.CreatePurchase(r.Context(), expensedomain.CreatePurchaseInput{
			AccountID:        req.AccountID,
			Title:            req.Title,
			CCName:           req.CCName,
			AcquiredAt:       derefTime(acquiredAt),
			Amount:           req.Amount,
			Installments:     req.Installments,
			FirstPaymentDate: derefTime(firstPaymentDate),
			CategoryID:       req.CategoryID,
		})
	case expensedomain.KindSubscription:
		input := expensedomain.CreateSubscriptionInput{
			AccountID:        req.AccountID,
			Title:            req.Title,
			CCName:           req.CCName,
			AcquiredAt:       derefTime(acquiredAt),
			Amount:           req.Amount,
			FirstPaymentDate: derefTime(firstPaymentDate),
			CategoryID:       req.CategoryID,
		}
		if req.FirstPayment != nil {
			paymentDate, perr := parseDateParam(req.FirstPayment.PaymentDate)
			if perr != nil {
				writeError(w, http.StatusBadRequest, "invalid_request", "invalid first payment date")
				return
			}
			input.FirstPayment = &expensedomain.SubscriptionPaymentInput{
				Amount:      req.FirstPayment.Amount,
				PaymentDate: derefTime(paymentDate),
				Status:      expensedomain.PaymentStatus(req.FirstPayment.Status),
			}
		}
		created, err = h.Expenses.CreateSubscription(r.Context(), input)
	default:
		writeError(w, http.StatusBadRequest, "invalid_request", "expense_type must be purchase or subscription")
		return
	}
	if err != nil {
		h.log.BusinessError("expenses.create: validation failed", err, "user_id", userID, "account_id", req.AccountID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created.DTO(true))
}

func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	expenseID := strings.TrimSpace(chi.URLParam(r, "id"))
	e, err := h.authorizeExpense(r.Context(), userID, expenseID)
	if err != nil {
		if errors.Is(err, expensedomain.ErrExpenseNotFound) {
			h.log.BusinessError("expenses.get: not found", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.log.InternalError("expenses.get failed", err, "user_id", userID, "expense_id", expenseID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, e.DTO(true))
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	expenseID := strings.TrimSpace(chi.URLParam(r, "id"))
	if _, err := h.authorizeExpense(r.Context(), userID, expenseID); err != nil {
		if errors.Is(err, expensedomain.ErrExpenseNotFound) {
			h.log.BusinessError("expenses.delete: not found", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.log.InternalError("expenses.delete failed", err, "user_id", userID, "expense_id", expenseID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	if err := h.Expenses.DeleteExpense(r.Context(), expenseID); err != nil {
		h.log.InternalError("expenses.delete failed", err, "user_id", userID, "expense_id", expenseID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	expenseID := strings.TrimSpace(chi.URLParam(r, "id"))
	paymentID := strings.TrimSpace(chi.URLParam(r, "payment_id"))

	var req updatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if _, err := h.authorizeExpense(r.Context(), userID, expenseID); err != nil {
		if errors.Is(err, expensedomain.ErrExpenseNotFound) {
			h.log.BusinessError("payments.update: expense not found", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.log.InternalError("payments.update failed", err, "user_id", userID, "expense_id", expenseID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	input := expensedomain.UpdatePaymentInput{Amount: req.Amount}
	if req.Status != nil {
		status := expensedomain.PaymentStatus(*req.Status)
		input.Status = &status
	}
	if req.PaymentDate != nil {
		date, err := parseDateParam(*req.PaymentDate)
		if err != nil || date == nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid payment_date")
			return
		}
		input.PaymentDate = date
	}

	updated, err := h.Expenses.UpdatePayment(r.Context(), expenseID, paymentID, input)
	if err != nil {
		switch {
		case errors.Is(err, expensedomain.ErrPaymentNotFound):
			h.log.BusinessError("payments.update: payment not found", err, "user_id", userID, "expense_id", expenseID, "payment_id", paymentID)
			writeError(w, http.StatusNotFound, "payment_not_found", "payment not found")
		case errors.Is(err, expensedomain.ErrInvariantViolation):
			h.log.BusinessError("payments.update: rebalance failed", err, "user_id", userID, "expense_id", expenseID, "payment_id", paymentID)
			writeError(w, http.StatusConflict, "invariant_violation", err.Error())
		default:
			h.log.InternalError("payments.update failed", err, "user_id", userID, "expense_id", expenseID, "payment_id", paymentID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated.DTO(true))
}

func (h *Handlers) AddPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	expenseID := strings.TrimSpace(chi.URLParam(r, "id"))

	var req addPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	paymentDate, err := parseDateParam(req.PaymentDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payment_date")
		return
	}

	if _, err := h.authorizeExpense(r.Context(), userID, expenseID); err != nil {
		if errors.Is(err, expensedomain.ErrExpenseNotFound) {
			h.log.BusinessError("payments.add: expense not found", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.log.InternalError("payments.add failed", err, "user_id", userID, "expense_id", expenseID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	updated, err := h.Expenses.AddSubscriptionPayment(r.Context(), expenseID, expensedomain.AddPaymentInput{
		Amount:      req.Amount,
		PaymentDate: derefTime(paymentDate),
		Status:      expensedomain.PaymentStatus(req.Status),
	})
	if err != nil {
		if errors.Is(err, expensedomain.ErrFixedInstallments) {
			h.log.BusinessError("payments.add: fixed installments", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusBadRequest, "fixed_installments", "purchases have a fixed installment plan")
			return
		}
		h.log.BusinessError("payments.add: validation failed", err, "user_id", userID, "expense_id", expenseID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, updated.DTO(true))
}

func (h *Handlers) RemovePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	expenseID := strings.TrimSpace(chi.URLParam(r, "id"))
	paymentID := strings.TrimSpace(chi.URLParam(r, "payment_id"))

	if _, err := h.authorizeExpense(r.Context(), userID, expenseID); err != nil {
		if errors.Is(err, expensedomain.ErrExpenseNotFound) {
			h.log.BusinessError("payments.remove: expense not found", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.log.InternalError("payments.remove failed", err, "user_id", userID, "expense_id", expenseID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	updated, err := h.Expenses.RemoveSubscriptionPayment(r.Context(), expenseID, paymentID)
	if err != nil {
		switch {
		case errors.Is(err, expensedomain.ErrPaymentNotFound):
			h.log.BusinessError("payments.remove: payment not found", err, "user_id", userID, "expense_id", expenseID, "payment_id", paymentID)
			writeError(w, http.StatusNotFound, "payment_not_found", "payment not found")
		case errors.Is(err, expensedomain.ErrFixedInstallments):
			h.log.BusinessError("payments.remove: fixed installments", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusBadRequest, "fixed_installments", "purchases have a fixed installment plan")
		default:
			h.log.InternalError("payments.remove failed", err, "user_id", userID, "expense_id", expenseID, "payment_id", paymentID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated.DTO(true))
}

func (h *Handlers) NextPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	expenseID := strings.TrimSpace(chi.URLParam(r, "id"))
	if _, err := h.authorizeExpense(r.Context(), userID, expenseID); err != nil {
		if errors.Is(err, expensedomain.ErrExpenseNotFound) {
			h.log.BusinessError("payments.next: expense not found", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.log.InternalError("payments.next failed", err, "user_id", userID, "expense_id", expenseID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	factor := 1.0
	if raw := strings.TrimSpace(r.URL.Query().Get("factor")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid factor")
			return
		}
		factor = parsed
	}
	simulated := parseBoolParam(r.URL.Query().Get("simulated"))

	next, err := h.Expenses.NextPayment(r.Context(), expenseID, factor, simulated)
	if err != nil {
		switch {
		case errors.Is(err, expensedomain.ErrInvalidFactor):
			h.log.BusinessError("payments.next: invalid factor", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusBadRequest, "invalid_factor", "factor must be positive")
		case errors.Is(err, expensedomain.ErrFixedInstallments):
			h.log.BusinessError("payments.next: fixed installments", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusBadRequest, "fixed_installments", "purchases have a fixed installment plan")
		default:
			h.log.InternalError("payments.next failed", err, "user_id", userID, "expense_id", expenseID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, next.DTO())
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
