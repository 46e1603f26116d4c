package accounts

import (
	"errors"
	"net/http"
	"strings"

	accountdomain "cardledger-go/internal/domain/account"
	"cardledger-go/internal/transport/httpserver/middleware"
	"cardledger-go/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Accounts *accountdomain.Service
	log      logger.Logger
}

func New(accounts *accountdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Accounts: accounts, log: log}
}

type createAccountRequest struct {
	Alias  string `json:"alias"`
	CCName string `json:"cc_name"`
	Type   string `json:"type"`
}

type updateAccountRequest struct {
	Alias   string `json:"alias"`
	CCName  string `json:"cc_name"`
	Enabled *bool  `json:"enabled"`
}

func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	accounts, err := h.Accounts.ListAccounts(r.Context(), userID)
	if err != nil {
		h.log.InternalError("accounts.list failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	deep := parseBoolParam(r.URL.Query().Get("deep"))
	response := make([]accountdomain.AccountDTO, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, account.DTO(deep))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	created, err := h.Accounts.CreateAccount(r.Context(), accountdomain.CreateAccountInput{
		UserID: userID,
		Alias:  req.Alias,
		CCName: req.CCName,
		Type:   accountdomain.Type(req.Type),
	})
	if err != nil {
		h.log.BusinessError("accounts.create: validation failed", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created.DTO(false))
}

func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	accountID := strings.TrimSpace(chi.URLParam(r, "id"))
	account, err := h.Accounts.GetAccount(r.Context(), userID, accountID)
	if err != nil {
		if errors.Is(err, accountdomain.ErrAccountNotFound) {
			h.log.BusinessError("accounts.get: not found", err, "user_id", userID, "account_id", accountID)
			writeError(w, http.StatusNotFound, "account_not_found", "account not found")
			return
		}
		h.log.InternalError("accounts.get failed", err, "user_id", userID, "account_id", accountID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	deep := parseBoolParam(r.URL.Query().Get("deep"))
	writeJSON(w, http.StatusOK, account.DTO(deep))
}

func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	accountID := strings.TrimSpace(chi.URLParam(r, "id"))
	updated, err := h.Accounts.UpdateAccount(r.Context(), accountdomain.UpdateAccountInput{
		UserID:    userID,
		AccountID: accountID,
		Alias:     req.Alias,
		CCName:    req.CCName,
		Enabled:   req.Enabled,
	})
	if err != nil {
		if errors.Is(err, accountdomain.ErrAccountNotFound) {
			h.log.BusinessError("accounts.update: not found", err, "user_id", userID, "account_id", accountID)
			writeError(w, http.StatusNotFound, "account_not_found", "account not found")
			return
		}
		h.log.InternalError("accounts.update failed", err, "user_id", userID, "account_id", accountID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, updated.DTO(false))
}

func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	accountID := strings.TrimSpace(chi.URLParam(r, "id"))
	if err := h.Accounts.DeleteAccount(r.Context(), userID, accountID); err != nil {
		if errors.Is(err, accountdomain.ErrAccountNotFound) {
			h.log.BusinessError("accounts.delete: not found", err, "user_id", userID, "account_id", accountID)
			writeError(w, http.StatusNotFound, "account_not_found", "account not found")
			return
		}
		h.log.InternalError("accounts.delete failed", err, "user_id", userID, "account_id", accountID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
