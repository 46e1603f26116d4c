package periods

import (
	"errors"
	"net/http"

	perioddomain "cardledger-go/internal/domain/period"
	commonhandler "cardledger-go/internal/transport/httpserver/handler/common"
	"cardledger-go/internal/transport/httpserver/middleware"
	"cardledger-go/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Periods *perioddomain.Service
	log     logger.Logger
}

func New(periods *perioddomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Periods: periods, log: log}
}

func (h *Handlers) GetPeriod(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		commonhandler.WriteError(w, http.StatusUnauthorized, "missing_user", "missing user")
		return
	}

	year, err := commonhandler.ParseIntParam(chi.URLParam(r, "year"), 0)
	if err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid year")
		return
	}
	month, err := commonhandler.ParseIntParam(chi.URLParam(r, "month"), 0)
	if err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid month")
		return
	}

	p, err := h.Periods.GetPeriod(r.Context(), userID, month, year)
	if err != nil {
		if errors.Is(err, perioddomain.ErrInvalidPeriod) {
			h.log.BusinessError("periods.get: invalid period", err, "user_id", userID, "year", year, "month", month)
			commonhandler.WriteError(w, http.StatusBadRequest, "invalid_period", err.Error())
			return
		}
		h.log.InternalError("periods.get failed", err, "user_id", userID, "year", year, "month", month)
		commonhandler.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	commonhandler.WriteJSON(w, http.StatusOK, p.DTO())
}
