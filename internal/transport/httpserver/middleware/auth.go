package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey int

const userIDKey contextKey = iota

// UserAuth resolves the calling user from the X-User-ID header. The
// service runs behind a gateway that terminates real authentication and
// forwards the verified user id.
type UserAuth struct {
	header string
}

func NewUserAuth() *UserAuth {
	return &UserAuth{header: "X-User-ID"}
}

func (a *UserAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(a.header))
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing_user", "missing user header")
			return
		}
		if _, err := uuid.Parse(userID); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_user", "invalid user id")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]map[string]string{
		"error": {"code": code, "message": message},
	})
}
