package middleware

import (
	"context"
	"net/http"
	"strings"

	"gameledger/internal/api/apierr"
	"gameledger/internal/model"
)

type contextKey string

const callerContextKey contextKey = "caller"

// CallerHeader carries the account the request acts as. Identity is
// established by the host; the ledger trusts the header as-is.
const CallerHeader = "X-Caller-ID"

// Caller creates middleware that requires a caller identity on the request
func Caller() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := extractCaller(r)
			if caller == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), callerContextKey, model.AccountID(caller))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractCaller extracts the caller account from the request
func extractCaller(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(CallerHeader))
}

// GetCaller returns the caller account from the request context
func GetCaller(ctx context.Context) model.AccountID {
	caller, _ := ctx.Value(callerContextKey).(model.AccountID)
	return caller
}

// MustGetCaller returns the caller account or panics
func MustGetCaller(ctx context.Context) model.AccountID {
	caller := GetCaller(ctx)
	if caller == "" {
		panic("no caller in context - caller middleware not applied?")
	}
	return caller
}
