package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/daybook-hq/daybook/internal/api/respond"
	"github.com/daybook-hq/daybook/internal/auth"
)

type userIDKey struct{}

// authMiddleware resolves the bearer API key to a user and stores the
// user id on the request context.
func authMiddleware(authorizer auth.Authorizer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey, err := auth.ExtractAPIKey(r)
			if err != nil {
				respond.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}
			info, err := authorizer.Authorize(r.Context(), apiKey)
			if err != nil {
				respond.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey{}, info.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestUserID returns the authenticated user id set by authMiddleware.
func requestUserID(r *http.Request) string {
	v, _ := r.Context().Value(userIDKey{}).(string)
	return v
}
