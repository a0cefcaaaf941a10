package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hugh/agencyhub/internal/auth"
)

type contextKey string

const (
	ClerkIDKey  contextKey = "clerk_id"
	AgencyIDKey contextKey = "agency_id"
	RoleKey     contextKey = "role"
)

// Auth rejects requests without a valid identity-provider session token.
// The token is read from the Authorization bearer header, then X-Auth-Token.
func Auth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
			if token == "" {
				token = r.Header.Get("X-Auth-Token")
			}

			if token == "" {
				unauthorized(w, "missing token")
				return
			}

			claims, err := verifier.ValidateToken(token)
			if err != nil {
				unauthorized(w, err.Error())
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, ClerkIDKey, claims.ClerkID())
			ctx = context.WithValue(ctx, AgencyIDKey, claims.AgencyID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="rpc"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "Unauthorized: " + reason,
		"code":  "UNAUTHORIZED",
	})
}

// Helper functions to extract values from context
func GetClerkID(ctx context.Context) string {
	if id, ok := ctx.Value(ClerkIDKey).(string); ok {
		return id
	}
	return ""
}

func GetAgencyID(ctx context.Context) uint {
	if id, ok := ctx.Value(AgencyIDKey).(uint); ok {
		return id
	}
	return 0
}

func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}
