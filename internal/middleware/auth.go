package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/linkvigia/linkvigia/internal/auth"
	"github.com/linkvigia/linkvigia/internal/model"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Tokens *auth.TokenIssuer
}

// Auth returns a middleware that authenticates requests by verifying
// the bearer session token and injecting the caller's identity into
// the request context. Missing credentials yield 401; invalid or
// expired ones yield 403.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)

			claims, err := cfg.Tokens.Verify(token)
			if err != nil {
				reason := "invalid_token"
				status := http.StatusForbidden
				code := "AUTH_INVALID"
				message := "Token inválido ou expirado"
				if errors.Is(err, auth.ErrMissingToken) {
					reason = "missing_token"
					status = http.StatusUnauthorized
					code = "AUTH_REQUIRED"
					message = "Token de acesso necessário"
				}

				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, status, code, message)
				return
			}

			authCtx := &model.AuthContext{
				UserID: claims.UserID,
				Email:  claims.Email,
			}

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the session token from the
// Authorization header.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// writeAuthError writes an authentication error response.
func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `","code":"` + code + `"}`))
}
