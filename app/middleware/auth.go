package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/catalogapp/catalog-api/app/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// SessionCookie is consulted when no Authorization header is sent.
const SessionCookie = "session_token"

type contextKey string

const userIDContextKey contextKey = "user_id"

// UserID returns the authenticated user attached by RequireSession.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey).(string)
	return id, ok && id != ""
}

// RequireSession rejects requests that do not carry a valid HS256 session
// token, either as a Bearer token or in SessionCookie. The token subject is
// stored on the request context as the user id.
func RequireSession(secret []byte, issuer string, log logrus.FieldLogger) func(http.Handler) http.Handler {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := sessionToken(r)
			if raw == "" {
				log.Warn("Middleware: session token is missing")
				response.Failure(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims := &jwt.RegisteredClaims{}
			if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
				log.Warnf("Middleware: invalid session token: %v", err)
				response.Failure(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if claims.Subject == "" {
				log.Warn("Middleware: session token has no subject")
				response.Failure(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
